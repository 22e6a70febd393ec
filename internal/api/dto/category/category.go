package category

type CategoryRequest struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type CategoryResponse struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type DeleteRequest struct {
	Types []string `json:"types"`
}

// CountResponse - итог изменения с числом затронутых транзакций
type CountResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
