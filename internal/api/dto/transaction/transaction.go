package transaction

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Username string              `json:"username"`
	Amount   decimal.NullDecimal `json:"amount"`
	Type     string              `json:"type"`
}

type TransactionResponse struct {
	ID       string      `json:"_id"`
	Username string      `json:"username"`
	Amount   json.Number `json:"amount"`
	Type     string      `json:"type"`
	Date     time.Time   `json:"date"`
	Color    string      `json:"color,omitempty"`
}

type DeleteRequest struct {
	ID string `json:"_id"`
}

type DeleteManyRequest struct {
	IDs []string `json:"_ids"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count,omitempty"`
}
