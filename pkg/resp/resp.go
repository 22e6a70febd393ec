package resp

import (
	"encoding/json"
	"net/http"
)

// DataResponse - конверт успешного ответа
type DataResponse struct {
	Data                  any    `json:"data"`
	RefreshedTokenMessage string `json:"refreshedTokenMessage,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteData оборачивает data в конверт вместе с уведомлением о перевыпуске токена
func WriteData(w http.ResponseWriter, status int, data any, refreshedMessage string) {
	WriteJSONResponse(w, status, DataResponse{
		Data:                  data,
		RefreshedTokenMessage: refreshedMessage,
	})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, ErrorResponse{Error: message})
}
