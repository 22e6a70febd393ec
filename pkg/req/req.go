package req

import (
	"encoding/json"
	"errors"
	"io"
)

// Decode читает JSON тела запроса в T
func Decode[T any](body io.ReadCloser) (T, error) {
	var payload T
	if body == nil {
		return payload, errors.New("empty body")
	}
	defer body.Close()

	err := json.NewDecoder(body).Decode(&payload)
	if err != nil {
		return payload, err
	}
	return payload, nil
}
