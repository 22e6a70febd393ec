// Package apierr переводит ошибки сервисов в HTTP ответы
package apierr

import (
	"errors"
	"net/http"

	"expense_tracker/internal/filter"
	"expense_tracker/internal/model"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/resp"

	"go.uber.org/zap"
)

var badRequest = []error{
	model.ErrValidation,
	model.ErrNotFound,
	model.ErrAlreadyExists,
	model.ErrInvalidLogin,
	model.ErrForbidden,
	filter.ErrConflictingFilter,
	filter.ErrInvalidFormat,
}

// Status - HTTP статус для ошибки
func Status(err error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// Write отвечает {"error": ...}. Неожиданные ошибки логируются, клиенту уходит общее сообщение
func Write(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.WithContext(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		resp.WriteError(w, status, http.StatusText(status))
		return
	}
	resp.WriteError(w, status, err.Error())
}
