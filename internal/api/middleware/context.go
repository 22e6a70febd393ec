package middleware

import (
	"context"

	"expense_tracker/internal/auth"
	"expense_tracker/internal/model"
)

type ctxKey int

const (
	resultKey ctxKey = iota
	adminKey
)

func withResult(ctx context.Context, res auth.Result, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, resultKey, res)
	return context.WithValue(ctx, adminKey, isAdmin)
}

// Caller - идентичность, по которой был пропущен запрос
func Caller(ctx context.Context) model.Identity {
	res, _ := ctx.Value(resultKey).(auth.Result)
	return res.Identity
}

// RefreshedMessage - уведомление о перевыпуске access токена для тела ответа
func RefreshedMessage(ctx context.Context) string {
	res, _ := ctx.Value(resultKey).(auth.Result)
	return res.RefreshedMessage
}

// IsAdmin сообщает, что запрос пропущен по проверке администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(adminKey).(bool)
	return isAdmin
}
