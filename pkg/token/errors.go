package token

import "errors"

// Error - вид ошибки проверки токена. Kind уходит клиенту как причина отказа
type Error struct {
	Kind string
}

func (e *Error) Error() string {
	return e.Kind
}

var (
	ErrTokenExpired   = &Error{Kind: "TokenExpired"}
	ErrTokenMalformed = &Error{Kind: "TokenMalformed"}
)

// KindOf возвращает вид ошибки токена или пустую строку
func KindOf(err error) string {
	var tokErr *Error
	if errors.As(err, &tokErr) {
		return tokErr.Kind
	}
	return ""
}
