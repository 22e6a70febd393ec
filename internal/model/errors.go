package model

import "errors"

var (
	// ошибки репозиториев
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ошибки сервисов
	ErrValidation   = errors.New("validation error")
	ErrInvalidLogin = errors.New("wrong credentials")
	ErrForbidden    = errors.New("forbidden")
)
