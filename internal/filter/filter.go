// Package filter переводит query-параметры в предикаты squirrel для выборки транзакций
package filter

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
)

const (
	DateColumn   = "t.date"
	AmountColumn = "t.amount"
)

var (
	ErrConflictingFilter = errors.New("cannot use 'date' together with 'from' or 'upTo'")
	ErrInvalidFormat     = errors.New("invalid filter format")
)

// unconstrained совпадает с любой строкой: пустой sq.And рендерится как (1=1)
func unconstrained() sq.Sqlizer {
	return sq.And{}
}
