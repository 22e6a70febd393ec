package filter

import (
	"fmt"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// AmountFilter строит предикат по параметрам min и max (обе границы включительно).
// Порядок границ не проверяется: при min > max предикат просто ничего не найдёт
func AmountFilter(query url.Values) (sq.Sqlizer, error) {
	hasMin, hasMax := query.Has("min"), query.Has("max")

	if !hasMin && !hasMax {
		return unconstrained(), nil
	}

	pred := sq.And{}
	if hasMin {
		minAmount, err := parseAmount("min", query.Get("min"))
		if err != nil {
			return nil, err
		}
		pred = append(pred, sq.GtOrEq{AmountColumn: minAmount})
	}
	if hasMax {
		maxAmount, err := parseAmount("max", query.Get("max"))
		if err != nil {
			return nil, err
		}
		pred = append(pred, sq.LtOrEq{AmountColumn: maxAmount})
	}

	return pred, nil
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %s must be a number", ErrInvalidFormat, name)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s must be a number", ErrInvalidFormat, name)
	}
	return amount, nil
}
