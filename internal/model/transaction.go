package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID       uuid.UUID
	Username string
	Amount   decimal.Decimal
	Type     string
	Date     time.Time
	// Color заполняется из категории при чтении
	Color string
}
