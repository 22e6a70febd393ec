package converter

import (
	"encoding/json"

	"expense_tracker/internal/api/dto/transaction"
	"expense_tracker/internal/model"
)

func ToTransaction(req transaction.CreateRequest) *model.Transaction {
	return &model.Transaction{
		Username: req.Username,
		Amount:   req.Amount.Decimal,
		Type:     req.Type,
	}
}

func ToTransactionResponse(tx *model.Transaction) transaction.TransactionResponse {
	return transaction.TransactionResponse{
		ID:       tx.ID.String(),
		Username: tx.Username,
		Amount:   json.Number(tx.Amount.String()),
		Type:     tx.Type,
		Date:     tx.Date,
		Color:    tx.Color,
	}
}

func ToTransactionResponses(txs []model.Transaction) []transaction.TransactionResponse {
	result := make([]transaction.TransactionResponse, len(txs))
	for i := range txs {
		result[i] = ToTransactionResponse(&txs[i])
	}
	return result
}
