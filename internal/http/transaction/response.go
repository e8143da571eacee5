package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type refResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	AccountID   uuid.UUID        `json:"accountId"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	Amount      float64          `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Note        *string          `json:"note"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
	Account     refResponse      `json:"account"`
	Category    refResponse      `json:"category"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		Amount:      tx.Amount.InexactFloat64(),
		Type:        tx.Type,
		Description: tx.Description,
		Note:        tx.Note,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
		Account:     refResponse{ID: tx.AccountID, Name: tx.AccountName},
		Category:    refResponse{ID: tx.CategoryID, Name: tx.CategoryName},
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
