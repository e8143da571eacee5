package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type accountResponse struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Type             account.Type   `json:"type"`
	Nature           account.Nature `json:"nature"`
	IsArchived       bool           `json:"isArchived"`
	CreatedAt        time.Time      `json:"createdAt"`
	TransactionCount int            `json:"transactionCount"`
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	Category    string           `json:"category"`
	Amount      float64          `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Note        *string          `json:"note"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type detailResponse struct {
	accountResponse
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Type:             a.Type,
		Nature:           a.Nature,
		IsArchived:       a.IsArchived,
		CreatedAt:        a.CreatedAt,
		TransactionCount: a.TransactionCount,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}

func toDetailResponse(a *account.Account, txs []*transaction.Transaction) detailResponse {
	resp := detailResponse{
		accountResponse: toResponse(a),
		Transactions:    make([]transactionResponse, len(txs)),
	}

	for i, tx := range txs {
		resp.Transactions[i] = transactionResponse{
			ID:          tx.ID,
			CategoryID:  tx.CategoryID,
			Category:    tx.CategoryName,
			Amount:      tx.Amount.InexactFloat64(),
			Type:        tx.Type,
			Description: tx.Description,
			Note:        tx.Note,
			Date:        tx.Date,
			CreatedAt:   tx.CreatedAt,
		}
	}

	resp.TransactionCount = len(txs)

	return resp
}
