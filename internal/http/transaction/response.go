package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Amount      int64                   `json:"amount"`
	Type        transaction.Type        `json:"type"`
	AccountType transaction.AccountType `json:"account_type"`
	Date        time.Time               `json:"date"`
	CategoryID  *uuid.UUID              `json:"category_id,omitempty"`
	Category    *categoryResponse       `json:"category,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   *time.Time              `json:"updated_at,omitempty"`
}

type categoryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		Title:       tx.Title,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		AccountType: tx.AccountType,
		Date:        tx.Date,
		CategoryID:  tx.CategoryID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}

	if tx.Category != nil {
		resp.Category = &categoryResponse{
			ID:    tx.Category.ID,
			Name:  tx.Category.Name,
			Color: tx.Category.Color,
		}
	}

	return resp
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
