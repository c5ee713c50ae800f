package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/zentracker/internal/report"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Display     string           `json:"display"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	SubCategory string           `json:"subCategory,omitempty"`
	Date        string           `json:"date"`
	Note        string           `json:"note"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Display:     report.FormatSigned(tx),
		Type:        tx.Type,
		Category:    tx.Category,
		SubCategory: tx.SubCategory,
		Date:        tx.Date,
		Note:        tx.Note,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
