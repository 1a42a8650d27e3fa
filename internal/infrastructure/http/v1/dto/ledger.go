package dto

import (
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/ledger"
)

// --- Request DTOs ---

// CreateLedgerEntryRequest is the request body for a manual ledger entry.
// Order-driven entries are appended by the order engine, never via API.
type CreateLedgerEntryRequest struct {
	Date        time.Time   `json:"date" binding:"required"`
	Direction   string      `json:"direction" binding:"required"`
	Category    string      `json:"category"`
	Amount      types.Money `json:"amount" binding:"required"`
	Description string      `json:"description" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLedgerEntryRequest) ToEntity() *ledger.Entry {
	category := ledger.Category(r.Category)
	if r.Category == "" {
		category = ledger.CategoryOther
	}
	return ledger.NewEntry(r.Date, ledger.Direction(r.Direction), category, r.Amount, r.Description)
}

// --- Response DTOs ---

// LedgerEntryResponse is the response body for a ledger entry.
type LedgerEntryResponse struct {
	ID             string      `json:"id"`
	Date           time.Time   `json:"date"`
	Direction      string      `json:"direction"`
	Category       string      `json:"category"`
	Amount         types.Money `json:"amount"`
	Description    string      `json:"description"`
	RelatedOrderID *string     `json:"relatedOrderId,omitempty"`
	CreatedBy      string      `json:"createdBy,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// FromLedgerEntry creates response DTO from domain entity.
func FromLedgerEntry(e *ledger.Entry) *LedgerEntryResponse {
	var orderID *string
	if e.RelatedOrderID != nil {
		s := e.RelatedOrderID.String()
		orderID = &s
	}

	return &LedgerEntryResponse{
		ID:             e.ID.String(),
		Date:           e.Date,
		Direction:      string(e.Direction),
		Category:       string(e.Category),
		Amount:         e.Amount,
		Description:    e.Description,
		RelatedOrderID: orderID,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
	}
}
