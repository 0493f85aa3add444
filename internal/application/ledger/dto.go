package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a ledger entry. When DocumentID is set
// the entry is applied as a payment against that bill or invoice.
type CreateTransactionRequest struct {
	Direction  ledger.TransactionDirection `json:"direction"`
	Amount     decimal.Decimal             `json:"amount"`
	AccountID  uuid.UUID                   `json:"account_id"`
	ContactID  uuid.UUID                   `json:"contact_id"`
	CategoryID *uuid.UUID                  `json:"category_id,omitempty"`
	DocumentID *uuid.UUID                  `json:"document_id,omitempty"`
	Reference  string                      `json:"reference,omitempty"`
	Remark     string                      `json:"remark,omitempty"`
	PostedAt   time.Time                   `json:"posted_at"`
}

// UpdateTransactionRequest edits an existing entry; nil fields are left
// untouched
type UpdateTransactionRequest struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	AccountID *uuid.UUID       `json:"account_id,omitempty"`
	Reference *string          `json:"reference,omitempty"`
	Remark    *string          `json:"remark,omitempty"`
	PostedAt  *time.Time       `json:"posted_at,omitempty"`
}

// TransactionResponse is the outward shape of a ledger entry
type TransactionResponse struct {
	ID         uuid.UUID                   `json:"id"`
	Direction  ledger.TransactionDirection `json:"direction"`
	Amount     decimal.Decimal             `json:"amount"`
	AccountID  uuid.UUID                   `json:"account_id"`
	ContactID  uuid.UUID                   `json:"contact_id"`
	CategoryID *uuid.UUID                  `json:"category_id,omitempty"`
	BillID     *uuid.UUID                  `json:"bill_id,omitempty"`
	InvoiceID  *uuid.UUID                  `json:"invoice_id,omitempty"`
	BatchID    *uuid.UUID                  `json:"batch_id,omitempty"`
	Reference  string                      `json:"reference,omitempty"`
	Remark     string                      `json:"remark,omitempty"`
	PostedAt   time.Time                   `json:"posted_at"`
}

// NewTransactionResponse maps a domain transaction to its response shape
func NewTransactionResponse(tx *ledger.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         tx.ID,
		Direction:  tx.Direction,
		Amount:     tx.Amount,
		AccountID:  tx.AccountID,
		ContactID:  tx.ContactID,
		CategoryID: tx.CategoryID,
		BillID:     tx.BillID,
		InvoiceID:  tx.InvoiceID,
		BatchID:    tx.BatchID,
		Reference:  tx.Reference,
		Remark:     tx.Remark,
		PostedAt:   tx.PostedAt,
	}
}
