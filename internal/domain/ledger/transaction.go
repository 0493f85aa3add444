package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionDirection marks cash leaving (payment against a bill) or
// arriving (receipt against an invoice)
type TransactionDirection string

const (
	DirectionPayment TransactionDirection = "PAYMENT"
	DirectionReceipt TransactionDirection = "RECEIPT"
)

// IsValid checks if the direction is a valid TransactionDirection
func (d TransactionDirection) IsValid() bool {
	return d == DirectionPayment || d == DirectionReceipt
}

// Transaction is a ledger-visible payment or receipt. Optionally linked to
// the bill or invoice it settles; transactions created together from one
// bulk-payment action share a BatchID. A transaction is immutable once
// created except through the explicit edit/delete flows, both of which
// re-derive the parent document's paid amount and status.
type Transaction struct {
	shared.BaseAggregateRoot
	Direction  TransactionDirection
	Amount     decimal.Decimal
	AccountID  uuid.UUID // Cash/bank account the money moves through
	ContactID  uuid.UUID
	CategoryID *uuid.UUID
	BillID     *uuid.UUID
	InvoiceID  *uuid.UUID
	BatchID    *uuid.UUID
	Reference  string
	Remark     string
	PostedAt   time.Time
}

// NewTransaction creates a standalone ledger transaction
func NewTransaction(
	direction TransactionDirection,
	amount valueobject.Money,
	accountID, contactID uuid.UUID,
	postedAt time.Time,
) (*Transaction, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Transaction direction is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Payment account cannot be empty")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Transaction contact cannot be empty")
	}
	return &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Direction:         direction,
		Amount:            amount.Amount(),
		AccountID:         accountID,
		ContactID:         contactID,
		PostedAt:          postedAt,
	}, nil
}

// LinkBill ties the transaction to the bill it settles
func (t *Transaction) LinkBill(billID uuid.UUID) {
	t.BillID = &billID
}

// LinkInvoice ties the transaction to the invoice it settles
func (t *Transaction) LinkInvoice(invoiceID uuid.UUID) {
	t.InvoiceID = &invoiceID
}

// WithBatch marks the transaction as part of a bulk-payment batch
func (t *Transaction) WithBatch(batchID uuid.UUID) *Transaction {
	t.BatchID = &batchID
	return t
}

// WithCategory labels the transaction
func (t *Transaction) WithCategory(categoryID uuid.UUID) *Transaction {
	t.CategoryID = &categoryID
	return t
}

// WithReference sets the external reference (cheque number, transfer id)
func (t *Transaction) WithReference(reference string) *Transaction {
	t.Reference = reference
	return t
}

// WithRemark sets the free-text remark
func (t *Transaction) WithRemark(remark string) *Transaction {
	t.Remark = remark
	return t
}

// DocumentID returns the settled document's id, if any
func (t *Transaction) DocumentID() *uuid.UUID {
	if t.BillID != nil {
		return t.BillID
	}
	return t.InvoiceID
}

// AmountMoney returns the amount as a Money value object
func (t *Transaction) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(t.Amount)
}
