package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// TransactionFilter narrows transaction queries
type TransactionFilter struct {
	Direction  TransactionDirection
	ContactID  *uuid.UUID
	BillID     *uuid.UUID
	InvoiceID  *uuid.UUID
	BatchID    *uuid.UUID
	PostedFrom *time.Time
	PostedTo   *time.Time
	Page       int
	PageSize   int
}

// TransactionRepository provides access to ledger transactions
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]Transaction, error)
	// Create persists one transaction. In the bulk-payment path this is
	// called once per document so failures stay attributable to a single
	// document; a concurrency conflict surfaces as
	// shared.ErrConcurrencyConflict, a server-side balance rejection as
	// shared.ErrOverpayment.
	Create(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Account is a cash or bank account transactions move through
type Account struct {
	shared.BaseAggregateRoot
	Name string
	Kind string // cash, bank
}

// NewAccount creates a payment account
func NewAccount(name, kind string) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account name cannot be empty")
	}
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              kind,
	}, nil
}

// AccountRepository provides access to payment accounts
type AccountRepository interface {
	shared.Repository[Account]
}
