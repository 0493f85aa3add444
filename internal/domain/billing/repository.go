package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentFilter narrows document queries
type DocumentFilter struct {
	Kind           DocumentKind
	Status         DocumentStatus
	ContactID      *uuid.UUID
	ProjectID      *uuid.UUID
	BuildingID     *uuid.UUID
	StaffID        *uuid.UUID
	AllocationKind AllocationKind
	IssuedFrom     *time.Time
	IssuedTo       *time.Time
	Outstanding    bool // Only documents with a positive balance
	Page           int
	PageSize       int
	OrderBy        string
	OrderDir       string
}

// DocumentRepository provides access to bills and invoices
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByNumber(ctx context.Context, kind DocumentKind, number string) (*Document, error)
	FindAll(ctx context.Context, filter DocumentFilter) ([]Document, error)
	Count(ctx context.Context, filter DocumentFilter) (int64, error)
	Save(ctx context.Context, doc *Document) error
	// SaveWithLock persists the document with an optimistic version check;
	// returns shared.ErrConcurrencyConflict on a stale read
	SaveWithLock(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NumberExists reports whether another document of the kind carries the
	// number, matched case-insensitively on the trimmed value
	NumberExists(ctx context.Context, kind DocumentKind, number string, excludeID uuid.UUID) (bool, error)
	// ListNumbersByPrefix returns all document numbers of the kind starting
	// with the prefix; the sequencer's collision guard scans them
	ListNumbersByPrefix(ctx context.Context, kind DocumentKind, prefix string) ([]string, error)
	// SumAmountByRentalAgreement totals the amounts of all invoices already
	// raised against the agreement, excluding the given document
	SumAmountByRentalAgreement(ctx context.Context, agreementID, excludeID uuid.UUID) (decimal.Decimal, error)
}
