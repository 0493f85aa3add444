package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionService records, edits and removes ledger entries. Entries
// linked to a bill or invoice keep the document's paid amount in step: an
// edit re-derives it from the amount delta, a delete rolls it back, and the
// document's status is recomputed either way.
type TransactionService struct {
	txRepo      ledger.TransactionRepository
	docRepo     billing.DocumentRepository
	accountRepo ledger.AccountRepository
	now         func() time.Time
}

// TransactionServiceOption configures optional dependencies
type TransactionServiceOption func(*TransactionService)

// WithTransactionClock overrides the clock, used by tests
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *TransactionService) { s.now = now }
}

// NewTransactionService creates a transaction service
func NewTransactionService(
	txRepo ledger.TransactionRepository,
	docRepo billing.DocumentRepository,
	accountRepo ledger.AccountRepository,
	opts ...TransactionServiceOption,
) *TransactionService {
	s := &TransactionService{
		txRepo:      txRepo,
		docRepo:     docRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTransaction records a ledger entry. With a DocumentID set, the entry
// settles part of that document and is subject to its balance: bills take
// PAYMENT entries, invoices take RECEIPT entries.
func (s *TransactionService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, req.AccountID); err != nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Payment account does not exist")
	}

	postedAt := req.PostedAt
	if postedAt.IsZero() {
		postedAt = s.now()
	}
	amount := valueobject.NewMoney(req.Amount)
	tx, err := ledger.NewTransaction(req.Direction, amount, req.AccountID, req.ContactID, postedAt)
	if err != nil {
		return nil, err
	}
	tx.WithReference(req.Reference).WithRemark(req.Remark)
	if req.CategoryID != nil {
		tx.WithCategory(*req.CategoryID)
	}

	if req.DocumentID == nil {
		if err := s.txRepo.Create(ctx, tx); err != nil {
			return nil, err
		}
		return NewTransactionResponse(tx), nil
	}

	doc, err := s.docRepo.FindByID(ctx, *req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.IsBill() && req.Direction != ledger.DirectionPayment {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Bills are settled with payment entries")
	}
	if doc.IsInvoice() && req.Direction != ledger.DirectionReceipt {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invoices are settled with receipt entries")
	}
	if err := doc.ApplyPayment(amount, s.now()); err != nil {
		return nil, err
	}
	if doc.IsBill() {
		tx.LinkBill(doc.ID)
	} else {
		tx.LinkInvoice(doc.ID)
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		_ = s.txRepo.Delete(ctx, tx.ID)
		return nil, err
	}
	return NewTransactionResponse(tx), nil
}

// UpdateTransaction edits an entry. An amount change on a linked entry moves
// the document's paid amount by the delta, bounded by the usual balance
// rules on the way up and by the paid amount on the way down.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil && !req.Amount.Equal(tx.Amount) {
		if err := s.reapplyAmount(ctx, tx, *req.Amount); err != nil {
			return nil, err
		}
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(ctx, *req.AccountID); err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Payment account does not exist")
		}
		tx.AccountID = *req.AccountID
	}
	if req.Reference != nil {
		tx.Reference = *req.Reference
	}
	if req.Remark != nil {
		tx.Remark = *req.Remark
	}
	if req.PostedAt != nil {
		tx.PostedAt = *req.PostedAt
	}
	tx.Touch()

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return NewTransactionResponse(tx), nil
}

// reapplyAmount swaps the entry's contribution to the linked document: the
// old amount is rolled back, the new one applied, and the status re-derived
// from the resulting paid amount
func (s *TransactionService) reapplyAmount(ctx context.Context, tx *ledger.Transaction, newAmount decimal.Decimal) error {
	if !newAmount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	docID := tx.DocumentID()
	if docID == nil {
		tx.Amount = newAmount
		return nil
	}

	doc, err := s.docRepo.FindByID(ctx, *docID)
	if err != nil {
		return err
	}
	now := s.now()
	if err := doc.RollbackPayment(valueobject.NewMoney(tx.Amount), now); err != nil {
		return err
	}
	if err := doc.ApplyPayment(valueobject.NewMoney(newAmount), now); err != nil {
		return err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return err
	}
	tx.Amount = newAmount
	return nil
}

// DeleteTransaction removes an entry. A linked entry's amount is rolled out
// of the document's paid amount first, which can move the document back to
// partially paid or unpaid.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if docID := tx.DocumentID(); docID != nil {
		doc, err := s.docRepo.FindByID(ctx, *docID)
		if err != nil {
			return err
		}
		if err := doc.RollbackPayment(tx.AmountMoney(), s.now()); err != nil {
			return err
		}
		if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
			return err
		}
	}
	return s.txRepo.Delete(ctx, id)
}

// GetTransaction fetches one ledger entry
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewTransactionResponse(tx), nil
}

// ListTransactions returns filtered ledger entries
func (s *TransactionService) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]TransactionResponse, error) {
	txs, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, *NewTransactionResponse(&txs[i]))
	}
	return responses, nil
}
