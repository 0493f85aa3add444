package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
)

// PaymentService applies a single payment against one document and records
// the matching ledger transaction
type PaymentService struct {
	docRepo billing.DocumentRepository
	txRepo  ledger.TransactionRepository
	now     func() time.Time
}

// PaymentServiceOption configures optional dependencies
type PaymentServiceOption func(*PaymentService)

// WithPaymentClock overrides the clock, used by tests
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *PaymentService) { s.now = now }
}

// NewPaymentService creates a payment service
func NewPaymentService(docRepo billing.DocumentRepository, txRepo ledger.TransactionRepository, opts ...PaymentServiceOption) *PaymentService {
	s := &PaymentService{docRepo: docRepo, txRepo: txRepo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func directionFor(doc *billing.Document) ledger.TransactionDirection {
	if doc.IsBill() {
		return ledger.DirectionPayment
	}
	return ledger.DirectionReceipt
}

// ApplyPayment pays part or all of a document's balance. The payment is
// rejected when it exceeds the balance beyond the cent tolerance; the
// document's status is re-derived after the paid amount moves. The ledger
// transaction is written first so a version conflict on the document leaves
// no orphaned money movement behind.
func (s *PaymentService) ApplyPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoney(req.Amount)
	if err := doc.ApplyPayment(amount, s.now()); err != nil {
		return nil, err
	}

	tx, err := ledger.NewTransaction(directionFor(doc), amount, req.AccountID, doc.ContactID, s.paidAt(req))
	if err != nil {
		return nil, err
	}
	if doc.IsBill() {
		tx.LinkBill(doc.ID)
	} else {
		tx.LinkInvoice(doc.ID)
	}
	tx.WithReference(req.Reference).WithRemark(req.Remark)

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		// Undo the money movement so the ledger and the document agree
		_ = s.txRepo.Delete(ctx, tx.ID)
		return nil, err
	}

	return &PaymentResponse{
		TransactionID: tx.ID,
		DocumentID:    doc.ID,
		Amount:        req.Amount,
		PaidAmount:    doc.PaidAmount,
		Balance:       doc.Balance(),
		Status:        doc.Status,
	}, nil
}

func (s *PaymentService) paidAt(req PaymentRequest) time.Time {
	if req.PaidAt.IsZero() {
		return s.now()
	}
	return req.PaidAt
}

// ListDocumentTransactions returns the ledger transactions applied against a
// document
func (s *PaymentService) ListDocumentTransactions(ctx context.Context, documentID uuid.UUID) ([]ledger.Transaction, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	filter := ledger.TransactionFilter{}
	if doc.IsBill() {
		filter.BillID = &doc.ID
	} else {
		filter.InvoiceID = &doc.ID
	}
	return s.txRepo.FindAll(ctx, filter)
}
