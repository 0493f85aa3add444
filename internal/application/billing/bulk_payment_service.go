package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BulkPaymentService pays a set of documents in one action. Each document is
// settled independently so a failure on one never rolls back the others; the
// caller gets both the succeeded and the failed side of the batch.
type BulkPaymentService struct {
	docRepo      billing.DocumentRepository
	txRepo       ledger.TransactionRepository
	accountRepo  ledger.AccountRepository
	rentalRepo   estate.RentalAgreementRepository
	categoryRepo estate.CategoryRepository
	logger       *zap.Logger
	now          func() time.Time
}

// BulkPaymentServiceOption configures optional dependencies
type BulkPaymentServiceOption func(*BulkPaymentService)

// WithBulkLogger attaches a logger for per-document failure records
func WithBulkLogger(logger *zap.Logger) BulkPaymentServiceOption {
	return func(s *BulkPaymentService) { s.logger = logger }
}

// WithBulkClock overrides the clock, used by tests
func WithBulkClock(now func() time.Time) BulkPaymentServiceOption {
	return func(s *BulkPaymentService) { s.now = now }
}

// NewBulkPaymentService creates a bulk payment service
func NewBulkPaymentService(
	docRepo billing.DocumentRepository,
	txRepo ledger.TransactionRepository,
	accountRepo ledger.AccountRepository,
	rentalRepo estate.RentalAgreementRepository,
	categoryRepo estate.CategoryRepository,
	opts ...BulkPaymentServiceOption,
) *BulkPaymentService {
	s := &BulkPaymentService{
		docRepo:      docRepo,
		txRepo:       txRepo,
		accountRepo:  accountRepo,
		rentalRepo:   rentalRepo,
		categoryRepo: categoryRepo,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare proposes a bulk payment for the given documents: every proposed
// amount is the document's full outstanding balance. Amounts stay editable
// on the caller's side until Apply.
func (s *BulkPaymentService) Prepare(ctx context.Context, documentIDs []uuid.UUID) ([]BulkPaymentItem, error) {
	if len(documentIDs) == 0 {
		return nil, shared.NewDomainError("EMPTY_SELECTION", "No documents selected for payment")
	}
	items := make([]BulkPaymentItem, 0, len(documentIDs))
	for _, id := range documentIDs {
		doc, err := s.docRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if doc.IsSettled() {
			continue
		}
		items = append(items, BulkPaymentItem{DocumentID: doc.ID, Amount: doc.Balance()})
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NOTHING_OUTSTANDING", "All selected documents are already settled")
	}
	return items, nil
}

// Apply pays the batch. Validation of the request as a whole (account set,
// positive total, per-item amounts within balance plus tolerance) happens
// before any write; then each document is paid in isolation, and the batch
// fails as a whole only when no document succeeded.
func (s *BulkPaymentService) Apply(ctx context.Context, req BulkPaymentRequest) (*BulkPaymentResult, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	batchID := uuid.New()
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	result := &BulkPaymentResult{BatchID: batchID}
	for _, item := range req.Items {
		success, failure := s.payOne(ctx, item, req, batchID, paidAt)
		switch {
		case failure != nil:
			result.Failed = append(result.Failed, *failure)
		case success != nil:
			result.Succeeded = append(result.Succeeded, *success)
		}
	}

	if len(result.Succeeded) == 0 {
		return result, shared.NewDomainError("BULK_PAYMENT_FAILED", "No document in the batch could be paid")
	}
	return result, nil
}

func (s *BulkPaymentService) validate(ctx context.Context, req BulkPaymentRequest) error {
	if len(req.Items) == 0 {
		return shared.NewDomainError("EMPTY_SELECTION", "No documents selected for payment")
	}
	if req.AccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Payment account is required")
	}
	if _, err := s.accountRepo.FindByID(ctx, req.AccountID); err != nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Payment account does not exist")
	}

	total := decimal.Zero
	for _, item := range req.Items {
		if item.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		total = total.Add(item.Amount)

		doc, err := s.docRepo.FindByID(ctx, item.DocumentID)
		if err != nil {
			return err
		}
		if item.Amount.Sub(doc.Balance()).GreaterThan(valueobject.CentTolerance) {
			return shared.NewDomainError("PAYMENT_OVERPAYMENT",
				"Payment for document "+doc.Number+" exceeds its outstanding balance")
		}
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Batch total must be positive")
	}
	return nil
}

// payOne settles a single document inside the batch. The document is
// re-read so a conflict is detected against its latest version; any error
// is classified and recorded, never propagated.
func (s *BulkPaymentService) payOne(ctx context.Context, item BulkPaymentItem, req BulkPaymentRequest, batchID uuid.UUID, paidAt time.Time) (*BulkPaymentSuccess, *BulkPaymentFailure) {
	if item.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil // Zero lines are skipped during validation too
	}
	doc, err := s.docRepo.FindByID(ctx, item.DocumentID)
	if err != nil {
		return nil, s.failure(item.DocumentID, "", err)
	}

	amount := valueobject.NewMoney(item.Amount)
	if err := doc.ApplyPayment(amount, s.now()); err != nil {
		return nil, s.failure(doc.ID, doc.Number, err)
	}

	contactID, categoryID := s.routeTenant(ctx, doc)
	tx, err := ledger.NewTransaction(directionFor(doc), amount, req.AccountID, contactID, paidAt)
	if err != nil {
		return nil, s.failure(doc.ID, doc.Number, err)
	}
	if doc.IsBill() {
		tx.LinkBill(doc.ID)
	} else {
		tx.LinkInvoice(doc.ID)
	}
	tx.WithBatch(batchID).WithReference(req.Reference)
	if categoryID != nil {
		tx.WithCategory(*categoryID)
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, s.failure(doc.ID, doc.Number, err)
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		_ = s.txRepo.Delete(ctx, tx.ID)
		return nil, s.failure(doc.ID, doc.Number, err)
	}

	return &BulkPaymentSuccess{
		DocumentID:     doc.ID,
		DocumentNumber: doc.Number,
		TransactionID:  tx.ID,
		Amount:         item.Amount,
		Status:         doc.Status,
	}, nil
}

// routeTenant redirects the cash effect of a bill raised under a rental
// agreement onto the tenant: the transaction posts against the tenant
// contact under the tenant variant of the bill's category. Bills outside a
// tenancy, and all invoices, post against the document's own contact.
func (s *BulkPaymentService) routeTenant(ctx context.Context, doc *billing.Document) (uuid.UUID, *uuid.UUID) {
	if !doc.IsBill() || doc.RentalAgreementID == nil {
		return doc.ContactID, nil
	}
	agreement, err := s.rentalRepo.FindByID(ctx, *doc.RentalAgreementID)
	if err != nil {
		s.logger.Warn("tenant routing skipped, agreement not found",
			zap.String("document", doc.Number), zap.Error(err))
		return doc.ContactID, nil
	}

	var categoryID *uuid.UUID
	if len(doc.LineItems) > 0 {
		base, err := s.categoryRepo.FindByID(ctx, doc.LineItems[0].CategoryID)
		if err == nil {
			variant, err := s.categoryRepo.FindByName(ctx, base.TenantVariantName())
			if err == nil {
				id := variant.ID
				categoryID = &id
			}
		}
	}
	return agreement.TenantContactID, categoryID
}

func (s *BulkPaymentService) failure(docID uuid.UUID, number string, err error) *BulkPaymentFailure {
	kind := classifyFailure(err)
	s.logger.Warn("bulk payment item failed",
		zap.String("document", number),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return &BulkPaymentFailure{
		DocumentID:     docID,
		DocumentNumber: number,
		Kind:           kind,
		Message:        kind.UserMessage(),
	}
}

// classifyFailure buckets a per-document error for the user message
func classifyFailure(err error) BulkFailureKind {
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		return BulkFailureConflict
	}
	if errors.Is(err, shared.ErrOverpayment) {
		return BulkFailureOverpayment
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case shared.ErrConcurrencyConflict.Code:
			return BulkFailureConflict
		case shared.ErrOverpayment.Code:
			return BulkFailureOverpayment
		}
	}
	return BulkFailureUnknown
}
