package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DocumentService owns the bill and invoice lifecycle: creation with
// generated or manual numbers, allocation classification, contract linking,
// edits, deletion, and rent invoice generation from rental agreements.
type DocumentService struct {
	docRepo      billing.DocumentRepository
	contactRepo  estate.ContactRepository
	propertyRepo estate.PropertyRepository
	contractRepo estate.ContractRepository
	rentalRepo   estate.RentalAgreementRepository
	projectRepo  estate.ProjectAgreementRepository
	categoryRepo estate.CategoryRepository
	numbering    *NumberingService
	now          func() time.Time
}

// DocumentServiceOption configures optional dependencies
type DocumentServiceOption func(*DocumentService)

// WithDocumentClock overrides the clock, used by tests
func WithDocumentClock(now func() time.Time) DocumentServiceOption {
	return func(s *DocumentService) { s.now = now }
}

// NewDocumentService creates a document service
func NewDocumentService(
	docRepo billing.DocumentRepository,
	contactRepo estate.ContactRepository,
	propertyRepo estate.PropertyRepository,
	contractRepo estate.ContractRepository,
	rentalRepo estate.RentalAgreementRepository,
	projectRepo estate.ProjectAgreementRepository,
	categoryRepo estate.CategoryRepository,
	numbering *NumberingService,
	opts ...DocumentServiceOption,
) *DocumentService {
	s := &DocumentService{
		docRepo:      docRepo,
		contactRepo:  contactRepo,
		propertyRepo: propertyRepo,
		contractRepo: contractRepo,
		rentalRepo:   rentalRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		numbering:    numbering,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// propertyResolver adapts the property repository to the allocation
// classifier, which works without a context
type propertyResolver struct {
	ctx  context.Context
	repo estate.PropertyRepository
}

func (r propertyResolver) BuildingOfProperty(propertyID uuid.UUID) (uuid.UUID, bool) {
	property, err := r.repo.FindByID(r.ctx, propertyID)
	if err != nil || property == nil {
		return uuid.Nil, false
	}
	return property.BuildingID, true
}

func (s *DocumentService) classify(ctx context.Context, in AllocationInput) (billing.Allocation, error) {
	return billing.ClassifyAllocation(in.ProjectID, in.BuildingID, in.PropertyID, in.StaffID,
		propertyResolver{ctx: ctx, repo: s.propertyRepo})
}

func seriesFor(req CreateDocumentRequest) sequence.SeriesKey {
	if req.Kind == billing.DocumentKindBill {
		return sequence.SeriesBill
	}
	if req.ProjectAgreementID != nil {
		return sequence.SeriesProjectInvoice
	}
	return sequence.SeriesRentalInvoice
}

func buildLineItems(inputs []LineItemInput) (billing.LineItems, error) {
	items := make(billing.LineItems, 0, len(inputs))
	for _, in := range inputs {
		item, err := billing.NewLineItem(in.CategoryID, in.Unit, in.Quantity, in.PricePerUnit)
		if err != nil {
			return nil, err
		}
		if in.NetValue != nil {
			if err := item.SetNetValue(*in.NetValue); err != nil {
				return nil, err
			}
		}
		items = append(items, *item)
	}
	return items, nil
}

// CreateDocument creates a bill or invoice. An empty number is filled from
// the kind's numbering series; a manual number must be unique within the
// kind. Line items (bills only) derive the amount.
func (s *DocumentService) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	if !req.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Document kind is not valid")
	}
	contact, err := s.contactRepo.FindByID(ctx, req.ContactID)
	if err != nil {
		return nil, err
	}

	allocation, err := s.classify(ctx, req.Allocation)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.Number)
	generated := number == ""
	if generated {
		number, err = s.numbering.NextNumber(ctx, seriesFor(req))
		if err != nil {
			return nil, err
		}
	}
	if err := s.numbering.EnsureUnique(ctx, req.Kind, number, uuid.Nil); err != nil {
		return nil, err
	}

	amount := req.Amount
	var items billing.LineItems
	if len(req.LineItems) > 0 {
		if req.Kind != billing.DocumentKindBill {
			return nil, shared.NewDomainError("INVALID_KIND", "Line items are only supported on bills")
		}
		items, err = buildLineItems(req.LineItems)
		if err != nil {
			return nil, err
		}
		amount = items.Total()
	}

	doc, err := billing.NewDocument(req.Kind, number, contact.ID, contact.Name,
		allocation, valueobject.NewMoney(amount), req.IssueDate, req.DueDate)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := doc.SetLineItems(items); err != nil {
			return nil, err
		}
	}
	doc.SetRemark(req.Remark)

	if req.RentalAgreementID != nil {
		agreement, err := s.rentalRepo.FindByID(ctx, *req.RentalAgreementID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AGREEMENT", "Rental agreement does not exist")
		}
		if agreement.IsCancelled() {
			return nil, shared.NewDomainError("AGREEMENT_CANCELLED", "Rental agreement has been cancelled")
		}
		if doc.IsInvoice() {
			if err := s.checkAgreementCeiling(ctx, agreement, amount, uuid.Nil); err != nil {
				return nil, err
			}
		}
		doc.AttachRentalAgreement(agreement.ID)
	}
	if req.ProjectAgreementID != nil {
		agreement, err := s.projectRepo.FindByID(ctx, *req.ProjectAgreementID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AGREEMENT", "Project agreement does not exist")
		}
		if !agreement.IsActive() {
			return nil, shared.NewDomainError("AGREEMENT_INACTIVE", "Project agreement is not active")
		}
		doc.AttachProjectAgreement(agreement.ID)
	}

	if req.ContractID != nil {
		contract, err := s.contractRepo.FindByID(ctx, *req.ContractID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CONTRACT_LINK", "Contract does not exist")
		}
		if err := billing.LinkContract(doc, contract); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	if generated {
		if err := s.numbering.Consume(ctx, seriesFor(req), number); err != nil {
			return nil, err
		}
	}
	return NewDocumentResponse(doc), nil
}

// checkAgreementCeiling rejects an invoice that would push the total
// invoiced against the agreement past its contract total, beyond the cent
// tolerance
func (s *DocumentService) checkAgreementCeiling(ctx context.Context, agreement *estate.RentalAgreement, amount decimal.Decimal, excludeID uuid.UUID) error {
	if !agreement.HasCeiling() {
		return nil
	}
	invoiced, err := s.docRepo.SumAmountByRentalAgreement(ctx, agreement.ID, excludeID)
	if err != nil {
		return err
	}
	remaining := agreement.RemainingBalance(invoiced)
	if amount.Sub(remaining).GreaterThan(valueobject.CentTolerance) {
		return shared.NewDomainError("AGREEMENT_CEILING",
			fmt.Sprintf("Invoice amount %s exceeds the agreement's remaining balance %s",
				amount.StringFixed(2), remaining.StringFixed(2)))
	}
	return nil
}

// GetDocument fetches one document
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewDocumentResponse(doc), nil
}

// ListDocuments returns a filtered, paginated document list with statuses
// recomputed against the current clock, so overdue flips without requiring
// a write
func (s *DocumentService) ListDocuments(ctx context.Context, filter billing.DocumentFilter) (*shared.Paginated[DocumentResponse], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	docs, err := s.docRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.docRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	responses := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		docs[i].RecomputeStatus(now)
		responses = append(responses, *NewDocumentResponse(&docs[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateDocument edits a document. Edits are rejected while the document
// references a cancelled rental agreement; a contact or allocation change
// re-checks an existing contract link and clears it when stale.
func (s *DocumentService) UpdateDocument(ctx context.Context, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.RentalAgreementID != nil {
		agreement, err := s.rentalRepo.FindByID(ctx, *doc.RentalAgreementID)
		if err == nil && agreement.IsCancelled() {
			return nil, shared.NewDomainError("AGREEMENT_CANCELLED", "Document belongs to a cancelled rental agreement")
		}
	}

	if req.Number != nil {
		if err := s.numbering.EnsureUnique(ctx, doc.Kind, *req.Number, doc.ID); err != nil {
			return nil, err
		}
		if err := doc.SetNumber(*req.Number); err != nil {
			return nil, err
		}
	}

	linkNeedsCheck := false
	if req.ContactID != nil && *req.ContactID != doc.ContactID {
		contact, err := s.contactRepo.FindByID(ctx, *req.ContactID)
		if err != nil {
			return nil, err
		}
		if err := doc.SetContact(contact.ID, contact.Name); err != nil {
			return nil, err
		}
		linkNeedsCheck = true
	}

	if req.Allocation != nil {
		allocation, err := s.classify(ctx, *req.Allocation)
		if err != nil {
			return nil, err
		}
		if err := doc.SetAllocation(allocation); err != nil {
			return nil, err
		}
		linkNeedsCheck = true
	}

	switch {
	case req.ContractID != nil && *req.ContractID == uuid.Nil:
		doc.ClearContract()
	case req.ContractID != nil:
		contract, err := s.contractRepo.FindByID(ctx, *req.ContractID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CONTRACT_LINK", "Contract does not exist")
		}
		if err := billing.LinkContract(doc, contract); err != nil {
			return nil, err
		}
	case linkNeedsCheck && doc.ContractID != nil:
		contract, err := s.contractRepo.FindByID(ctx, *doc.ContractID)
		if err != nil {
			contract = nil
		}
		billing.RevalidateContractLink(doc, contract)
	}

	if len(req.LineItems) > 0 {
		items, err := buildLineItems(req.LineItems)
		if err != nil {
			return nil, err
		}
		if err := doc.SetLineItems(items); err != nil {
			return nil, err
		}
	} else if req.Amount != nil {
		if err := doc.SetAmount(valueobject.NewMoney(*req.Amount)); err != nil {
			return nil, err
		}
	}

	if doc.IsInvoice() && doc.RentalAgreementID != nil && (len(req.LineItems) > 0 || req.Amount != nil) {
		agreement, err := s.rentalRepo.FindByID(ctx, *doc.RentalAgreementID)
		if err == nil {
			if err := s.checkAgreementCeiling(ctx, agreement, doc.Amount, doc.ID); err != nil {
				return nil, err
			}
		}
	}

	if req.DueDate != nil {
		doc.SetDueDate(req.DueDate)
	}
	if req.Remark != nil {
		doc.SetRemark(*req.Remark)
	}

	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	return NewDocumentResponse(doc), nil
}

// DeleteDocument removes a document. Documents with applied payments are
// kept until their ledger transactions have been removed.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !doc.CanDelete() {
		return shared.NewDomainError("DOCUMENT_HAS_PAYMENTS",
			"Document has applied payments; remove its transactions first")
	}
	return s.docRepo.Delete(ctx, id)
}

// GenerateRentalInvoice raises the pro-rated first invoice (or a full-month
// follow-up) for a rental agreement. The first invoice includes the security
// deposit; the Rental Income category must exist in the store or generation
// fails outright.
func (s *DocumentService) GenerateRentalInvoice(ctx context.Context, agreementID uuid.UUID, periodStart time.Time) (*DocumentResponse, error) {
	agreement, err := s.rentalRepo.FindByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if !agreement.IsActive() {
		return nil, shared.NewDomainError("AGREEMENT_INACTIVE", "Rental agreement is not active")
	}
	tenant, err := s.contactRepo.FindByID(ctx, agreement.TenantContactID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByName(ctx, estate.RentalIncomeCategoryName); err != nil {
		return nil, shared.ErrStoreIntegrity
	}

	deposit := decimal.Zero
	if !agreement.SecurityDepositBilled {
		deposit = agreement.SecurityDeposit
	}
	proration, err := billing.ProrateRent(billing.ProrationInput{
		MonthlyRent:     agreement.MonthlyRent,
		PeriodStart:     periodStart,
		GracePeriodDays: agreement.GracePeriodDays,
		SecurityDeposit: deposit,
	})
	if err != nil {
		return nil, err
	}
	if proration.Total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Nothing to invoice for the period")
	}
	if err := s.checkAgreementCeiling(ctx, agreement, proration.Total, uuid.Nil); err != nil {
		return nil, err
	}

	allocation, err := s.classify(ctx, AllocationInput{PropertyID: &agreement.PropertyID})
	if err != nil {
		return nil, err
	}

	number, err := s.numbering.NextNumber(ctx, sequence.SeriesRentalInvoice)
	if err != nil {
		return nil, err
	}
	dueDate := rentDueDate(periodStart, agreement.RentDueDay)

	doc, err := billing.NewDocument(billing.DocumentKindInvoice, number,
		tenant.ID, tenant.Name, allocation,
		valueobject.NewMoney(proration.Total), s.now(), &dueDate)
	if err != nil {
		return nil, err
	}
	doc.AttachRentalAgreement(agreement.ID)
	remark := fmt.Sprintf("Rent for %d of %d days", proration.BillableDays, proration.DaysInMonth)
	if deposit.GreaterThan(decimal.Zero) {
		remark += fmt.Sprintf(", security deposit %s", deposit.StringFixed(2))
	}
	doc.SetRemark(remark)

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.numbering.Consume(ctx, sequence.SeriesRentalInvoice, number); err != nil {
		return nil, err
	}
	if deposit.GreaterThan(decimal.Zero) {
		agreement.SecurityDepositBilled = true
		agreement.Touch()
		if err := s.rentalRepo.Save(ctx, agreement); err != nil {
			return nil, err
		}
	}
	return NewDocumentResponse(doc), nil
}

// rentDueDate returns the first occurrence of the agreement's rent due day
// on or after the period start
func rentDueDate(periodStart time.Time, dueDay int) time.Time {
	due := time.Date(periodStart.Year(), periodStart.Month(), dueDay, 0, 0, 0, 0, periodStart.Location())
	if due.Before(periodStart) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}
