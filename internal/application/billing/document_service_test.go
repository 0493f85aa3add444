package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentServiceMocks struct {
	docRepo      *MockDocumentRepository
	contactRepo  *MockContactRepository
	propertyRepo *MockPropertyRepository
	contractRepo *MockContractRepository
	rentalRepo   *MockRentalAgreementRepository
	projectRepo  *MockProjectAgreementRepository
	categoryRepo *MockCategoryRepository
	seriesRepo   *MockSeriesRepository
}

func newDocumentService(opts ...DocumentServiceOption) (*DocumentService, *documentServiceMocks) {
	m := &documentServiceMocks{
		docRepo:      new(MockDocumentRepository),
		contactRepo:  new(MockContactRepository),
		propertyRepo: new(MockPropertyRepository),
		contractRepo: new(MockContractRepository),
		rentalRepo:   new(MockRentalAgreementRepository),
		projectRepo:  new(MockProjectAgreementRepository),
		categoryRepo: new(MockCategoryRepository),
		seriesRepo:   new(MockSeriesRepository),
	}
	numbering := NewNumberingService(m.seriesRepo, m.docRepo)
	service := NewDocumentService(m.docRepo, m.contactRepo, m.propertyRepo, m.contractRepo,
		m.rentalRepo, m.projectRepo, m.categoryRepo, numbering, opts...)
	return service, m
}

func sequenceSeries() (*sequence.Series, error) {
	return sequence.NewSeries(sequence.SeriesBill, "BILL-", 5)
}

func rentalSeries() (*sequence.Series, error) {
	return sequence.NewSeries(sequence.SeriesRentalInvoice, "RINV-", 5)
}

func stubVendor(m *documentServiceMocks, name string) *estate.Contact {
	contact, _ := estate.NewContact(name, estate.ContactTypeVendor)
	m.contactRepo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	return contact
}

func TestDocumentService_CreateDocument_GeneratedNumber(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()
	vendor := stubVendor(m, "Acme Maintenance")

	series, err := sequenceSeries()
	require.NoError(t, err)
	m.seriesRepo.On("FindByKey", ctx, series.Key).Return(series, nil)
	m.seriesRepo.On("Save", ctx, mock.Anything).Return(nil)
	m.docRepo.On("ListNumbersByPrefix", ctx, billing.DocumentKindBill, "BILL-").Return([]string{}, nil)
	m.docRepo.On("NumberExists", ctx, billing.DocumentKindBill, "BILL-00001", uuid.Nil).Return(false, nil)
	m.docRepo.On("Save", ctx, mock.AnythingOfType("*billing.Document")).Return(nil)

	result, err := service.CreateDocument(ctx, CreateDocumentRequest{
		Kind:      billing.DocumentKindBill,
		ContactID: vendor.ID,
		Amount:    decimal.NewFromFloat(750.00),
		IssueDate: time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "BILL-00001", result.Number)
	assert.Equal(t, vendor.Name, result.ContactName)
	assert.Equal(t, billing.DocumentStatusUnpaid, result.Status)
	assert.Equal(t, 2, series.NextNumber)
}

func TestDocumentService_CreateDocument_DuplicateManualNumber(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()
	vendor := stubVendor(m, "Acme Maintenance")

	m.docRepo.On("NumberExists", ctx, billing.DocumentKindBill, "BILL-00099", uuid.Nil).Return(true, nil)

	_, err := service.CreateDocument(ctx, CreateDocumentRequest{
		Kind:      billing.DocumentKindBill,
		Number:    "BILL-00099",
		ContactID: vendor.ID,
		Amount:    decimal.NewFromFloat(100.00),
		IssueDate: time.Now(),
	})

	require.ErrorIs(t, err, shared.ErrDuplicateNumber)
	m.docRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDocumentService_CreateDocument_LineItemsDeriveAmount(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()
	vendor := stubVendor(m, "Acme Maintenance")

	m.docRepo.On("NumberExists", ctx, billing.DocumentKindBill, "BILL-00042", uuid.Nil).Return(false, nil)
	m.docRepo.On("Save", ctx, mock.Anything).Return(nil)

	net := decimal.NewFromFloat(120.50)
	result, err := service.CreateDocument(ctx, CreateDocumentRequest{
		Kind:      billing.DocumentKindBill,
		Number:    "BILL-00042",
		ContactID: vendor.ID,
		Amount:    decimal.NewFromFloat(1.00), // Ignored once line items exist
		LineItems: []LineItemInput{
			{CategoryID: uuid.New(), Unit: "hour", Quantity: decimal.NewFromInt(3), PricePerUnit: decimal.NewFromFloat(50.00)},
			{CategoryID: uuid.New(), Unit: "part", Quantity: decimal.NewFromInt(1), PricePerUnit: decimal.NewFromFloat(10.00), NetValue: &net},
		},
		IssueDate: time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(decimal.NewFromFloat(270.50)))
	assert.Len(t, result.LineItems, 2)
}

func TestDocumentService_CreateDocument_PropertyResolvesBuilding(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()
	vendor := stubVendor(m, "Acme Maintenance")

	building, err := estate.NewBuilding("Harbor House", "1 Quay St")
	require.NoError(t, err)
	property, err := estate.NewProperty("Unit 4B", building.ID)
	require.NoError(t, err)
	m.propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	m.docRepo.On("NumberExists", ctx, billing.DocumentKindBill, "BILL-00010", uuid.Nil).Return(false, nil)
	m.docRepo.On("Save", ctx, mock.Anything).Return(nil)

	result, err := service.CreateDocument(ctx, CreateDocumentRequest{
		Kind:       billing.DocumentKindBill,
		Number:     "BILL-00010",
		ContactID:  vendor.ID,
		Allocation: AllocationInput{PropertyID: &property.ID},
		Amount:     decimal.NewFromFloat(90.00),
		IssueDate:  time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, billing.AllocationKindBuildingOwner, result.Allocation.Kind)
	require.NotNil(t, result.Allocation.BuildingID)
	assert.Equal(t, building.ID, *result.Allocation.BuildingID)
}

func TestDocumentService_CreateDocument_CancelledAgreementRejected(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()
	vendor := stubVendor(m, "Acme Maintenance")

	agreement, err := estate.NewRentalAgreement(uuid.New(), uuid.New(),
		decimal.NewFromFloat(1200.00), decimal.Zero, decimal.Zero, 5, time.Now())
	require.NoError(t, err)
	agreement.Status = estate.AgreementStatusCancelled
	m.rentalRepo.On("FindByID", ctx, agreement.ID).Return(agreement, nil)
	m.docRepo.On("NumberExists", ctx, billing.DocumentKindBill, "BILL-00011", uuid.Nil).Return(false, nil)

	_, err = service.CreateDocument(ctx, CreateDocumentRequest{
		Kind:              billing.DocumentKindBill,
		Number:            "BILL-00011",
		ContactID:         vendor.ID,
		RentalAgreementID: &agreement.ID,
		Amount:            decimal.NewFromFloat(100.00),
		IssueDate:         time.Now(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AGREEMENT_CANCELLED", domainErr.Code)
}

func TestDocumentService_CreateDocument_ContractVendorMismatch(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()
	vendor := stubVendor(m, "Acme Maintenance")

	otherVendor := uuid.New()
	contract, err := estate.NewContract("CTR-001", otherVendor, nil, decimal.NewFromFloat(5000.00))
	require.NoError(t, err)
	m.contractRepo.On("FindByID", ctx, contract.ID).Return(contract, nil)
	m.docRepo.On("NumberExists", ctx, billing.DocumentKindBill, "BILL-00012", uuid.Nil).Return(false, nil)

	_, err = service.CreateDocument(ctx, CreateDocumentRequest{
		Kind:       billing.DocumentKindBill,
		Number:     "BILL-00012",
		ContactID:  vendor.ID,
		ContractID: &contract.ID,
		Amount:     decimal.NewFromFloat(100.00),
		IssueDate:  time.Now(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONTRACT_VENDOR_MISMATCH", domainErr.Code)
}

func TestDocumentService_UpdateDocument_ContactChangeClearsStaleContract(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	doc := createTestBill(t, 500.00)
	contract, err := estate.NewContract("CTR-001", doc.ContactID, nil, decimal.NewFromFloat(5000.00))
	require.NoError(t, err)
	require.NoError(t, billing.LinkContract(doc, contract))

	newVendor, err := estate.NewContact("Other Vendor", estate.ContactTypeVendor)
	require.NoError(t, err)

	m.docRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	m.contactRepo.On("FindByID", ctx, newVendor.ID).Return(newVendor, nil)
	m.contractRepo.On("FindByID", ctx, contract.ID).Return(contract, nil)
	m.docRepo.On("SaveWithLock", ctx, mock.Anything).Return(nil)

	result, err := service.UpdateDocument(ctx, doc.ID, UpdateDocumentRequest{
		ContactID: &newVendor.ID,
	})

	require.NoError(t, err)
	assert.Nil(t, result.ContractID)
	assert.Equal(t, newVendor.ID, result.ContactID)
}

func TestDocumentService_UpdateDocument_CancelledAgreementBlocksEdits(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	agreement, err := estate.NewRentalAgreement(uuid.New(), uuid.New(),
		decimal.NewFromFloat(1200.00), decimal.Zero, decimal.Zero, 5, time.Now())
	require.NoError(t, err)
	agreement.Status = estate.AgreementStatusCancelled

	doc := createTestInvoice(t, 600.00)
	doc.AttachRentalAgreement(agreement.ID)

	m.docRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	m.rentalRepo.On("FindByID", ctx, agreement.ID).Return(agreement, nil)

	remark := "updated"
	_, err = service.UpdateDocument(ctx, doc.ID, UpdateDocumentRequest{Remark: &remark})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AGREEMENT_CANCELLED", domainErr.Code)
}

func TestDocumentService_UpdateDocument_AmountBelowPaidRejected(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	doc := createTestBill(t, 500.00)
	require.NoError(t, doc.ApplyPayment(valueobject.NewMoneyFromFloat(300.00), time.Now()))
	m.docRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)

	lower := decimal.NewFromFloat(200.00)
	_, err := service.UpdateDocument(ctx, doc.ID, UpdateDocumentRequest{Amount: &lower})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMOUNT_BELOW_PAID", domainErr.Code)
}

func TestDocumentService_DeleteDocument_WithPaymentsRejected(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	doc := createTestBill(t, 500.00)
	require.NoError(t, doc.ApplyPayment(valueobject.NewMoneyFromFloat(100.00), time.Now()))
	m.docRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)

	err := service.DeleteDocument(ctx, doc.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DOCUMENT_HAS_PAYMENTS", domainErr.Code)
	m.docRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDocumentService_GenerateRentalInvoice_ProratedWithDeposit(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	tenant, err := estate.NewContact("Jordan Tenant", estate.ContactTypeTenant)
	require.NoError(t, err)
	building, err := estate.NewBuilding("Harbor House", "1 Quay St")
	require.NoError(t, err)
	property, err := estate.NewProperty("Unit 4B", building.ID)
	require.NoError(t, err)

	agreement, err := estate.NewRentalAgreement(tenant.ID, property.ID,
		decimal.NewFromFloat(3000.00), decimal.NewFromFloat(1000.00), decimal.Zero, 5,
		time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	rentalIncome, err := estate.NewCategory("Rental Income", estate.CategoryKindIncome)
	require.NoError(t, err)

	series, err := rentalSeries()
	require.NoError(t, err)

	m.rentalRepo.On("FindByID", ctx, agreement.ID).Return(agreement, nil)
	m.rentalRepo.On("Save", ctx, agreement).Return(nil)
	m.contactRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	m.categoryRepo.On("FindByName", ctx, "Rental Income").Return(rentalIncome, nil)
	m.propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	m.seriesRepo.On("FindByKey", ctx, series.Key).Return(series, nil)
	m.seriesRepo.On("Save", ctx, mock.Anything).Return(nil)
	m.docRepo.On("ListNumbersByPrefix", ctx, billing.DocumentKindInvoice, "RINV-").Return([]string{}, nil)
	m.docRepo.On("Save", ctx, mock.Anything).Return(nil)

	// April has 30 days; moving in on the 16th bills 15 days at 100/day
	result, err := service.GenerateRentalInvoice(ctx, agreement.ID,
		time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(decimal.NewFromFloat(2500.00)),
		"expected 1500 rent + 1000 deposit, got %s", result.Amount)
	assert.Equal(t, "RINV-00001", result.Number)
	assert.Equal(t, billing.AllocationKindBuildingOwner, result.Allocation.Kind)
	assert.True(t, agreement.SecurityDepositBilled)
}

func TestDocumentService_GenerateRentalInvoice_MissingRentalIncomeCategory(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	agreement, err := estate.NewRentalAgreement(uuid.New(), uuid.New(),
		decimal.NewFromFloat(3000.00), decimal.Zero, decimal.Zero, 5, time.Now())
	require.NoError(t, err)
	tenant, err := estate.NewContact("Jordan Tenant", estate.ContactTypeTenant)
	require.NoError(t, err)
	tenant.ID = agreement.TenantContactID

	m.rentalRepo.On("FindByID", ctx, agreement.ID).Return(agreement, nil)
	m.contactRepo.On("FindByID", ctx, agreement.TenantContactID).Return(tenant, nil)
	m.categoryRepo.On("FindByName", ctx, "Rental Income").Return(nil, shared.ErrNotFound)

	_, err = service.GenerateRentalInvoice(ctx, agreement.ID, time.Now())

	require.ErrorIs(t, err, shared.ErrStoreIntegrity)
	m.docRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDocumentService_GenerateRentalInvoice_CeilingRejected(t *testing.T) {
	ctx := context.Background()
	service, m := newDocumentService()

	tenant, err := estate.NewContact("Jordan Tenant", estate.ContactTypeTenant)
	require.NoError(t, err)
	agreement, err := estate.NewRentalAgreement(tenant.ID, uuid.New(),
		decimal.NewFromFloat(3000.00), decimal.Zero, decimal.NewFromFloat(10000.00), 5,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	rentalIncome, err := estate.NewCategory("Rental Income", estate.CategoryKindIncome)
	require.NoError(t, err)

	m.rentalRepo.On("FindByID", ctx, agreement.ID).Return(agreement, nil)
	m.contactRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	m.categoryRepo.On("FindByName", ctx, "Rental Income").Return(rentalIncome, nil)
	m.docRepo.On("SumAmountByRentalAgreement", ctx, agreement.ID, uuid.Nil).
		Return(decimal.NewFromFloat(9000.00), nil)

	// Full month of 3000 against a remaining balance of 1000
	_, err = service.GenerateRentalInvoice(ctx, agreement.ID,
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AGREEMENT_CEILING", domainErr.Code)
}
