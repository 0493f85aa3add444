package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByNumber(ctx context.Context, kind billing.DocumentKind, number string) (*billing.Document, error) {
	args := m.Called(ctx, kind, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter billing.DocumentFilter) ([]billing.Document, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter billing.DocumentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *billing.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveWithLock(ctx context.Context, doc *billing.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) NumberExists(ctx context.Context, kind billing.DocumentKind, number string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) ListNumbersByPrefix(ctx context.Context, kind billing.DocumentKind, prefix string) ([]string, error) {
	args := m.Called(ctx, kind, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentRepository) SumAmountByRentalAgreement(ctx context.Context, agreementID, excludeID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, agreementID, excludeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Contact, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByType(ctx context.Context, contactType estate.ContactType) ([]estate.Contact, error) {
	args := m.Called(ctx, contactType)
	return args.Get(0).([]estate.Contact), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *estate.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]estate.Property, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]estate.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *estate.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Contract, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]estate.Contract, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]estate.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *estate.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRentalAgreementRepository struct {
	mock.Mock
}

func (m *MockRentalAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.RentalAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.RentalAgreement), args.Error(1)
}

func (m *MockRentalAgreementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.RentalAgreement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.RentalAgreement), args.Error(1)
}

func (m *MockRentalAgreementRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]estate.RentalAgreement, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]estate.RentalAgreement), args.Error(1)
}

func (m *MockRentalAgreementRepository) FindByTenant(ctx context.Context, tenantContactID uuid.UUID) ([]estate.RentalAgreement, error) {
	args := m.Called(ctx, tenantContactID)
	return args.Get(0).([]estate.RentalAgreement), args.Error(1)
}

func (m *MockRentalAgreementRepository) Save(ctx context.Context, agreement *estate.RentalAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}

func (m *MockRentalAgreementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProjectAgreementRepository struct {
	mock.Mock
}

func (m *MockProjectAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.ProjectAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.ProjectAgreement), args.Error(1)
}

func (m *MockProjectAgreementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.ProjectAgreement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.ProjectAgreement), args.Error(1)
}

func (m *MockProjectAgreementRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]estate.ProjectAgreement, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]estate.ProjectAgreement), args.Error(1)
}

func (m *MockProjectAgreementRepository) Save(ctx context.Context, agreement *estate.ProjectAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}

func (m *MockProjectAgreementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*estate.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *estate.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSeriesRepository struct {
	mock.Mock
}

func (m *MockSeriesRepository) FindByKey(ctx context.Context, key sequence.SeriesKey) (*sequence.Series, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequence.Series), args.Error(1)
}

func (m *MockSeriesRepository) Save(ctx context.Context, series *sequence.Series) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}
