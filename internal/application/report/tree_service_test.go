package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *estate.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.Building), args.Error(1)
}

func (m *MockBuildingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Building, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.Building), args.Error(1)
}

func (m *MockBuildingRepository) Save(ctx context.Context, building *estate.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estate.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.StaffMember, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]estate.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, staff *estate.StaffMember) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Test Helpers
// =============================================================================

func newTreeService() (*TreeService, *MockDocumentRepository, *MockProjectRepository, *MockBuildingRepository) {
	docRepo := new(MockDocumentRepository)
	projectRepo := new(MockProjectRepository)
	buildingRepo := new(MockBuildingRepository)
	staffRepo := new(MockStaffRepository)
	return NewTreeService(docRepo, projectRepo, buildingRepo, staffRepo), docRepo, projectRepo, buildingRepo
}

func billFor(t *testing.T, number, contactName string, allocation billing.Allocation, amount, paid float64) billing.Document {
	t.Helper()
	doc, err := billing.NewDocument(billing.DocumentKindBill, number, uuid.New(), contactName,
		allocation, valueobject.NewMoneyFromFloat(amount), time.Now(), nil)
	require.NoError(t, err)
	if paid > 0 {
		require.NoError(t, doc.ApplyPayment(valueobject.NewMoneyFromFloat(paid), time.Now()))
	}
	return *doc
}

// =============================================================================
// Tests
// =============================================================================

func TestTreeService_BuildTree_GroupsAndTotals(t *testing.T) {
	ctx := context.Background()
	service, docRepo, projectRepo, _ := newTreeService()

	project, err := estate.NewProject("Riverside Renovation", "RIV")
	require.NoError(t, err)
	projectAlloc, err := billing.ProjectAllocation(project.ID)
	require.NoError(t, err)

	docs := []billing.Document{
		billFor(t, "BILL-00001", "Acme Maintenance", projectAlloc, 1000.00, 400.00),
		billFor(t, "BILL-00002", "Acme Maintenance", projectAlloc, 500.00, 0),
		billFor(t, "BILL-00003", "Brightline Electrics", projectAlloc, 300.00, 300.00),
		billFor(t, "BILL-00004", "Citywide Cleaning", billing.UnassignedAllocation(), 200.00, 0),
	}
	docRepo.On("FindAll", ctx, mock.Anything).Return(docs, nil)
	projectRepo.On("FindByID", ctx, project.ID).Return(project, nil)

	tree, err := service.BuildTree(ctx, TreeFilter{Kind: billing.DocumentKindBill})

	require.NoError(t, err)
	assert.Equal(t, 4, tree.Count)
	assert.True(t, tree.Amount.Equal(decimal.NewFromFloat(2000.00)))
	assert.True(t, tree.Paid.Equal(decimal.NewFromFloat(700.00)))
	assert.True(t, tree.Balance.Equal(decimal.NewFromFloat(1300.00)))

	require.Len(t, tree.Groups, 2)
	riverside := tree.Groups[0]
	assert.Equal(t, "Riverside Renovation", riverside.GroupName)
	assert.Equal(t, 3, riverside.Count)
	assert.True(t, riverside.Balance.Equal(decimal.NewFromFloat(1100.00)))
	require.Len(t, riverside.Contacts, 2)
	// Contacts sort by name ascending
	assert.Equal(t, "Acme Maintenance", riverside.Contacts[0].ContactName)
	assert.Equal(t, 2, riverside.Contacts[0].Count)
	assert.Equal(t, "Brightline Electrics", riverside.Contacts[1].ContactName)

	// The unassigned bucket comes last
	unassigned := tree.Groups[1]
	assert.Equal(t, UnassignedGroupName, unassigned.GroupName)
	assert.Equal(t, uuid.Nil, unassigned.GroupID)
	assert.Equal(t, 1, unassigned.Count)
}

func TestTreeService_BuildTree_BuildingGroupsMergeServiceAndOwner(t *testing.T) {
	ctx := context.Background()
	service, docRepo, _, buildingRepo := newTreeService()

	building, err := estate.NewBuilding("Harbor House", "1 Quay St")
	require.NoError(t, err)
	property, err := estate.NewProperty("Unit 4B", building.ID)
	require.NoError(t, err)

	serviceAlloc, err := billing.BuildingServiceAllocation(building.ID)
	require.NoError(t, err)
	ownerAlloc, err := billing.BuildingOwnerAllocation(building.ID, property.ID)
	require.NoError(t, err)

	docs := []billing.Document{
		billFor(t, "BILL-00001", "Citywide Cleaning", serviceAlloc, 150.00, 0),
		billFor(t, "BILL-00002", "Fixit Plumbing", ownerAlloc, 250.00, 0),
	}
	docRepo.On("FindAll", ctx, mock.Anything).Return(docs, nil)
	buildingRepo.On("FindByID", ctx, building.ID).Return(building, nil)

	tree, err := service.BuildTree(ctx, TreeFilter{Kind: billing.DocumentKindBill})

	require.NoError(t, err)
	// Both allocation kinds share the building as their root
	require.Len(t, tree.Groups, 1)
	assert.Equal(t, "Harbor House", tree.Groups[0].GroupName)
	assert.Equal(t, 2, tree.Groups[0].Count)
	assert.True(t, tree.Groups[0].Amount.Equal(decimal.NewFromFloat(400.00)))
}

func TestTreeService_BuildTree_Empty(t *testing.T) {
	ctx := context.Background()
	service, docRepo, _, _ := newTreeService()

	docRepo.On("FindAll", ctx, mock.Anything).Return([]billing.Document{}, nil)

	tree, err := service.BuildTree(ctx, TreeFilter{Kind: billing.DocumentKindInvoice})

	require.NoError(t, err)
	assert.Zero(t, tree.Count)
	assert.Empty(t, tree.Groups)
	assert.True(t, tree.Amount.IsZero())
}

func TestTreeService_BuildTree_DeletedRootKeepsPlaceholder(t *testing.T) {
	ctx := context.Background()
	service, docRepo, projectRepo, _ := newTreeService()

	projectID := uuid.New()
	alloc, err := billing.ProjectAllocation(projectID)
	require.NoError(t, err)

	docs := []billing.Document{
		billFor(t, "BILL-00001", "Acme Maintenance", alloc, 100.00, 0),
	}
	docRepo.On("FindAll", ctx, mock.Anything).Return(docs, nil)
	projectRepo.On("FindByID", ctx, projectID).Return(nil, shared.ErrNotFound)

	tree, err := service.BuildTree(ctx, TreeFilter{Kind: billing.DocumentKindBill})

	require.NoError(t, err)
	require.Len(t, tree.Groups, 1)
	assert.Equal(t, "(deleted)", tree.Groups[0].GroupName)
}
