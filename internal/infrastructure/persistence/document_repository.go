package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDocumentRepository implements billing.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a document of the kind by its number, matched
// case-insensitively on the trimmed value
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, kind billing.DocumentKind, number string) (*billing.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND LOWER(number) = LOWER(?)", kind, strings.TrimSpace(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter billing.DocumentFilter) ([]billing.Document, error) {
	var documentModels []models.DocumentModel
	query := r.db.WithContext(ctx).Model(&models.DocumentModel{})
	query = r.applyFilter(query, filter)

	// PageSize -1 disables pagination; rollup trees load all matches
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "issue_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}
	documents := make([]billing.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter billing.DocumentFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.DocumentModel{})
	query = r.applyFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *billing.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock persists the document with an optimistic version check.
// Returns shared.ErrConcurrencyConflict on a stale read.
func (r *GormDocumentRepository) SaveWithLock(ctx context.Context, doc *billing.Document) error {
	model := models.DocumentModelFromDomain(doc)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NumberExists reports whether another document of the kind carries the
// number, matched case-insensitively on the trimmed value
func (r *GormDocumentRepository) NumberExists(ctx context.Context, kind billing.DocumentKind, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("kind = ? AND LOWER(number) = LOWER(?)", kind, strings.TrimSpace(number))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListNumbersByPrefix returns all document numbers of the kind starting with
// the prefix; the sequencer's collision guard scans them
func (r *GormDocumentRepository) ListNumbersByPrefix(ctx context.Context, kind billing.DocumentKind, prefix string) ([]string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("kind = ? AND number ILIKE ?", kind, prefix+"%").
		Pluck("number", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

// SumAmountByRentalAgreement totals the amounts of all invoices already
// raised against the agreement, excluding the given document
func (r *GormDocumentRepository) SumAmountByRentalAgreement(ctx context.Context, agreementID, excludeID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("kind = ? AND rental_agreement_id = ?", billing.DocumentKindInvoice, agreementID)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter options to the query, without pagination
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter billing.DocumentFilter) *gorm.DB {
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.ProjectID != nil {
		query = query.Where("allocation->>'project_id' = ?", filter.ProjectID.String())
	}
	if filter.BuildingID != nil {
		query = query.Where("allocation->>'building_id' = ?", filter.BuildingID.String())
	}
	if filter.StaffID != nil {
		query = query.Where("allocation->>'staff_id' = ?", filter.StaffID.String())
	}
	if filter.AllocationKind != "" {
		query = query.Where("allocation->>'kind' = ?", string(filter.AllocationKind))
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issue_date >= ?", *filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		query = query.Where("issue_date <= ?", *filter.IssuedTo)
	}
	if filter.Outstanding {
		query = query.Where("amount - paid_amount > 0")
	}
	return query
}

// Ensure GormDocumentRepository implements billing.DocumentRepository
var _ billing.DocumentRepository = (*GormDocumentRepository)(nil)
