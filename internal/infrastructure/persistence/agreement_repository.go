package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRentalAgreementRepository implements estate.RentalAgreementRepository using GORM
type GormRentalAgreementRepository struct {
	db *gorm.DB
}

// NewGormRentalAgreementRepository creates a new GormRentalAgreementRepository
func NewGormRentalAgreementRepository(db *gorm.DB) *GormRentalAgreementRepository {
	return &GormRentalAgreementRepository{db: db}
}

// FindByID finds a rental agreement by its ID
func (r *GormRentalAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.RentalAgreement, error) {
	var model models.RentalAgreementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all rental agreements with filtering
func (r *GormRentalAgreementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.RentalAgreement, error) {
	var agreementModels []models.RentalAgreementModel
	query := r.db.WithContext(ctx).Model(&models.RentalAgreementModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&agreementModels).Error; err != nil {
		return nil, err
	}
	agreements := make([]estate.RentalAgreement, len(agreementModels))
	for i, model := range agreementModels {
		agreements[i] = *model.ToDomain()
	}
	return agreements, nil
}

// FindByProperty finds all rental agreements on a property
func (r *GormRentalAgreementRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]estate.RentalAgreement, error) {
	var agreementModels []models.RentalAgreementModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("start_date DESC").
		Find(&agreementModels).Error; err != nil {
		return nil, err
	}
	agreements := make([]estate.RentalAgreement, len(agreementModels))
	for i, model := range agreementModels {
		agreements[i] = *model.ToDomain()
	}
	return agreements, nil
}

// FindByTenant finds all rental agreements held by a tenant contact
func (r *GormRentalAgreementRepository) FindByTenant(ctx context.Context, tenantContactID uuid.UUID) ([]estate.RentalAgreement, error) {
	var agreementModels []models.RentalAgreementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_contact_id = ?", tenantContactID).
		Order("start_date DESC").
		Find(&agreementModels).Error; err != nil {
		return nil, err
	}
	agreements := make([]estate.RentalAgreement, len(agreementModels))
	for i, model := range agreementModels {
		agreements[i] = *model.ToDomain()
	}
	return agreements, nil
}

// Save creates or updates a rental agreement
func (r *GormRentalAgreementRepository) Save(ctx context.Context, agreement *estate.RentalAgreement) error {
	model := &models.RentalAgreementModel{}
	model.FromDomain(agreement)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a rental agreement
func (r *GormRentalAgreementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RentalAgreementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormProjectAgreementRepository implements estate.ProjectAgreementRepository using GORM
type GormProjectAgreementRepository struct {
	db *gorm.DB
}

// NewGormProjectAgreementRepository creates a new GormProjectAgreementRepository
func NewGormProjectAgreementRepository(db *gorm.DB) *GormProjectAgreementRepository {
	return &GormProjectAgreementRepository{db: db}
}

// FindByID finds a project agreement by its ID
func (r *GormProjectAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.ProjectAgreement, error) {
	var model models.ProjectAgreementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all project agreements with filtering
func (r *GormProjectAgreementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.ProjectAgreement, error) {
	var agreementModels []models.ProjectAgreementModel
	query := r.db.WithContext(ctx).Model(&models.ProjectAgreementModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&agreementModels).Error; err != nil {
		return nil, err
	}
	agreements := make([]estate.ProjectAgreement, len(agreementModels))
	for i, model := range agreementModels {
		agreements[i] = *model.ToDomain()
	}
	return agreements, nil
}

// FindByProject finds all project agreements on a project
func (r *GormProjectAgreementRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]estate.ProjectAgreement, error) {
	var agreementModels []models.ProjectAgreementModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&agreementModels).Error; err != nil {
		return nil, err
	}
	agreements := make([]estate.ProjectAgreement, len(agreementModels))
	for i, model := range agreementModels {
		agreements[i] = *model.ToDomain()
	}
	return agreements, nil
}

// Save creates or updates a project agreement
func (r *GormProjectAgreementRepository) Save(ctx context.Context, agreement *estate.ProjectAgreement) error {
	model := &models.ProjectAgreementModel{}
	model.FromDomain(agreement)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a project agreement
func (r *GormProjectAgreementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectAgreementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Interface conformance checks
var (
	_ estate.RentalAgreementRepository  = (*GormRentalAgreementRepository)(nil)
	_ estate.ProjectAgreementRepository = (*GormProjectAgreementRepository)(nil)
)
