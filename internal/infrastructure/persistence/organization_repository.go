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

// GormProjectRepository implements estate.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all projects with filtering
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Project, error) {
	var projectModels []models.ProjectModel
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}
	query = applyPagination(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}
	projects := make([]estate.Project, len(projectModels))
	for i, model := range projectModels {
		projects[i] = *model.ToDomain()
	}
	return projects, nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, project *estate.Project) error {
	model := &models.ProjectModel{}
	model.FromDomain(project)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormBuildingRepository implements estate.BuildingRepository using GORM
type GormBuildingRepository struct {
	db *gorm.DB
}

// NewGormBuildingRepository creates a new GormBuildingRepository
func NewGormBuildingRepository(db *gorm.DB) *GormBuildingRepository {
	return &GormBuildingRepository{db: db}
}

// FindByID finds a building by its ID
func (r *GormBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Building, error) {
	var model models.BuildingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all buildings with filtering
func (r *GormBuildingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Building, error) {
	var buildingModels []models.BuildingModel
	query := r.db.WithContext(ctx).Model(&models.BuildingModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}
	query = applyPagination(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&buildingModels).Error; err != nil {
		return nil, err
	}
	buildings := make([]estate.Building, len(buildingModels))
	for i, model := range buildingModels {
		buildings[i] = *model.ToDomain()
	}
	return buildings, nil
}

// Save creates or updates a building
func (r *GormBuildingRepository) Save(ctx context.Context, building *estate.Building) error {
	model := &models.BuildingModel{}
	model.FromDomain(building)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a building
func (r *GormBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BuildingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormPropertyRepository implements estate.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties with filtering
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyPagination(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	properties := make([]estate.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// FindByBuilding finds all properties inside a building
func (r *GormPropertyRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]estate.Property, error) {
	var propertyModels []models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("name ASC").
		Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	properties := make([]estate.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *estate.Property) error {
	model := &models.PropertyModel{}
	model.FromDomain(property)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormStaffRepository implements estate.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*estate.StaffMember, error) {
	var model models.StaffMemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all staff members with filtering
func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]estate.StaffMember, error) {
	var staffModels []models.StaffMemberModel
	query := r.db.WithContext(ctx).Model(&models.StaffMemberModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR role ILIKE ?", pattern, pattern)
	}
	query = applyPagination(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}
	staff := make([]estate.StaffMember, len(staffModels))
	for i, model := range staffModels {
		staff[i] = *model.ToDomain()
	}
	return staff, nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *estate.StaffMember) error {
	model := &models.StaffMemberModel{}
	model.FromDomain(staff)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a staff member
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffMemberModel{}, "id = ?", id)
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
	_ estate.ProjectRepository  = (*GormProjectRepository)(nil)
	_ estate.BuildingRepository = (*GormBuildingRepository)(nil)
	_ estate.PropertyRepository = (*GormPropertyRepository)(nil)
	_ estate.StaffRepository    = (*GormStaffRepository)(nil)
)
