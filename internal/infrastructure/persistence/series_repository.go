package persistence

import (
	"context"
	"errors"

	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSeriesRepository implements sequence.SeriesRepository using GORM
type GormSeriesRepository struct {
	db *gorm.DB
}

// NewGormSeriesRepository creates a new GormSeriesRepository
func NewGormSeriesRepository(db *gorm.DB) *GormSeriesRepository {
	return &GormSeriesRepository{db: db}
}

// FindByKey finds a numbering series by its key
func (r *GormSeriesRepository) FindByKey(ctx context.Context, key sequence.SeriesKey) (*sequence.Series, error) {
	var model models.SeriesModel
	if err := r.db.WithContext(ctx).
		First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a numbering series
func (r *GormSeriesRepository) Save(ctx context.Context, series *sequence.Series) error {
	model := models.SeriesModelFromDomain(series)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormSeriesRepository implements sequence.SeriesRepository
var _ sequence.SeriesRepository = (*GormSeriesRepository)(nil)
