package repositories

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"vikendica/errors"
	"vikendica/models"
)

type CottageRepository struct {
	db *gorm.DB
}

func NewCottageRepository(db *gorm.DB) *CottageRepository {
	return &CottageRepository{db: db}
}

func (r *CottageRepository) FindByID(ctx context.Context, id string) (*models.Cottage, error) {
	var cottage models.Cottage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cottage).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrCottageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cottage, nil
}

// UpdateRating stores the aggregate rating of the cottage.
func (r *CottageRepository) UpdateRating(ctx context.Context, id string, ocena float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Cottage{}).
		Where("id = ?", id).
		UpdateColumn("ocena", ocena)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrCottageNotFound
	}
	return nil
}

// Create is used by seeding and tests; listing cottages belongs to another service.
func (r *CottageRepository) Create(ctx context.Context, cottage *models.Cottage) error {
	return r.db.WithContext(ctx).Create(cottage).Error
}
