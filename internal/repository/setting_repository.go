package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

type SettingRepository struct {
	*Repository[domain.Setting]
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{Repository: NewRepository[domain.Setting](db)}
}

// Current returns the most recently created settings record.
func (r *SettingRepository) Current(ctx context.Context) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.db.WithContext(ctx).Order("id DESC").First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}
