package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

type FileRepository struct {
	*Repository[domain.File]
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{Repository: NewRepository[domain.File](db)}
}

// FindExpired returns every file record whose expiry has passed.
func (r *FileRepository) FindExpired(ctx context.Context, now time.Time) ([]domain.File, error) {
	var files []domain.File
	err := r.db.WithContext(ctx).
		Where("expired_date IS NOT NULL AND expired_date <= ?", now).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// RemoveExpiry clears the expiry on claimed files so cleanup leaves them
// alone.
func (r *FileRepository) RemoveExpiry(ctx context.Context, ids []uint, actorID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.File{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"expired_date": nil, "updated_by": actorID}).Error
}

// DeleteExpired removes every expired record in one statement.
func (r *FileRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expired_date IS NOT NULL AND expired_date <= ?", now).
		Delete(&domain.File{})
	return res.RowsAffected, res.Error
}
