package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

var categoryListDefinition = ListDefinition{
	SearchColumns: []string{"name", "description"},
	SortColumns: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	},
	TextSort: map[string]bool{
		"name": true,
	},
}

type CategoryRepository struct {
	*Repository[domain.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{Repository: NewRepository[domain.Category](db)}
}

func (r *CategoryRepository) ListCategories(ctx context.Context, q Query) (PageResult[domain.Category], error) {
	return r.List(ctx, q, categoryListDefinition, nil)
}

// FindByIDs resolves the given category ids, reporting ErrNotFound when any
// id is missing.
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, ErrNotFound
	}
	return categories, nil
}
