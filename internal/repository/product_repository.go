package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

var productListDefinition = ListDefinition{
	SearchColumns: []string{"name", "sku"},
	SortColumns: map[string]string{
		"name":      "name",
		"SKU":       "sku",
		"price":     "price",
		"quantity":  "quantity",
		"createdAt": "created_at",
	},
	TextSort: map[string]bool{
		"name": true,
		"SKU":  true,
	},
}

type ProductRepository struct {
	*Repository[domain.Product]
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{Repository: NewRepository[domain.Product](db)}
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.FindOne(ctx, map[string]any{"sku": sku})
}

// ListProducts pages over products with their categories preloaded.
func (r *ProductRepository) ListProducts(ctx context.Context, q Query) (PageResult[domain.Product], error) {
	return r.List(ctx, q, productListDefinition, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Categories")
	})
}

// SetCategories replaces the product-category associations in the join table.
func (r *ProductRepository) SetCategories(ctx context.Context, product *domain.Product, categories []domain.Category) error {
	return r.db.WithContext(ctx).Model(product).Association("Categories").Replace(categories)
}
