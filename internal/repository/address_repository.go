package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

var addressListDefinition = ListDefinition{
	SearchColumns: []string{"province", "district", "ward", "address", "zip"},
	SortColumns: map[string]string{
		"province":  "province",
		"district":  "district",
		"createdAt": "created_at",
	},
	TextSort: map[string]bool{
		"province": true,
		"district": true,
	},
}

type AddressRepository struct {
	*Repository[domain.Address]
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{Repository: NewRepository[domain.Address](db)}
}

// ListAddresses is always scoped to the owning user.
func (r *AddressRepository) ListAddresses(ctx context.Context, q Query, userID uint) (PageResult[domain.Address], error) {
	return r.List(ctx, q, addressListDefinition, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	})
}

// ClearDefault unsets the default flag on every address of the user, so a
// newly flagged default is the only one.
func (r *AddressRepository) ClearDefault(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&domain.Address{}).
		Where("user_id = ?", userID).Update("is_default", false).Error
}
