package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

var orderListDefinition = ListDefinition{
	SearchColumns: []string{"status"},
	SortColumns: map[string]string{
		"status":     "status",
		"totalPrice": "total_price",
		"createdAt":  "created_at",
	},
	TextSort: map[string]bool{
		"status": true,
	},
}

type OrderRepository struct {
	*Repository[domain.Order]
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{Repository: NewRepository[domain.Order](db)}
}

// ListOrders pages over orders with their items preloaded. A non-zero userID
// is the owner scoping filter; caller-supplied search and sort cannot widen
// it.
func (r *OrderRepository) ListOrders(ctx context.Context, q Query, userID uint) (PageResult[domain.Order], error) {
	return r.List(ctx, q, orderListDefinition, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Preload("Items")
		if userID != 0 {
			tx = tx.Where("user_id = ?", userID)
		}
		return tx
	})
}

// FindByIDForUser resolves an order only when it belongs to the given user.
func (r *OrderRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDWithItems resolves any order regardless of owner (admin path).
func (r *OrderRepository) FindByIDWithItems(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrderItemRepository persists order lines. Parent order and items are
// written in separate statements; there is no cross-entity transaction.
type OrderItemRepository struct {
	*Repository[domain.OrderItem]
}

func NewOrderItemRepository(db *gorm.DB) *OrderItemRepository {
	return &OrderItemRepository{Repository: NewRepository[domain.OrderItem](db)}
}

func (r *OrderItemRepository) CreateBatch(ctx context.Context, items []domain.OrderItem, actorID uint) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].SetCreatedBy(actorID)
		items[i].SetUpdatedBy(actorID)
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
