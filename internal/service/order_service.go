package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
)

// OrderStore is the slice of the order repository the service needs.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.Order, error)
	ListOrders(ctx context.Context, q repository.Query, userID uint) (repository.PageResult[domain.Order], error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*domain.Order, error)
	FindByIDWithItems(ctx context.Context, id uint) (*domain.Order, error)
}

// OrderItemStore persists order lines.
type OrderItemStore interface {
	CreateBatch(ctx context.Context, items []domain.OrderItem, actorID uint) error
}

// OrderAddressStore resolves the shipping address of a new order.
type OrderAddressStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Address, error)
}

// RateSource supplies the tax rate applied to new orders.
type RateSource interface {
	Current(ctx context.Context) (*domain.Setting, error)
}

// OrderItemInput is one requested product line.
type OrderItemInput struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount"`
}

// CreateOrderInput carries an order request. TotalPrice is the total the
// client displayed to the user; the server recomputes it and rejects the
// order on a mismatch.
type CreateOrderInput struct {
	AddressID  uint             `json:"addressId"`
	Items      []OrderItemInput `json:"items"`
	TotalPrice float64          `json:"totalPrice"`
}

// orderTransitions maps each status to the statuses it may move to.
var orderTransitions = map[string][]string{
	domain.OrderStatusConfirmed:  {domain.OrderStatusDelivering, domain.OrderStatusCanceled},
	domain.OrderStatusDelivering: {domain.OrderStatusDelivered, domain.OrderStatusCanceled},
}

// OrderService places orders and drives their status lifecycle.
type OrderService struct {
	orders    OrderStore
	items     OrderItemStore
	products  ProductStore
	addresses OrderAddressStore
	rates     RateSource
}

func NewOrderService(orders OrderStore, items OrderItemStore, products ProductStore, addresses OrderAddressStore, rates RateSource) *OrderService {
	return &OrderService{orders: orders, items: items, products: products, addresses: addresses, rates: rates}
}

// Create places an order for a user. Prices come from the catalog, never
// from the request; the item lines carry the tax breakdown at the current
// rate, and the recomputed total must match the client total to the cent.
//
// The parent order and its items are written in separate statements. A
// failure between the two is returned to the caller with the orphaned order
// id so it can be inspected; nothing is retried or rolled back.
func (s *OrderService) Create(ctx context.Context, userID uint, input CreateOrderInput, actorID uint) (*domain.Order, error) {
	if input.AddressID == 0 {
		return nil, fmt.Errorf("%w: addressId is required", ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	if _, err := s.addresses.FindByID(ctx, input.AddressID); errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown address", ErrValidation)
	} else if err != nil {
		return nil, err
	}

	setting, err := s.rates.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		lines       []domain.OrderItem
		total       float64
		totalWeight float64
	)
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if item.Discount < 0 {
			return nil, fmt.Errorf("%w: discount must not be negative", ErrValidation)
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown product %d", ErrValidation, item.ProductID)
		}
		if err != nil {
			return nil, err
		}

		preTax := product.Price*float64(item.Quantity) - item.Discount
		if preTax < 0 {
			return nil, fmt.Errorf("%w: discount exceeds line price", ErrValidation)
		}
		tax := preTax * setting.TaxRate
		lines = append(lines, domain.OrderItem{
			ProductID:   product.ID,
			Quantity:    item.Quantity,
			Price:       product.Price,
			Discount:    item.Discount,
			PreTaxTotal: preTax,
			Tax:         tax,
			TaxTotal:    preTax + tax,
		})
		total += preTax + tax
		totalWeight += product.Weight * float64(item.Quantity)
	}

	if roundCents(total) != roundCents(input.TotalPrice) {
		return nil, fmt.Errorf("%w: total price mismatch: expected %.2f", ErrValidation, roundCents(total))
	}

	order := &domain.Order{
		UserID:      userID,
		AddressID:   input.AddressID,
		Status:      domain.OrderStatusConfirmed,
		TotalPrice:  roundCents(total),
		TotalWeight: totalWeight,
	}
	if err := s.orders.Create(ctx, order, actorID); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	if err := s.items.CreateBatch(ctx, lines, actorID); err != nil {
		return nil, fmt.Errorf("order %d created but writing items failed: %w", order.ID, err)
	}
	order.Items = lines
	return order, nil
}

// Get resolves an order. A zero userID is the admin path and skips the
// ownership check.
func (s *OrderService) Get(ctx context.Context, id, userID uint) (*domain.Order, error) {
	if userID == 0 {
		return s.orders.FindByIDWithItems(ctx, id)
	}
	return s.orders.FindByIDForUser(ctx, id, userID)
}

// List pages over orders; a non-zero userID restricts to that owner.
func (s *OrderService) List(ctx context.Context, q repository.Query, userID uint) (repository.PageResult[domain.Order], error) {
	return s.orders.ListOrders(ctx, q, userID)
}

// UpdateStatus moves an order along its lifecycle. Only forward transitions
// are allowed; delivered and canceled orders are terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string, actorID uint) (*domain.Order, error) {
	order, err := s.orders.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range orderTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, status)
	}

	return s.orders.Update(ctx, id, map[string]any{"status": status}, actorID)
}

// roundCents rounds to two decimal places, the resolution order totals are
// compared at.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
