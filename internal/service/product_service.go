package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/validate"
)

// ProductStore is the slice of the product repository the services need.
type ProductStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
	ListProducts(ctx context.Context, q repository.Query) (repository.PageResult[domain.Product], error)
	SetCategories(ctx context.Context, product *domain.Product, categories []domain.Category) error
}

// CreateProductInput carries a new catalog entry. An empty SKU is derived
// from the product name and its first category.
type CreateProductInput struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Weight           float64  `json:"weight"`
	Quantity         int      `json:"quantity"`
	SKU              string   `json:"SKU"`
	CategoryIDs      []uint   `json:"categoryIds"`
	ImageAttachments []string `json:"imageAttachments"`
}

// UpdateProductInput carries a partial catalog update.
type UpdateProductInput struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	Price            *float64  `json:"price"`
	Weight           *float64  `json:"weight"`
	Quantity         *int      `json:"quantity"`
	SKU              *string   `json:"SKU"`
	CategoryIDs      []uint    `json:"categoryIds"`
	ImageAttachments *[]string `json:"imageAttachments"`
}

type ProductService struct {
	products   ProductStore
	categories CategoryStore
}

func NewProductService(products ProductStore, categories CategoryStore) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// Create validates the input, resolves the referenced categories, derives a
// SKU when none is given and stores the product with its category links.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput, actorID uint) (*domain.Product, error) {
	if err := validate.Required(map[string]string{
		"name":        input.Name,
		"description": input.Description,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if len(input.CategoryIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", ErrValidation)
	}

	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		sku = validate.GenerateSKU(input.Name, categories[0].Name)
	}
	if _, err := s.products.FindBySKU(ctx, sku); err == nil {
		return nil, fmt.Errorf("%w: SKU %q already exists", ErrConflict, sku)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	product := &domain.Product{
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		Weight:           input.Weight,
		Quantity:         input.Quantity,
		SKU:              sku,
		ImageAttachments: domain.StringSlice(input.ImageAttachments),
	}
	if err := s.products.Create(ctx, product, actorID); err != nil {
		return nil, err
	}
	if err := s.products.SetCategories(ctx, product, categories); err != nil {
		return nil, err
	}
	product.Categories = categories
	return product, nil
}

func (s *ProductService) resolveCategories(ctx context.Context, ids []uint) ([]domain.Category, error) {
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, fmt.Errorf("%w: unknown category id", ErrValidation)
	}
	return categories, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, q repository.Query) (repository.PageResult[domain.Product], error) {
	return s.products.ListProducts(ctx, q)
}

// Update applies a partial update; category changes replace the full set of
// links.
func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput, actorID uint) (*domain.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		fields["price"] = *input.Price
	}
	if input.Weight != nil {
		fields["weight"] = *input.Weight
	}
	if input.Quantity != nil {
		fields["quantity"] = *input.Quantity
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if existing, err := s.products.FindBySKU(ctx, sku); err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: SKU %q already exists", ErrConflict, sku)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		fields["sku"] = sku
	}
	if input.ImageAttachments != nil {
		fields["image_attachments"] = domain.StringSlice(*input.ImageAttachments)
	}

	var categories []domain.Category
	if input.CategoryIDs != nil {
		var err error
		categories, err = s.resolveCategories(ctx, input.CategoryIDs)
		if err != nil {
			return nil, err
		}
	}
	if len(fields) == 0 && categories == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		product, err = s.products.Update(ctx, id, fields, actorID)
		if err != nil {
			return nil, err
		}
	}
	if categories != nil {
		if err := s.products.SetCategories(ctx, product, categories); err != nil {
			return nil, err
		}
		product.Categories = categories
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}
