package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/validate"
)

// CategoryStore is the slice of the category repository the services need.
type CategoryStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Category, error)
	FindOne(ctx context.Context, filter map[string]any) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
	ListCategories(ctx context.Context, q repository.Query) (repository.PageResult[domain.Category], error)
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category; names must be unique.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput, actorID uint) (*domain.Category, error) {
	if err := validate.Required(map[string]string{"name": input.Name}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.categories.FindOne(ctx, map[string]any{"name": input.Name}); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, input.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	category := &domain.Category{Name: input.Name, Description: input.Description}
	if err := s.categories.Create(ctx, category, actorID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, q repository.Query) (repository.PageResult[domain.Category], error) {
	return s.categories.ListCategories(ctx, q)
}

func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput, actorID uint) (*domain.Category, error) {
	fields := map[string]any{}
	if input.Name != "" {
		if existing, err := s.categories.FindOne(ctx, map[string]any{"name": input.Name}); err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, input.Name)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		fields["name"] = input.Name
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	return s.categories.Update(ctx, id, fields, actorID)
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.categories.Delete(ctx, id)
}
