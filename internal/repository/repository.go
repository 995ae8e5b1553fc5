package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

// Repository provides uniform persistence operations over a single entity
// collection. It carries no entity-specific business logic; resource
// repositories embed it and add their own finders and list definitions.
//
// Audit fields are owned by this layer: Create and Update stamp the acting
// user, timestamps come from the store hooks. Deletes are hard deletes.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func (r *Repository[T]) Create(ctx context.Context, entity *T, actorID uint) error {
	if a, ok := any(entity).(domain.Auditable); ok {
		a.SetCreatedBy(actorID)
		a.SetUpdatedBy(actorID)
	}
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindOne returns the first entity matching an exact-match field filter.
func (r *Repository[T]) FindOne(ctx context.Context, filter map[string]any) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(filter).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll returns every matching entity, unbounded. Callers that need
// pagination go through List instead.
func (r *Repository[T]) FindAll(ctx context.Context, filter map[string]any) ([]T, error) {
	var entities []T
	tx := r.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		tx = tx.Where(filter)
	}
	if err := tx.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Update merges the given fields into the existing entity, bumps the update
// timestamp and updater identity, and returns the stored result.
func (r *Repository[T]) Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*T, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_by"] = actorID
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List runs the paginated query builder over this collection.
func (r *Repository[T]) List(ctx context.Context, q Query, def ListDefinition, scope func(*gorm.DB) *gorm.DB) (PageResult[T], error) {
	return ListPaged[T](r.db.WithContext(ctx), q, def, scope)
}
