package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/validate"
)

// RoleInput is one role in a bulk upsert request.
type RoleInput struct {
	RoleKey  string `json:"roleKey"`
	IsActive *bool  `json:"isActive"`
}

// RoleService maintains the role catalog.
type RoleService struct {
	roles RoleStore
}

func NewRoleService(roles RoleStore) *RoleService {
	return &RoleService{roles: roles}
}

// Upsert normalizes every key to UPPER_SNAKE form, then creates missing
// roles and updates the active flag on existing ones.
func (s *RoleService) Upsert(ctx context.Context, inputs []RoleInput, actorID uint) ([]domain.Role, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no roles given", ErrValidation)
	}

	out := make([]domain.Role, 0, len(inputs))
	for _, input := range inputs {
		roleKey := validate.ConvertRoleKey(input.RoleKey)
		if roleKey == "" {
			return nil, fmt.Errorf("%w: empty role key", ErrValidation)
		}
		active := true
		if input.IsActive != nil {
			active = *input.IsActive
		}

		existing, err := s.roles.FindByRoleKey(ctx, roleKey)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			role := &domain.Role{RoleKey: roleKey, IsActive: active}
			if err := s.roles.Create(ctx, role, actorID); err != nil {
				return nil, err
			}
			out = append(out, *role)
		case err != nil:
			return nil, err
		default:
			updated, err := s.roles.Update(ctx, existing.ID, map[string]any{"is_active": active}, actorID)
			if err != nil {
				return nil, err
			}
			out = append(out, *updated)
		}
	}
	return out, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.FindAll(ctx, nil)
}
