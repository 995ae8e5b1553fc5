package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

type RoleRepository struct {
	*Repository[domain.Role]
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{Repository: NewRepository[domain.Role](db)}
}

func (r *RoleRepository) FindByRoleKey(ctx context.Context, roleKey string) (*domain.Role, error) {
	return r.FindOne(ctx, map[string]any{"role_key": roleKey})
}

// FindByRoleKeys returns the roles whose keys appear in the given set.
func (r *RoleRepository) FindByRoleKeys(ctx context.Context, roleKeys []string) ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.WithContext(ctx).Where("role_key IN ?", roleKeys).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
