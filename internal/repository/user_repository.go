package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

var userListDefinition = ListDefinition{
	// The user list matches identifiers exactly, not by substring.
	SearchColumns: []string{"username", "mobile_phone", "email"},
	ExactSearch:   true,
	// Emails are stored lower-cased at registration.
	FoldedSearch: map[string]bool{"email": true},
	SortColumns: map[string]string{
		"username":     "username",
		"email":        "email",
		"mobilePhone":  "mobile_phone",
		"role":         "role",
		"balance":      "balance",
		"createdAt":    "created_at",
		"lastLoggedIn": "last_logged_in",
	},
	TextSort: map[string]bool{
		"username":    true,
		"email":       true,
		"mobilePhone": true,
		"role":        true,
	},
}

type UserRepository struct {
	*Repository[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[domain.User](db)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.FindOne(ctx, map[string]any{"email": email})
}

func (r *UserRepository) FindByMobilePhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.FindOne(ctx, map[string]any{"mobile_phone": phone})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.FindOne(ctx, map[string]any{"username": username})
}

// ListUsers pages over users, optionally restricted to one role.
func (r *UserRepository) ListUsers(ctx context.Context, q Query, role string) (PageResult[domain.User], error) {
	var scope func(*gorm.DB) *gorm.DB
	if role != "" {
		scope = func(tx *gorm.DB) *gorm.DB { return tx.Where("role = ?", role) }
	}
	return r.List(ctx, q, userListDefinition, scope)
}
