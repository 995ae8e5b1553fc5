package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

// UserTokenRepository persists login session records. The authentication
// service is its only writer.
type UserTokenRepository struct {
	*Repository[domain.UserToken]
}

func NewUserTokenRepository(db *gorm.DB) *UserTokenRepository {
	return &UserTokenRepository{Repository: NewRepository[domain.UserToken](db)}
}

// FindByUserAndAccessToken looks up the session record for a user's access
// token. Searching by user first keeps close-together logins from colliding
// on recomputed token values.
func (r *UserTokenRepository) FindByUserAndAccessToken(ctx context.Context, userID uint, accessToken string) (*domain.UserToken, error) {
	return r.FindOne(ctx, map[string]any{"user_id": userID, "access_token": accessToken})
}

// FindByPair resolves a session by its exact access+refresh token pair. A
// refresh token presented with a non-matching access token resolves nothing,
// which blocks refresh-token reuse across sessions.
func (r *UserTokenRepository) FindByPair(ctx context.Context, accessToken, refreshToken string) (*domain.UserToken, error) {
	return r.FindOne(ctx, map[string]any{"access_token": accessToken, "refresh_token": refreshToken})
}

func (r *UserTokenRepository) FindByAccessToken(ctx context.Context, accessToken string) (*domain.UserToken, error) {
	return r.FindOne(ctx, map[string]any{"access_token": accessToken})
}
