package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: malformed
// input, bad signature or expiry. Callers must not distinguish the reasons in
// user-facing responses.
var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims carry the identity embedded in an access token. The mobile
// phone is the identity claim this backend resolves users by.
type AccessClaims struct {
	MobilePhone string `json:"mobilePhone"`
	jwt.RegisteredClaims
}

// RefreshClaims bind a refresh token to the access token it was issued with.
type RefreshClaims struct {
	MobilePhone string `json:"mobilePhone"`
	AccessToken string `json:"accessToken"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the HS256 token pairs used for login
// sessions. Tokens are stateless; session records only gate refresh.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

func (m *TokenManager) SignAccessToken(mobilePhone string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		MobilePhone: mobilePhone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) SignRefreshToken(mobilePhone, accessToken string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		MobilePhone: mobilePhone,
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func (m *TokenManager) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, m.keyFunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExpiresAt reads the expiry instant of an already-issued access token.
func (m *TokenManager) ExpiresAt(raw string) (time.Time, error) {
	claims, err := m.ParseAccessToken(raw)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

func (m *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return m.secret, nil
}
