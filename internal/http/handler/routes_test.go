package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/security"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type memUserStore struct {
	users []*domain.User
}

func (s *memUserStore) findBy(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range s.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.Email == email })
}

func (s *memUserStore) FindByMobilePhone(_ context.Context, phone string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.MobilePhone == phone })
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.Username == username })
}

func (s *memUserStore) Update(_ context.Context, id uint, _ map[string]any, _ uint) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.ID == id })
}

type memSessionStore struct {
	sessions []*domain.UserToken
	nextID   uint
}

func (s *memSessionStore) findBy(match func(*domain.UserToken) bool) (*domain.UserToken, error) {
	for _, t := range s.sessions {
		if match(t) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memSessionStore) FindByUserAndAccessToken(_ context.Context, userID uint, access string) (*domain.UserToken, error) {
	return s.findBy(func(t *domain.UserToken) bool { return t.UserID == userID && t.AccessToken == access })
}

func (s *memSessionStore) FindByPair(_ context.Context, access, refresh string) (*domain.UserToken, error) {
	return s.findBy(func(t *domain.UserToken) bool { return t.AccessToken == access && t.RefreshToken == refresh })
}

func (s *memSessionStore) FindByAccessToken(_ context.Context, access string) (*domain.UserToken, error) {
	return s.findBy(func(t *domain.UserToken) bool { return t.AccessToken == access })
}

func (s *memSessionStore) Create(_ context.Context, token *domain.UserToken, _ uint) error {
	s.nextID++
	token.ID = s.nextID
	copied := *token
	s.sessions = append(s.sessions, &copied)
	return nil
}

func (s *memSessionStore) Update(_ context.Context, id uint, fields map[string]any, _ uint) (*domain.UserToken, error) {
	for _, t := range s.sessions {
		if t.ID != id {
			continue
		}
		if v, ok := fields["access_token"].(string); ok {
			t.AccessToken = v
		}
		if v, ok := fields["refresh_token"].(string); ok {
			t.RefreshToken = v
		}
		if v, ok := fields["expires_at"].(time.Time); ok {
			t.ExpiresAt = v
		}
		copied := *t
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *memSessionStore) Delete(_ context.Context, id uint) error {
	for i, t := range s.sessions {
		if t.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	hash, err := security.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &memUserStore{users: []*domain.User{{
		ID:          7,
		MobilePhone: "+84912345678",
		Email:       "alice@example.com",
		Username:    "alice",
		Password:    hash,
		Role:        domain.RoleAccountant,
		IsActive:    true,
	}}}
	tokens := security.NewTokenManager("abcdefghijklmnopqrstuvwxyz123456")
	auth := service.NewAuthService(users, &memSessionStore{}, tokens, time.Hour, 24*time.Hour, "+84", nil)

	return NewRouter(RouterDeps{
		Auth:         NewAuthHandler(auth),
		Users:        NewUserHandler(nil, nil),
		Products:     NewProductHandler(nil, nil),
		Orders:       NewOrderHandler(nil),
		Addresses:    NewAddressHandler(nil),
		Settings:     NewSettingHandler(nil),
		Files:        NewFileHandler(nil),
		Validator:    auth,
		LoginLimiter: middleware.NewRedisFixedWindowLimiter(nil, "", 100, time.Minute),
	})
}

func postJSON(t *testing.T, router http.Handler, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, router http.Handler, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginRefreshLogoutFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/auth/login", map[string]any{
		"identifier": "alice@example.com",
		"password":   "wrong",
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", rec.Code)
	}
	var errBody struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Success || errBody.StatusCode != 401 || errBody.Message == "" {
		t.Fatalf("unexpected error envelope: %+v", errBody)
	}

	rec = postJSON(t, router, "/api/auth/login", map[string]any{
		"identifier": "0912345678",
		"password":   "secret",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login service.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" || login.TokenType != service.TokenTypeBearer {
		t.Fatalf("unexpected login payload: %+v", login)
	}
	if login.ExpiresIn != login.ExpiresDate.UnixMilli() || login.ExpiresIn <= time.Now().UnixMilli() {
		t.Fatalf("expected expiresIn as a future ms epoch, got %d (date %v)", login.ExpiresIn, login.ExpiresDate)
	}

	rec = get(t, router, "/api/auth/me", login.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}

	// An accountant may not reach the admin-only user list.
	rec = postJSON(t, router, "/api/user/list", map[string]any{"limit": 10}, login.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user list: expected 403, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/api/auth/refresh-token", map[string]any{
		"accessToken":  login.AccessToken,
		"refreshToken": login.RefreshToken,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var refreshed service.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if refreshed.AccessToken == login.AccessToken {
		t.Fatal("expected a new access token from refresh")
	}

	// The old pair is gone after rotation.
	rec = postJSON(t, router, "/api/auth/refresh-token", map[string]any{
		"accessToken":  login.AccessToken,
		"refreshToken": login.RefreshToken,
	}, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("stale refresh: expected 404, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/api/auth/logout", nil, refreshed.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	// Logout again: still success.
	rec = postJSON(t, router, "/api/auth/logout", nil, refreshed.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat logout: expected 200, got %d", rec.Code)
	}
	// The token itself stays valid until expiry.
	rec = get(t, router, "/api/auth/me", refreshed.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me after logout: expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	listPaths := []string{"/api/order/list", "/api/product/list", "/api/category/list", "/api/address/list"}
	for _, path := range listPaths {
		rec := postJSON(t, router, path, map[string]any{"limit": 5}, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	rec := get(t, router, "/api/setting/", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("/api/setting/: expected 401, got %d", rec.Code)
	}
}
