package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/security"
	"github.com/shoppinh/jp-order-BE/internal/validate"
)

// TokenTypeBearer is the token type recorded on every session.
const TokenTypeBearer = "Bearer"

// AuthUserStore is the slice of the user repository the auth service needs.
type AuthUserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByMobilePhone(ctx context.Context, phone string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.User, error)
}

// SessionStore persists the token-pair records backing refresh and logout.
type SessionStore interface {
	FindByUserAndAccessToken(ctx context.Context, userID uint, accessToken string) (*domain.UserToken, error)
	FindByPair(ctx context.Context, accessToken, refreshToken string) (*domain.UserToken, error)
	FindByAccessToken(ctx context.Context, accessToken string) (*domain.UserToken, error)
	Create(ctx context.Context, token *domain.UserToken, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.UserToken, error)
	Delete(ctx context.Context, id uint) error
}

// LoginResult is the composed payload returned by login and refresh.
type LoginResult struct {
	UserID       uint       `json:"userId"`
	MobilePhone  string     `json:"mobilePhone"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	FullName     string     `json:"fullName"`
	Avatar       string     `json:"avatar"`
	IsActive     bool       `json:"isActive"`
	LastLoggedIn *time.Time `json:"lastLoggedIn,omitempty"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int64      `json:"expiresIn"`
	ExpiresDate  time.Time  `json:"expiresDate"`
	IsRemember   bool       `json:"isRemember"`
}

// AuthService implements login, refresh, validation and logout.
type AuthService struct {
	users       AuthUserStore
	sessions    SessionStore
	tokens      *security.TokenManager
	accessTTL   time.Duration
	rememberTTL time.Duration
	countryCode string
	logger      *slog.Logger
}

func NewAuthService(users AuthUserStore, sessions SessionStore, tokens *security.TokenManager, accessTTL, rememberTTL time.Duration, countryCode string, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	if countryCode == "" {
		countryCode = validate.DefaultCountryCode
	}
	return &AuthService{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		accessTTL:   accessTTL,
		rememberTTL: rememberTTL,
		countryCode: countryCode,
		logger:      logger,
	}
}

// Login authenticates a single identifier field that may hold an email, a
// phone number or a username, tried in that order. Every failure collapses
// into ErrAuthentication.
func (s *AuthService) Login(ctx context.Context, identifier, password string, rememberMe bool) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.TrimSpace(password) == "" {
		return nil, ErrAuthentication
	}

	user, err := s.resolveUser(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrAuthentication
	}
	if !security.CheckPassword(strings.TrimSpace(user.Password), strings.TrimSpace(password)) {
		return nil, ErrAuthentication
	}

	return s.issueSession(ctx, user, rememberMe)
}

// resolveUser tries email, then the phone number as given, then its
// normalized form, then username. A miss at any step falls through to the
// next; only unexpected store errors abort.
func (s *AuthService) resolveUser(ctx context.Context, identifier string) (*domain.User, error) {
	if validate.IsValidEmail(identifier) {
		user, err := s.users.FindByEmail(ctx, strings.ToLower(identifier))
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	if validate.IsPhoneShaped(identifier) {
		user, err := s.users.FindByMobilePhone(ctx, identifier)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if user == nil {
			user, err = s.users.FindByMobilePhone(ctx, validate.StandardPhoneNumber(identifier, s.countryCode))
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
		if user != nil {
			return user, nil
		}
	}
	user, err := s.users.FindByUsername(ctx, identifier)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User, rememberMe bool) (*LoginResult, error) {
	ttl := s.accessTTL
	if rememberMe {
		ttl = s.rememberTTL
	}

	access, err := s.tokens.SignAccessToken(user.MobilePhone, ttl)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefreshToken(user.MobilePhone, access, ttl)
	if err != nil {
		return nil, err
	}
	expiresAt, err := s.tokens.ExpiresAt(access)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"user_id":       user.ID,
		"mobile_phone":  user.MobilePhone,
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    TokenTypeBearer,
		"expires_at":    expiresAt,
	}
	session, err := s.sessions.FindByUserAndAccessToken(ctx, user.ID, access)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		session = &domain.UserToken{
			UserID:       user.ID,
			MobilePhone:  user.MobilePhone,
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    TokenTypeBearer,
			ExpiresAt:    expiresAt,
		}
		if err := s.sessions.Create(ctx, session, user.ID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		session, err = s.sessions.Update(ctx, session.ID, fields, user.ID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if _, err := s.users.Update(ctx, user.ID, map[string]any{"last_logged_in": now}, user.ID); err != nil {
		return nil, err
	}
	user.LastLoggedIn = &now

	return composeLoginResult(user, session, rememberMe), nil
}

// Refresh rotates a token pair. The pair must match a stored session record
// exactly; a miss surfaces as repository.ErrNotFound.
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string, rememberMe bool) (*LoginResult, error) {
	session, err := s.sessions.FindByPair(ctx, accessToken, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByMobilePhone(ctx, session.MobilePhone)
	if err != nil {
		return nil, err
	}

	ttl := s.accessTTL
	if rememberMe {
		ttl = s.rememberTTL
	}
	access, err := s.tokens.SignAccessToken(user.MobilePhone, ttl)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefreshToken(user.MobilePhone, access, ttl)
	if err != nil {
		return nil, err
	}
	expiresAt, err := s.tokens.ExpiresAt(access)
	if err != nil {
		return nil, err
	}

	session, err = s.sessions.Update(ctx, session.ID, map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"expires_at":    expiresAt,
	}, session.UserID)
	if err != nil {
		return nil, err
	}

	return composeLoginResult(user, session, rememberMe), nil
}

// Validate verifies an access token and loads the user it names. Validity is
// purely cryptographic; session records are not consulted, so a logged-out
// token stays valid until it expires.
func (s *AuthService) Validate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := s.tokens.ParseAccessToken(rawToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByMobilePhone(ctx, claims.MobilePhone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, security.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}

// Logout removes the session record for an access token. It is idempotent:
// a missing record, and even a store failure, still count as logged out.
func (s *AuthService) Logout(ctx context.Context, accessToken string) {
	session, err := s.sessions.FindByAccessToken(ctx, accessToken)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "logout lookup failed", slog.String("error", err.Error()))
		return
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.logger.WarnContext(ctx, "logout delete failed",
			slog.Uint64("session_id", uint64(session.ID)),
			slog.String("error", err.Error()))
	}
}

func composeLoginResult(user *domain.User, session *domain.UserToken, rememberMe bool) *LoginResult {
	return &LoginResult{
		UserID:       user.ID,
		MobilePhone:  user.MobilePhone,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		FullName:     user.FullName,
		Avatar:       user.Avatar,
		IsActive:     user.IsActive,
		LastLoggedIn: user.LastLoggedIn,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresAt.UnixMilli(),
		ExpiresDate:  session.ExpiresAt,
		IsRemember:   rememberMe,
	}
}
