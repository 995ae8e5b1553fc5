package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/security"
	"github.com/shoppinh/jp-order-BE/internal/validate"
)

// UserStore is the slice of the user repository the user service needs.
type UserStore interface {
	AuthUserStore
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Create(ctx context.Context, user *domain.User, actorID uint) error
	Delete(ctx context.Context, id uint) error
	ListUsers(ctx context.Context, q repository.Query, role string) (repository.PageResult[domain.User], error)
}

// RoleStore resolves and maintains the role catalog.
type RoleStore interface {
	FindByRoleKey(ctx context.Context, roleKey string) (*domain.Role, error)
	FindAll(ctx context.Context, filter map[string]any) ([]domain.Role, error)
	Create(ctx context.Context, role *domain.Role, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.Role, error)
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	MobilePhone     string     `json:"mobilePhone"`
	MobilePhoneCode string     `json:"mobilePhoneCode"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	Password        string     `json:"password"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	FullName        string     `json:"fullName"`
	RoleKey         string     `json:"roleKey"`
	Avatar          string     `json:"avatar"`
	DefaultLanguage string     `json:"defaultLanguage"`
	DOB             *time.Time `json:"dob"`
	IsActive        *bool      `json:"isActive"`
}

// UpdateUserInput carries a partial profile update; nil fields are left
// untouched.
type UpdateUserInput struct {
	Email           *string    `json:"email"`
	Password        *string    `json:"password"`
	FirstName       *string    `json:"firstName"`
	LastName        *string    `json:"lastName"`
	FullName        *string    `json:"fullName"`
	Avatar          *string    `json:"avatar"`
	DefaultLanguage *string    `json:"defaultLanguage"`
	DOB             *time.Time `json:"dob"`
	IsActive        *bool      `json:"isActive"`
	RoleKey         *string    `json:"roleKey"`
	ConversionRate  *float64   `json:"conversionRate"`
	Balance         *float64   `json:"balance"`
}

// UserService implements registration and account management.
type UserService struct {
	users       UserStore
	roles       RoleStore
	countryCode string
}

func NewUserService(users UserStore, roles RoleStore, countryCode string) *UserService {
	if countryCode == "" {
		countryCode = validate.DefaultCountryCode
	}
	return &UserService{users: users, roles: roles, countryCode: countryCode}
}

// Register creates a user after checking input shape, role existence and
// uniqueness of phone, email and username.
func (s *UserService) Register(ctx context.Context, input RegisterInput, actorID uint) (*domain.User, error) {
	if err := validate.Required(map[string]string{
		"mobilePhone": input.MobilePhone,
		"email":       input.Email,
		"username":    input.Username,
		"password":    input.Password,
		"roleKey":     input.RoleKey,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !validate.IsPhoneShaped(input.MobilePhone) {
		return nil, fmt.Errorf("%w: mobilePhone is not a phone number", ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validate.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email is malformed", ErrValidation)
	}

	roleKey := validate.ConvertRoleKey(input.RoleKey)
	role, err := s.roles.FindByRoleKey(ctx, roleKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, roleKey)
	}
	if err != nil {
		return nil, err
	}
	if !role.IsActive {
		return nil, fmt.Errorf("%w: role %q is disabled", ErrValidation, roleKey)
	}

	phone := validate.StandardPhoneNumber(input.MobilePhone, s.countryCode)
	if err := s.ensureUnique(ctx, phone, email, strings.TrimSpace(input.Username)); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		MobilePhone:     phone,
		MobilePhoneCode: input.MobilePhoneCode,
		Email:           email,
		Username:        strings.TrimSpace(input.Username),
		Password:        hash,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		FullName:        input.FullName,
		DOB:             input.DOB,
		Role:            roleKey,
		Avatar:          input.Avatar,
		DefaultLanguage: input.DefaultLanguage,
		ConversionRate:  domain.CasualConversionRate,
		IsActive:        true,
	}
	if user.FullName == "" {
		user.FullName = strings.TrimSpace(strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName))
	}
	if user.Avatar == "" {
		user.Avatar = domain.DefaultAvatarURL
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.users.Create(ctx, user, actorID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ensureUnique(ctx context.Context, phone, email, username string) error {
	if _, err := s.users.FindByMobilePhone(ctx, phone); err == nil {
		return fmt.Errorf("%w: mobile phone already registered", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: username already taken", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// List returns a page of users, optionally restricted to one role key.
func (s *UserService) List(ctx context.Context, q repository.Query, roleKey string) (repository.PageResult[domain.User], error) {
	if roleKey != "" {
		roleKey = validate.ConvertRoleKey(roleKey)
	}
	return s.users.ListUsers(ctx, q, roleKey)
}

// Update applies a partial profile update. Passwords are re-hashed, emails
// re-checked for shape and uniqueness, role changes re-validated.
func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput, actorID uint) (*domain.User, error) {
	fields := map[string]any{}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !validate.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: email is malformed", ErrValidation)
		}
		if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		fields["email"] = email
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}
	if input.RoleKey != nil {
		roleKey := validate.ConvertRoleKey(*input.RoleKey)
		if _, err := s.roles.FindByRoleKey(ctx, roleKey); errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, roleKey)
		} else if err != nil {
			return nil, err
		}
		fields["role"] = roleKey
	}
	if input.FirstName != nil {
		fields["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		fields["last_name"] = *input.LastName
	}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}
	if input.Avatar != nil {
		fields["avatar"] = *input.Avatar
	}
	if input.DefaultLanguage != nil {
		fields["default_language"] = *input.DefaultLanguage
	}
	if input.DOB != nil {
		fields["dob"] = *input.DOB
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.ConversionRate != nil {
		fields["conversion_rate"] = *input.ConversionRate
	}
	if input.Balance != nil {
		fields["balance"] = *input.Balance
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	return s.users.Update(ctx, id, fields, actorID)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}
