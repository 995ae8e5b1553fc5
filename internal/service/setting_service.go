package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
)

const defaultSettingCacheTTL = 5 * time.Minute

// SettingStore is the slice of the setting repository the service needs.
type SettingStore interface {
	Current(ctx context.Context) (*domain.Setting, error)
	Create(ctx context.Context, setting *domain.Setting, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.Setting, error)
}

// SettingInput carries a rates update; nil fields are left untouched.
type SettingInput struct {
	TaxRate     *float64 `json:"taxRate"`
	PaymentRate *float64 `json:"paymentRate"`
}

// SettingService reads and updates the global tax and payment rates. Reads
// go through the cache; a store without any record falls back to the casual
// tier defaults.
type SettingService struct {
	settings SettingStore
	cache    SettingCacheStore
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewSettingService(settings SettingStore, cache SettingCacheStore, cacheTTL time.Duration, logger *slog.Logger) *SettingService {
	if cache == nil {
		cache = NewNoopSettingCacheStore()
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultSettingCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingService{settings: settings, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Current returns the active setting. Cache failures are logged and treated
// as misses.
func (s *SettingService) Current(ctx context.Context) (*domain.Setting, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "setting cache read failed", slog.String("error", err.Error()))
	}
	if ok {
		return cached, nil
	}

	setting, err := s.settings.Current(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		setting = &domain.Setting{
			TaxRate:     domain.CasualTaxRate,
			PaymentRate: domain.CasualPaymentRate,
		}
	} else if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, setting, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "setting cache write failed", slog.String("error", err.Error()))
	}
	return setting, nil
}

// Update changes the stored rates and invalidates the cache. The first
// update creates the record.
func (s *SettingService) Update(ctx context.Context, input SettingInput, actorID uint) (*domain.Setting, error) {
	fields := map[string]any{}
	if input.TaxRate != nil {
		if *input.TaxRate < 0 || *input.TaxRate >= 1 {
			return nil, fmt.Errorf("%w: taxRate must be in [0, 1)", ErrValidation)
		}
		fields["tax_rate"] = *input.TaxRate
	}
	if input.PaymentRate != nil {
		if *input.PaymentRate <= 0 {
			return nil, fmt.Errorf("%w: paymentRate must be positive", ErrValidation)
		}
		fields["payment_rate"] = *input.PaymentRate
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	current, err := s.settings.Current(ctx)
	var updated *domain.Setting
	switch {
	case errors.Is(err, repository.ErrNotFound):
		updated = &domain.Setting{
			TaxRate:     domain.CasualTaxRate,
			PaymentRate: domain.CasualPaymentRate,
		}
		if input.TaxRate != nil {
			updated.TaxRate = *input.TaxRate
		}
		if input.PaymentRate != nil {
			updated.PaymentRate = *input.PaymentRate
		}
		if err := s.settings.Create(ctx, updated, actorID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		updated, err = s.settings.Update(ctx, current.ID, fields, actorID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "setting cache invalidation failed", slog.String("error", err.Error()))
	}
	return updated, nil
}
