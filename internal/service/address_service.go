package service

import (
	"context"
	"fmt"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/validate"
)

// AddressStore is the slice of the address repository the service needs.
type AddressStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Address, error)
	Create(ctx context.Context, address *domain.Address, actorID uint) error
	Update(ctx context.Context, id uint, fields map[string]any, actorID uint) (*domain.Address, error)
	Delete(ctx context.Context, id uint) error
	ListAddresses(ctx context.Context, q repository.Query, userID uint) (repository.PageResult[domain.Address], error)
	ClearDefault(ctx context.Context, userID uint) error
}

// AddressInput carries a new or updated shipping address.
type AddressInput struct {
	Province   string `json:"province"`
	ProvinceID int    `json:"provinceId"`
	District   string `json:"district"`
	DistrictID int    `json:"districtId"`
	Ward       string `json:"ward"`
	WardID     int    `json:"wardId"`
	Address    string `json:"address"`
	Country    string `json:"country"`
	Zip        string `json:"zip"`
	IsDefault  bool   `json:"isDefault"`
}

// AddressService manages a user's address book. Every operation is scoped to
// the owning user; a foreign address behaves as if it did not exist.
type AddressService struct {
	addresses AddressStore
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) Create(ctx context.Context, userID uint, input AddressInput) (*domain.Address, error) {
	if err := validate.Required(map[string]string{
		"province": input.Province,
		"district": input.District,
		"ward":     input.Ward,
		"address":  input.Address,
		"country":  input.Country,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if input.IsDefault {
		if err := s.addresses.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	address := &domain.Address{
		Province:   input.Province,
		ProvinceID: input.ProvinceID,
		District:   input.District,
		DistrictID: input.DistrictID,
		Ward:       input.Ward,
		WardID:     input.WardID,
		Address:    input.Address,
		Country:    input.Country,
		Zip:        input.Zip,
		UserID:     userID,
		IsDefault:  input.IsDefault,
	}
	if err := s.addresses.Create(ctx, address, userID); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Get(ctx context.Context, id, userID uint) (*domain.Address, error) {
	return s.owned(ctx, id, userID)
}

func (s *AddressService) List(ctx context.Context, q repository.Query, userID uint) (repository.PageResult[domain.Address], error) {
	return s.addresses.ListAddresses(ctx, q, userID)
}

func (s *AddressService) Update(ctx context.Context, id, userID uint, input AddressInput) (*domain.Address, error) {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setIfPresent := func(column, value string) {
		if value != "" {
			fields[column] = value
		}
	}
	setIfPresent("province", input.Province)
	setIfPresent("district", input.District)
	setIfPresent("ward", input.Ward)
	setIfPresent("address", input.Address)
	setIfPresent("country", input.Country)
	setIfPresent("zip", input.Zip)
	if input.ProvinceID != 0 {
		fields["province_id"] = input.ProvinceID
	}
	if input.DistrictID != 0 {
		fields["district_id"] = input.DistrictID
	}
	if input.WardID != 0 {
		fields["ward_id"] = input.WardID
	}
	if input.IsDefault {
		if err := s.addresses.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		fields["is_default"] = true
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	return s.addresses.Update(ctx, id, fields, userID)
}

func (s *AddressService) Delete(ctx context.Context, id, userID uint) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.addresses.Delete(ctx, id)
}

func (s *AddressService) owned(ctx context.Context, id, userID uint) (*domain.Address, error) {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return address, nil
}
