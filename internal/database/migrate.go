package database

import (
	"github.com/shoppinh/jp-order-BE/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.UserToken{},
		&domain.Address{},
		&domain.Category{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Setting{},
		&domain.File{},
	)
}
