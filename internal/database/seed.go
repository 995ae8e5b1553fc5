package database

import (
	"errors"
	"strings"

	"github.com/shoppinh/jp-order-BE/internal/domain"

	"gorm.io/gorm"
)

// SeedReport describes what a seed run changed.
type SeedReport struct {
	CreatedRoles   int
	CreatedSetting bool
	Noop           bool
}

var seedRoles = []string{domain.RoleSuperUser, domain.RoleAccountant}

// SeedSync makes sure the built-in roles and the rate settings record
// exist. Running it again is a no-op.
func SeedSync(db *gorm.DB) (SeedReport, error) {
	var report SeedReport

	for _, key := range seedRoles {
		var role domain.Role
		err := db.Where("role_key = ?", key).First(&role).Error
		switch {
		case err == nil:
			continue
		case errors.Is(err, gorm.ErrRecordNotFound):
			role = domain.Role{RoleKey: key, IsActive: true}
			if err := db.Create(&role).Error; err != nil {
				return report, err
			}
			report.CreatedRoles++
		default:
			return report, err
		}
	}

	var setting domain.Setting
	err := db.Order("id").First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = domain.Setting{TaxRate: domain.CasualTaxRate, PaymentRate: domain.CasualPaymentRate}
		if err := db.Create(&setting).Error; err != nil {
			return report, err
		}
		report.CreatedSetting = true
	case err != nil:
		return report, err
	}

	report.Noop = report.CreatedRoles == 0 && !report.CreatedSetting
	return report, nil
}

// PromoteSuperUser grants the SUPER_USER role to an existing account,
// looked up by email. Used by the seed tool to bootstrap the first admin.
func PromoteSuperUser(db *gorm.DB, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email is required")
	}

	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	if user.Role == domain.RoleSuperUser {
		return nil
	}
	return db.Model(&user).Update("role", domain.RoleSuperUser).Error
}
