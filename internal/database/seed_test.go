package database

import (
	"errors"
	"testing"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"gorm.io/gorm"
)

func TestSeedSyncCreatesDataAndNoopOnSecondRun(t *testing.T) {
	db := newSQLiteDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	report1, err := SeedSync(db)
	if err != nil {
		t.Fatalf("seed sync first run: %v", err)
	}
	if report1.Noop {
		t.Fatalf("expected first seed run to perform changes: %+v", report1)
	}
	if report1.CreatedRoles == 0 || !report1.CreatedSetting {
		t.Fatalf("expected created roles and setting: %+v", report1)
	}

	report2, err := SeedSync(db)
	if err != nil {
		t.Fatalf("seed sync second run: %v", err)
	}
	if !report2.Noop {
		t.Fatalf("expected noop on second seed run: %+v", report2)
	}

	var setting domain.Setting
	if err := db.Order("id").First(&setting).Error; err != nil {
		t.Fatalf("load setting: %v", err)
	}
	if setting.TaxRate != domain.CasualTaxRate || setting.PaymentRate != domain.CasualPaymentRate {
		t.Fatalf("unexpected seeded rates: %+v", setting)
	}
}

func TestSeedSyncFailureWhenDBClosed(t *testing.T) {
	db := newSQLiteDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close sql db: %v", err)
	}

	if _, err := SeedSync(db); err == nil {
		t.Fatal("expected seed sync error on closed database")
	}
}

func TestPromoteSuperUserValidationAndBehavior(t *testing.T) {
	db := newSQLiteDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := PromoteSuperUser(db, ""); err == nil {
		t.Fatal("expected email required error")
	}

	if err := PromoteSuperUser(db, "missing@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found for missing user, got %v", err)
	}

	u := domain.User{
		MobilePhone: "+84900000001",
		Email:       "owner@example.com",
		Username:    "owner",
		Role:        domain.RoleAccountant,
		IsActive:    true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := PromoteSuperUser(db, "  OWNER@example.com "); err != nil {
		t.Fatalf("promote: %v", err)
	}

	var refreshed domain.User
	if err := db.First(&refreshed, u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if refreshed.Role != domain.RoleSuperUser {
		t.Fatalf("expected SUPER_USER role, got %q", refreshed.Role)
	}

	// Promoting twice stays put.
	if err := PromoteSuperUser(db, "owner@example.com"); err != nil {
		t.Fatalf("repeat promote: %v", err)
	}
}
