package domain

// Built-in role keys. Role keys are normalized to UPPER_SNAKE form.
const (
	RoleSuperUser  = "SUPER_USER"
	RoleAccountant = "ACCOUNTANT"
)

type Role struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoleKey  string `gorm:"size:64;uniqueIndex;not null" json:"roleKey"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
	Audit
}
