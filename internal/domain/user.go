package domain

import "time"

const DefaultAvatarURL = "https://static.jp-order.example/avatar/default.png"

// Conversion, payment and tax rates per customer tier.
const (
	CasualConversionRate   = 1.0
	VIPConversionRate      = 1.1
	SuperVIPConversionRate = 1.2

	CasualTaxRate   = 0.10
	VIPTaxRate      = 0.09
	SuperVIPTaxRate = 0.08

	CasualPaymentRate   = 1.0
	VIPPaymentRate      = 0.9
	SuperVIPPaymentRate = 0.8
)

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	MobilePhone     string     `gorm:"size:32;index;not null" json:"mobilePhone"`
	MobilePhoneCode string     `gorm:"size:8" json:"mobilePhoneCode"`
	Password        string     `gorm:"size:128" json:"-"`
	Email           string     `gorm:"size:255;index" json:"email"`
	Username        string     `gorm:"size:128;not null" json:"username"`
	FirstName       string     `gorm:"size:128" json:"firstName"`
	LastName        string     `gorm:"size:128" json:"lastName"`
	FullName        string     `gorm:"size:255" json:"fullName"`
	DOB             *time.Time `json:"dob,omitempty"`
	LastLoggedIn    *time.Time `json:"lastLoggedIn,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"isActive"`
	ConversionRate  float64    `gorm:"not null;default:1" json:"conversionRate"`
	Balance         float64    `gorm:"not null;default:0" json:"balance"`
	Role            string     `gorm:"size:64;not null" json:"role"`
	DefaultLanguage string     `gorm:"size:16" json:"defaultLanguage"`
	Avatar          string     `gorm:"size:512" json:"avatar"`
	Audit
}
