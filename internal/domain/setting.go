package domain

type Setting struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TaxRate     float64 `gorm:"not null;default:0.1" json:"taxRate"`
	PaymentRate float64 `gorm:"not null;default:1" json:"paymentRate"`
	Audit
}
