package domain

// Product carries its categories through an explicit join table; the
// relationship is many-to-many so a product can be re-categorized without a
// schema migration.
type Product struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Name             string      `gorm:"size:255;not null" json:"name"`
	Categories       []Category  `gorm:"many2many:product_categories" json:"categories,omitempty"`
	Price            float64     `gorm:"not null" json:"price"`
	Description      string      `gorm:"size:2048;not null" json:"description"`
	ImageAttachments StringSlice `gorm:"type:text" json:"imageAttachments"`
	SKU              string      `gorm:"size:255;not null;index" json:"SKU"`
	Quantity         int         `gorm:"not null;default:0" json:"quantity"`
	Weight           float64     `gorm:"not null;default:0" json:"weight"`
	Audit
}
