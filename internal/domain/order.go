package domain

// Order status lifecycle.
const (
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusDelivering = "DELIVERING"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCanceled   = "CANCELED"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	TotalPrice  float64     `gorm:"not null" json:"totalPrice"`
	UserID      uint        `gorm:"index;not null" json:"userId"`
	AddressID   uint        `gorm:"index;not null" json:"addressId"`
	Status      string      `gorm:"size:32;not null;default:CONFIRMED" json:"status"`
	TotalWeight float64     `gorm:"not null;default:0" json:"totalWeight"`
	Audit
}

// OrderItem is one product line of an order. The parent order and its items
// are written in separate statements; a failure between the two leaves an
// orphaned order that is surfaced to the caller, never silently retried.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"orderId"`
	ProductID   uint    `gorm:"index;not null" json:"productId"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"not null" json:"price"`
	Discount    float64 `gorm:"not null;default:0" json:"discount"`
	PreTaxTotal float64 `gorm:"not null" json:"preTaxTotal"`
	Tax         float64 `gorm:"not null" json:"tax"`
	TaxTotal    float64 `gorm:"not null" json:"taxTotal"`
	Audit
}
