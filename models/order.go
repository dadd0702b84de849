package models

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCancelled = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// DefaultTaxRate is applied when no TAX_RATE is configured.
const DefaultTaxRate = 0.1

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ReservationID   *uint       `gorm:"index" json:"reservation_id,omitempty"`
	OrderNumber     string      `gorm:"type:varchar(20);unique;not null" json:"order_number"`
	TableNumber     int         `gorm:"not null;index" json:"table_number"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal        float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax             float64     `gorm:"type:decimal(10,2);not null;default:0" json:"tax"`
	Discount        float64     `gorm:"type:decimal(10,2);not null;default:0" json:"discount"`
	Total           float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Status          string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus   string      `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod   string      `gorm:"type:varchar(30);not null;default:'cash'" json:"payment_method"`
	SpecialRequests string      `gorm:"type:varchar(500)" json:"special_requests"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

type OrderItem struct {
	ID                  uint     `gorm:"primaryKey" json:"id"`
	OrderID             uint     `gorm:"not null;index" json:"order_id"`
	Order               Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID          uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem            MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ItemName            string   `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity            int      `gorm:"not null" json:"quantity"`
	Price               float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	SpecialInstructions string   `gorm:"type:varchar(300)" json:"special_instructions,omitempty"`
}

// GenerateOrderNumber builds an ORD-YYYYMMDD-NNNNN number. Uniqueness is
// only guaranteed by the database constraint on order_number.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), rand.Intn(100000))
}

// CalculateTotals derives tax and total from a subtotal: tax is rounded to
// two decimals, total never goes below zero.
func CalculateTotals(subtotal, taxRate, discount float64) (tax, total float64) {
	tax = math.Round(subtotal*taxRate*100) / 100
	total = subtotal + tax - discount
	if total < 0 {
		total = 0
	}
	return tax, total
}

// CanCancel reports whether an order may still be cancelled.
// Cancellation is blocked once the kitchen has started (preparing/ready)
// and for orders that are already cancelled.
func (o *Order) CanCancel() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// ActiveOrderStatuses are the states shown on the live table view.
func ActiveOrderStatuses() []string {
	return []string{OrderPending, OrderConfirmed, OrderPreparing, OrderReady}
}
