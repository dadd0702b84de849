package models

import "time"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// TotalTables is the fixed universe of bookable tables.
const TotalTables = 20

type Reservation struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(50);not null" json:"customer_phone"`
	TableNumber   int    `gorm:"not null;index:idx_slot" json:"table_number"`
	GuestCount    int    `gorm:"not null" json:"guest_count"`
	// Date and time are stored as plain strings so that slot equality is
	// exact string equality, independent of server timezone.
	ReservationDate string    `gorm:"type:varchar(10);not null;index:idx_slot" json:"reservation_date"` // YYYY-MM-DD
	ReservationTime string    `gorm:"type:varchar(5);not null;index:idx_slot" json:"reservation_time"`  // HH:MM
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_slot" json:"status"`
	SpecialRequests string    `gorm:"type:varchar(500)" json:"special_requests"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// ActiveStatuses are the reservation states that occupy a slot.
func ActiveStatuses() []string {
	return []string{ReservationPending, ReservationConfirmed}
}

func ValidReservationStatus(status string) bool {
	switch status {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}
