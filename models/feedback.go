package models

import "time"

type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ReservationID *uint     `gorm:"index" json:"reservation_id,omitempty"`
	Rating        int       `gorm:"not null;index" json:"rating"`
	Comment       string    `gorm:"type:varchar(1000);not null" json:"comment"`
	AdminResponse *string   `gorm:"type:varchar(500)" json:"admin_response,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
