package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks the status against the shared enum
func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// CanBeCancelledByClient reports whether the owning client may still cancel.
// Admins can write any valid status; clients only get out of a pending booking.
func (bs BookingStatus) CanBeCancelledByClient() bool {
	return bs == BookingStatusPending
}

type Booking struct {
	ID       uint  `json:"id" gorm:"primaryKey"`
	ClientID *uint `json:"client_id" gorm:"index"` // nil when no profile could be resolved

	// Snapshot of the contact details as submitted on the form, kept even
	// when a client profile exists so later profile edits don't rewrite
	// booking history.
	ClientName  string `json:"client_name" gorm:"size:255;not null"`
	ClientPhone string `json:"client_phone" gorm:"size:30;not null"`
	ClientEmail string `json:"client_email" gorm:"size:255"`

	ServiceID      uint          `json:"service_id" gorm:"not null;index"`
	Date           time.Time     `json:"date" gorm:"not null"`
	Time           string        `json:"time" gorm:"size:20;not null"` // free text, e.g. "14:30"
	Status         BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','confirmed','completed','cancelled')"`
	Notes          *string       `json:"notes" gorm:"size:1000"`
	DiscountCode   string        `json:"discount_code" gorm:"size:50;index"`
	Price          float64       `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountAmount float64       `json:"discount_amount" gorm:"type:decimal(10,2);default:0"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Client  *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Service Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// FinalPrice is the price after the applied discount, never negative.
func (b *Booking) FinalPrice() float64 {
	final := b.Price - b.DiscountAmount
	if final < 0 {
		return 0
	}
	return final
}
