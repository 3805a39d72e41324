package models

import "time"

// Client is a clinic customer. Registered clients carry a password hash;
// walk-in profiles created during anonymous booking leave it empty until
// the client registers with the same email.
type Client struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"size:30"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Bookings       []Booking       `json:"bookings,omitempty" gorm:"foreignKey:ClientID"`
	TreatmentPlans []TreatmentPlan `json:"treatment_plans,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// IsRegistered reports whether the client can sign in to the portal.
func (c *Client) IsRegistered() bool {
	return c.PasswordHash != ""
}
