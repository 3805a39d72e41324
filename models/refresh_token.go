package models

import (
	"time"

	"gorm.io/gorm"
)

type PrincipalKind string

const (
	PrincipalAdmin  PrincipalKind = "admin"
	PrincipalClient PrincipalKind = "client"
)

// RefreshToken is a revocable long-lived token backing JWT refresh for both
// admin users and portal clients.
type RefreshToken struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Token       string        `json:"token" gorm:"size:255;uniqueIndex;not null"`
	PrincipalID uint          `json:"principal_id" gorm:"not null;index"`
	Kind        PrincipalKind `json:"kind" gorm:"type:varchar(10);not null;default:'client';check:kind IN ('admin','client')"`
	ExpiresAt   time.Time     `json:"expires_at" gorm:"not null;index"`
	IsRevoked   bool          `json:"is_revoked" gorm:"default:false;index"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Device information for security
	UserAgent string `json:"user_agent" gorm:"size:500"`
	IPAddress string `json:"ip_address" gorm:"size:45"`
}

// TableName specifies the table name for the RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsUsable checks if the refresh token is neither expired nor revoked
func (rt *RefreshToken) IsUsable() bool {
	return !rt.IsExpired() && !rt.IsRevoked
}

// Revoke marks the refresh token as revoked
func (rt *RefreshToken) Revoke() {
	rt.IsRevoked = true
	rt.UpdatedAt = time.Now()
}

// BeforeCreate is a GORM hook that runs before creating a refresh token
func (rt *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if rt.ExpiresAt.IsZero() {
		rt.ExpiresAt = time.Now().Add(30 * 24 * time.Hour)
	}
	return nil
}
