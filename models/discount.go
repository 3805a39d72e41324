package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFlat       DiscountType = "flat"
)

// IsValid checks the discount type against the shared enum
func (dt DiscountType) IsValid() bool {
	switch dt {
	case DiscountTypePercentage, DiscountTypeFlat:
		return true
	default:
		return false
	}
}

// DiscountCode is a promotional code reducing a booking's price.
// Codes are stored upper-case; lookups upper-case their input.
type DiscountCode struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Code          string       `json:"code" gorm:"size:50;uniqueIndex;not null"`
	DiscountType  DiscountType `json:"discount_type" gorm:"type:varchar(20);not null;check:discount_type IN ('percentage','flat')"`
	DiscountValue float64      `json:"discount_value" gorm:"type:decimal(10,2);not null"`
	IsActive      bool         `json:"is_active" gorm:"default:true"`
	ValidFrom     time.Time    `json:"valid_from" gorm:"not null"`
	ValidTo       time.Time    `json:"valid_to" gorm:"not null"`
	ServiceID     *uint        `json:"service_id" gorm:"index"` // nil = applies to any service
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the DiscountCode model
func (DiscountCode) TableName() string {
	return "discount_codes"
}

// BeforeSave is a GORM hook that normalizes the code
func (dc *DiscountCode) BeforeSave(tx *gorm.DB) error {
	dc.Code = strings.ToUpper(strings.TrimSpace(dc.Code))
	return nil
}

// IsWithinWindow reports whether now falls inside [valid_from, valid_to].
// A code outside its window is rejected regardless of is_active.
func (dc *DiscountCode) IsWithinWindow(now time.Time) bool {
	return !now.Before(dc.ValidFrom) && !now.After(dc.ValidTo)
}

// AppliesTo reports whether the code can be used for the given service
func (dc *DiscountCode) AppliesTo(serviceID uint) bool {
	return dc.ServiceID == nil || *dc.ServiceID == serviceID
}

// AmountFor computes the discount amount for a price, clamped to [0, price]
// so the final price can never go negative.
func (dc *DiscountCode) AmountFor(price float64) float64 {
	var amount float64
	if dc.DiscountType == DiscountTypePercentage {
		amount = dc.DiscountValue * price / 100
	} else {
		amount = dc.DiscountValue
	}
	if amount < 0 {
		return 0
	}
	if amount > price {
		return price
	}
	return amount
}
