package models

import (
	"time"

	"gorm.io/gorm"
)

type ServiceCategory string

const (
	CategoryFacial        ServiceCategory = "facial"
	CategoryHairRemoval   ServiceCategory = "hair_removal"
	CategorySkinTreatment ServiceCategory = "skin_treatment"
	CategoryMassage       ServiceCategory = "massage"
	CategoryOther         ServiceCategory = "other"
)

// ServiceCategories lists every valid category, in display order.
var ServiceCategories = []ServiceCategory{
	CategoryFacial,
	CategoryHairRemoval,
	CategorySkinTreatment,
	CategoryMassage,
	CategoryOther,
}

// IsValid checks the category against the shared enum. Every handler that
// accepts a category goes through this instead of its own string list.
func (sc ServiceCategory) IsValid() bool {
	switch sc {
	case CategoryFacial, CategoryHairRemoval, CategorySkinTreatment, CategoryMassage, CategoryOther:
		return true
	default:
		return false
	}
}

// Service represents a treatment offered by the clinic
type Service struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"type:varchar(200);not null"`
	NameAr        string          `json:"name_ar" gorm:"type:varchar(200)"`
	Description   string          `json:"description" gorm:"type:text"`
	DescriptionAr string          `json:"description_ar" gorm:"type:text"`
	Category      ServiceCategory `json:"category" gorm:"type:varchar(30);not null;check:category IN ('facial','hair_removal','skin_treatment','massage','other')"`
	Price         float64         `json:"price" gorm:"type:decimal(10,2);not null"`
	Duration      int             `json:"duration" gorm:"type:int"` // in minutes
	ImageURL      string          `json:"image_url" gorm:"type:varchar(255)"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// ServicePayload is the request body for creating/updating services
type ServicePayload struct {
	Name          string  `json:"name" binding:"required"`
	NameAr        string  `json:"name_ar"`
	Description   string  `json:"description"`
	DescriptionAr string  `json:"description_ar"`
	Category      string  `json:"category" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Duration      int     `json:"duration" binding:"required,gt=0"`
	ImageURL      string  `json:"image_url"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
