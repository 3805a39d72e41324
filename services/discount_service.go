package services

import (
	"errors"
	"strings"
	"time"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
)

// Discount validation errors. Handlers map these to HTTP responses with a
// stable code field so the UI can branch without parsing message strings.
var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrCodeNotFound     = errors.New("discount code not found")
	ErrCodeInactive     = errors.New("discount code is inactive")
	ErrCodeOutOfWindow  = errors.New("discount code is outside its validity window")
	ErrCodeWrongService = errors.New("discount code does not apply to this service")
	ErrCodeAlreadyUsed  = errors.New("discount code already used by this client")
)

// DiscountQuote is the result of applying a code to a service price
type DiscountQuote struct {
	Code           string  `json:"code"`
	OriginalPrice  float64 `json:"original_price"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalPrice     float64 `json:"final_price"`
}

// DiscountService validates and computes discount codes
type DiscountService struct{}

// NewDiscountService creates a new discount service
func NewDiscountService() *DiscountService {
	return &DiscountService{}
}

// Quote validates a code for a service and computes the discounted price.
// clientID, when known, is used for the one-use-per-client-per-code check:
// any prior booking of that client carrying the code rejects reuse.
func (ds *DiscountService) Quote(code string, serviceID uint, clientID *uint, now time.Time) (*DiscountQuote, error) {
	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		return nil, ErrServiceNotFound
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))

	var discount models.DiscountCode
	if err := database.DB.Where("code = ?", normalized).First(&discount).Error; err != nil {
		return nil, ErrCodeNotFound
	}

	// Window first: an expired code is expired no matter what is_active says
	if !discount.IsWithinWindow(now) {
		return nil, ErrCodeOutOfWindow
	}

	if !discount.IsActive {
		return nil, ErrCodeInactive
	}

	if !discount.AppliesTo(serviceID) {
		return nil, ErrCodeWrongService
	}

	if clientID != nil {
		var used int64
		if err := database.DB.Model(&models.Booking{}).
			Where("client_id = ? AND discount_code = ?", *clientID, normalized).
			Count(&used).Error; err != nil {
			return nil, err
		}
		if used > 0 {
			return nil, ErrCodeAlreadyUsed
		}
	}

	amount := discount.AmountFor(service.Price)

	return &DiscountQuote{
		Code:           normalized,
		OriginalPrice:  service.Price,
		DiscountAmount: amount,
		FinalPrice:     service.Price - amount,
	}, nil
}
