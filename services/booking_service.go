package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
)

// ErrPlanRequiresEmail is returned when a multi-session booking arrives
// without an email; a treatment plan needs a client profile to belong to.
var ErrPlanRequiresEmail = errors.New("multi-session booking requires a client email")

// BookingInput carries everything the booking form may submit
type BookingInput struct {
	ClientID      *uint // set when the caller is an authenticated client
	ClientName    string
	ClientPhone   string
	ClientEmail   string
	ServiceID     uint
	Date          time.Time
	Time          string
	Notes         *string
	TotalSessions int
	DiscountCode  string
}

// BookingResult is what a successful booking creation produced
type BookingResult struct {
	Booking       *models.Booking          `json:"booking"`
	TreatmentPlan *models.TreatmentPlan    `json:"treatment_plan,omitempty"`
	FirstSession  *models.TreatmentSession `json:"first_session,omitempty"`
}

// BookingService runs the booking creation workflow
type BookingService struct {
	discounts *DiscountService
}

// NewBookingService creates a new booking service
func NewBookingService() *BookingService {
	return &BookingService{discounts: NewDiscountService()}
}

// CreateBooking runs the full workflow: resolve the service, find or create
// the client profile by email, validate an optional discount code, insert the
// booking (status forced to pending) and, when a session count was supplied,
// one treatment plan with exactly its first session. The whole sequence runs
// in one transaction so a failure after any step leaves no partial rows.
func (bs *BookingService) CreateBooking(input BookingInput) (*BookingResult, error) {
	var service models.Service
	if err := database.DB.Where("is_active = ?", true).First(&service, input.ServiceID).Error; err != nil {
		return nil, ErrServiceNotFound
	}

	clientID := input.ClientID
	if clientID == nil && input.ClientEmail != "" {
		client, err := bs.findOrCreateClient(input)
		if err != nil {
			return nil, err
		}
		clientID = &client.ID
	}
	if input.TotalSessions > 0 && clientID == nil {
		return nil, ErrPlanRequiresEmail
	}

	price := service.Price
	discountAmount := 0.0
	discountCode := ""
	if input.DiscountCode != "" {
		quote, err := bs.discounts.Quote(input.DiscountCode, service.ID, clientID, time.Now())
		if err != nil {
			return nil, err
		}
		discountAmount = quote.DiscountAmount
		discountCode = quote.Code
	}

	result := &BookingResult{}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		booking := &models.Booking{
			ClientID:       clientID,
			ClientName:     input.ClientName,
			ClientPhone:    input.ClientPhone,
			ClientEmail:    strings.ToLower(strings.TrimSpace(input.ClientEmail)),
			ServiceID:      service.ID,
			Date:           input.Date,
			Time:           input.Time,
			Status:         models.BookingStatusPending,
			Notes:          input.Notes,
			DiscountCode:   discountCode,
			Price:          price,
			DiscountAmount: discountAmount,
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		result.Booking = booking

		if input.TotalSessions > 0 {
			plan := &models.TreatmentPlan{
				ClientID:          *clientID,
				BookingID:         &booking.ID,
				TotalSessions:     input.TotalSessions,
				CompletedSessions: 0,
				Status:            models.PlanStatusActive,
				Notes:             input.Notes,
			}
			if err := tx.Create(plan).Error; err != nil {
				return err
			}
			result.TreatmentPlan = plan

			session := &models.TreatmentSession{
				TreatmentPlanID: plan.ID,
				ClientID:        *clientID,
				SessionNumber:   1,
				Date:            input.Date,
				Time:            input.Time,
				Status:          models.SessionStatusScheduled,
			}
			if err := tx.Create(session).Error; err != nil {
				return err
			}
			result.FirstSession = session
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Booking.Service = service
	return result, nil
}

// findOrCreateClient resolves a client profile by email, creating a walk-in
// profile (no password) when none exists yet.
func (bs *BookingService) findOrCreateClient(input BookingInput) (*models.Client, error) {
	email := strings.ToLower(strings.TrimSpace(input.ClientEmail))

	var client models.Client
	err := database.DB.Where("email = ?", email).First(&client).Error
	if err == nil {
		return &client, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	client = models.Client{
		Name:     input.ClientName,
		Email:    email,
		Phone:    input.ClientPhone,
		IsActive: true,
	}
	if err := database.DB.Create(&client).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Created walk-in client profile %d for %s", client.ID, email)
	return &client, nil
}
