package models

import (
	"time"
)

type TreatmentPlanStatus string

const (
	PlanStatusActive    TreatmentPlanStatus = "active"
	PlanStatusCompleted TreatmentPlanStatus = "completed"
	PlanStatusCancelled TreatmentPlanStatus = "cancelled"
)

// IsValid checks the plan status against the shared enum
func (ps TreatmentPlanStatus) IsValid() bool {
	switch ps {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusCancelled:
		return true
	default:
		return false
	}
}

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusMissed    SessionStatus = "missed"
)

// IsValid checks the session status against the shared enum
func (ss SessionStatus) IsValid() bool {
	switch ss {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled, SessionStatusMissed:
		return true
	default:
		return false
	}
}

// TreatmentPlan bundles N sessions for one client, created alongside the
// originating booking when a session count was supplied.
type TreatmentPlan struct {
	ID                uint                `json:"id" gorm:"primaryKey"`
	ClientID          uint                `json:"client_id" gorm:"not null;index"`
	BookingID         *uint               `json:"booking_id" gorm:"index"`
	TotalSessions     int                 `json:"total_sessions" gorm:"not null"`
	CompletedSessions int                 `json:"completed_sessions" gorm:"default:0"`
	Status            TreatmentPlanStatus `json:"status" gorm:"type:varchar(20);default:'active';check:status IN ('active','completed','cancelled')"`
	Notes             *string             `json:"notes" gorm:"size:1000"`
	CreatedAt         time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time           `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Client   Client             `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Booking  *Booking           `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Sessions []TreatmentSession `json:"sessions,omitempty" gorm:"foreignKey:TreatmentPlanID"`
}

// TableName specifies the table name for the TreatmentPlan model
func (TreatmentPlan) TableName() string {
	return "treatment_plans"
}

// TreatmentSession is one scheduled occurrence within a plan
type TreatmentSession struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	TreatmentPlanID    uint          `json:"treatment_plan_id" gorm:"not null;index"`
	ClientID           uint          `json:"client_id" gorm:"not null;index"`
	SessionNumber      int           `json:"session_number" gorm:"not null"`
	Date               time.Time     `json:"date" gorm:"not null"`
	Time               string        `json:"time" gorm:"size:20"`
	Status             SessionStatus `json:"status" gorm:"type:varchar(20);default:'scheduled';check:status IN ('scheduled','completed','cancelled','missed')"`
	Notes              *string       `json:"notes" gorm:"size:1000"`
	TreatmentPerformed string        `json:"treatment_performed" gorm:"size:500"`
	Results            string        `json:"results" gorm:"size:1000"`
	ReportID           *uint         `json:"report_id"`
	CreatedAt          time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	TreatmentPlan TreatmentPlan    `json:"treatment_plan,omitempty" gorm:"foreignKey:TreatmentPlanID"`
	Report        *TreatmentReport `json:"report,omitempty" gorm:"foreignKey:ReportID"`
}

// TableName specifies the table name for the TreatmentSession model
func (TreatmentSession) TableName() string {
	return "treatment_sessions"
}

// TreatmentReport is written by the clinic after a session
type TreatmentReport struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	TreatmentSessionID uint      `json:"treatment_session_id" gorm:"not null;uniqueIndex"`
	ReportText         string    `json:"report_text" gorm:"type:text;not null"`
	ImageURL           string    `json:"image_url" gorm:"size:255"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the TreatmentReport model
func (TreatmentReport) TableName() string {
	return "treatment_reports"
}
