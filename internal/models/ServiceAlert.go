package models

import (
	"time"

	"gorm.io/gorm"
)

// Alert kinds.
const (
	AlertTypeDelay   = "Delay"
	AlertTypeDetour  = "Detour"
	AlertTypeClosure = "Closure"
	AlertTypeInfo    = "Info"
)

// ValidAlertType reports whether t is one of the known alert kinds.
func ValidAlertType(t string) bool {
	switch t {
	case AlertTypeDelay, AlertTypeDetour, AlertTypeClosure, AlertTypeInfo:
		return true
	}
	return false
}

// ServiceAlert is a time-windowed advisory attached to one or more routes.
// The window is half-open: active iff StartsAt <= now < EndsAt.
type ServiceAlert struct {
	gorm.Model

	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" gorm:"default:Info"`

	AffectedRoutes []Route `gorm:"many2many:alert_routes" json:"affected_routes,omitempty"`

	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// ActiveAt reports whether the alert window covers t. An alert ending
// exactly at t is no longer active.
func (a *ServiceAlert) ActiveAt(t time.Time) bool {
	return !a.StartsAt.After(t) && t.Before(a.EndsAt)
}
