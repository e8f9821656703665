package models

import (
	"regexp"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Schedule lists the scheduled arrival times of one route at one stop.
// One record per (route, stop) pair, enforced by the unique index.
type Schedule struct {
	gorm.Model

	RouteID uint `json:"route_id" gorm:"uniqueIndex:idx_schedule_route_stop"`
	StopID  uint `json:"stop_id" gorm:"uniqueIndex:idx_schedule_route_stop"`

	Route Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
	Stop  Stop  `gorm:"foreignKey:StopID" json:"stop,omitempty"`

	// Arrival times in "HH:MM" 24-hour format
	ArrivalTimes pq.StringArray `gorm:"type:text[]" json:"arrival_times"`
}

var arrivalTimeRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidArrivalTime reports whether s is an "HH:MM" 24-hour time.
func ValidArrivalTime(s string) bool {
	return arrivalTimeRe.MatchString(s)
}
