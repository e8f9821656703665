package models

import (
	"gorm.io/gorm"
)

// Route types. A fare record is keyed by one of these.
const (
	RouteTypeShuttle = "Shuttle"
	RouteTypeBus     = "Bus"
	RouteTypeMetro   = "Metro"
)

// ValidRouteType reports whether t is one of the known route types.
func ValidRouteType(t string) bool {
	switch t {
	case RouteTypeShuttle, RouteTypeBus, RouteTypeMetro:
		return true
	}
	return false
}

// Route is an ordered, directed sequence of stops plus display metadata.
// The stop order carried by the RouteStop rows is the direction of travel.
// Only routes with IsActive set are considered by the journey resolver.
type Route struct {
	gorm.Model

	Name string `json:"name" gorm:"uniqueIndex" binding:"required"`
	Type string `json:"type" binding:"required,oneof=Shuttle Bus Metro"`

	// Path geometry stored as WKB (LINESTRING); the API exchanges GeoJSON.
	// Independent of the stop sequence.
	Path []byte `gorm:"type:bytea" json:"-"`

	Color    string `json:"color" gorm:"default:#3498db"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Associations
	Stops []RouteStop `gorm:"foreignKey:RouteID" json:"stops,omitempty"`
}
