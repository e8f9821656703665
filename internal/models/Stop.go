package models

import (
	"gorm.io/gorm"
)

// Stop is a named boarding/alighting point with a geographic position.
// Coordinates are stored as plain lng/lat columns; API responses expose
// them as a GeoJSON Point.
type Stop struct {
	gorm.Model

	Name string  `json:"name" binding:"required"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}
