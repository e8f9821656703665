package models

import (
	"gorm.io/gorm"
)

// SimpleRoute is a flat source/destination pair with a fixed fare, looked
// up by name. It bypasses the catalog entirely; each pair is unique.
type SimpleRoute struct {
	gorm.Model

	SourceName      string `json:"source_name" gorm:"uniqueIndex:idx_simple_pair" binding:"required"`
	DestinationName string `json:"destination_name" gorm:"uniqueIndex:idx_simple_pair" binding:"required"`

	SourceLng      float64 `json:"source_lng"`
	SourceLat      float64 `json:"source_lat"`
	DestinationLng float64 `json:"destination_lng"`
	DestinationLat float64 `json:"destination_lat"`

	Fare float64 `json:"fare"`
}
