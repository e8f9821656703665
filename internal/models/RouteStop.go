package models

// RouteStop ties a Stop into a Route at a position along the line.
// Seq is the travel order; the resolver slices sub-journeys by position
// in this sequence. Join rows are hard-deleted so membership queries
// never see stale links.
type RouteStop struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	RouteID uint `gorm:"index;uniqueIndex:idx_route_seq" json:"route_id"`
	Seq     int  `gorm:"uniqueIndex:idx_route_seq" json:"seq"`
	StopID  uint `gorm:"index" json:"stop_id"`

	Stop Stop `gorm:"foreignKey:StopID" json:"stop"`
}
