package models

import (
	"gorm.io/gorm"
)

// Fare is the pricing rule for one route type: base charge plus a per-stop
// charge applied once per traversed edge. At most one record per type.
type Fare struct {
	gorm.Model

	RouteType     string  `json:"route_type" gorm:"uniqueIndex" binding:"required,oneof=Shuttle Bus Metro"`
	BaseFare      float64 `json:"base_fare" binding:"min=0"`
	PerStopCharge float64 `json:"per_stop_charge" binding:"min=0"`
}
