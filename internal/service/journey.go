package service

import (
	"encoding/json"
)

// GeoPoint is a GeoJSON Point as exposed on the wire: [lng, lat].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// JourneyStop is one stop of a journey's ordered sub-sequence.
type JourneyStop struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Location GeoPoint `json:"location"`
}

// AlertSummary is the caller-facing view of an active service alert. The
// alert's internal identifiers and affected-route set are never exposed.
type AlertSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Journey describes travel between two stops along one route. It is derived
// per request and never persisted. Fare is nil when no fare record exists
// for the route's type ("unpriced", distinct from free); Alert is nil when
// no alert is active for the route at resolution time.
type Journey struct {
	RouteID    uint            `json:"routeId"`
	RouteName  string          `json:"routeName"`
	RouteType  string          `json:"routeType"`
	RouteColor string          `json:"routeColor"`
	Path       json.RawMessage `json:"path"`
	Stops      []JourneyStop   `json:"stops"`
	Fare       *float64        `json:"fare"`
	Alert      *AlertSummary   `json:"alert"`
}
