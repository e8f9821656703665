package controllers

import (
	"encoding/json"
	"time"

	"transit_info/internal/models"
	"transit_info/internal/service"
)

// StopResponse mirrors models.Stop with the coordinates folded into a
// GeoJSON Point for the client map.
type StopResponse struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Location service.GeoPoint `json:"location"`
}

func toStopResponse(s models.Stop) StopResponse {
	return StopResponse{
		ID:   s.ID,
		Name: s.Name,
		Location: service.GeoPoint{
			Type:        "Point",
			Coordinates: [2]float64{s.Lng, s.Lat},
		},
	}
}

// RouteResponse mirrors models.Route but carries the path as GeoJSON and
// the stop sequence as plain stop objects in travel order.
type RouteResponse struct {
	ID        uint            `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Color     string          `json:"color"`
	IsActive  bool            `json:"is_active"`
	Path      json.RawMessage `json:"path"`
	Stops     []StopResponse  `json:"stops"`
}

func toRouteResponse(route models.Route) (RouteResponse, error) {
	path, err := service.GeoJSONFromWKB(route.Path)
	if err != nil {
		return RouteResponse{}, err
	}

	stops := make([]StopResponse, 0, len(route.Stops))
	for _, rs := range route.Stops {
		stops = append(stops, toStopResponse(rs.Stop))
	}

	return RouteResponse{
		ID:        route.ID,
		CreatedAt: route.CreatedAt,
		UpdatedAt: route.UpdatedAt,
		Name:      route.Name,
		Type:      route.Type,
		Color:     route.Color,
		IsActive:  route.IsActive,
		Path:      path,
		Stops:     stops,
	}, nil
}
