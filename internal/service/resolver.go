package service

import (
	"context"
	"time"

	"transit_info/internal/models"
)

// RouteSource lists active routes whose stop sequence contains both stops.
// Containment, not order, is the filter; ordering is checked by the
// resolver against each candidate's stop positions. Returned routes carry
// their RouteStop rows sorted by sequence with stops preloaded.
type RouteSource interface {
	ActiveRoutesServing(ctx context.Context, fromStopID, toStopID uint) ([]models.Route, error)
}

// FareSource looks up the fare record for a route type. A missing record
// is (nil, nil), never an error and never a default fare.
type FareSource interface {
	FareForType(ctx context.Context, routeType string) (*models.Fare, error)
}

// AlertSource returns the alert active for a route at the given instant,
// or (nil, nil) when none is. When several alerts are active at once the
// most recently started one wins.
type AlertSource interface {
	ActiveAlertForRoute(ctx context.Context, routeID uint, at time.Time) (*models.ServiceAlert, error)
}

// Resolver finds direct journeys between two stops: every active route
// serving the source before the destination, priced via the fare table and
// annotated with a currently-active alert. Pure read path; no state is
// carried between calls.
type Resolver struct {
	routes RouteSource
	fares  FareSource
	alerts AlertSource
	now    func() time.Time
}

func NewResolver(routes RouteSource, fares FareSource, alerts AlertSource) *Resolver {
	return &Resolver{routes: routes, fares: fares, alerts: alerts, now: time.Now}
}

// Resolve returns one Journey per active route that serves fromStopID
// strictly before toStopID in its travel direction. An empty result is a
// normal outcome, not an error; the identifiers need not refer to existing
// stops. Journeys come back in catalog iteration order, unranked.
func (r *Resolver) Resolve(ctx context.Context, fromStopID, toStopID uint) ([]Journey, error) {
	candidates, err := r.routes.ActiveRoutesServing(ctx, fromStopID, toStopID)
	if err != nil {
		return nil, err
	}

	journeys := make([]Journey, 0, len(candidates))
	for _, route := range candidates {
		fromIdx, toIdx := -1, -1
		for i, rs := range route.Stops {
			if rs.StopID == fromStopID && fromIdx < 0 {
				fromIdx = i
			}
			if rs.StopID == toStopID && toIdx < 0 {
				toIdx = i
			}
		}

		// Pickup must come strictly before dropoff in the route's travel
		// direction; anything else silently skips the candidate.
		if fromIdx < 0 || toIdx < 0 || fromIdx >= toIdx {
			continue
		}

		legs := route.Stops[fromIdx : toIdx+1]
		stops := make([]JourneyStop, 0, len(legs))
		for _, rs := range legs {
			stops = append(stops, JourneyStop{
				ID:   rs.StopID,
				Name: rs.Stop.Name,
				Location: GeoPoint{
					Type:        "Point",
					Coordinates: [2]float64{rs.Stop.Lng, rs.Stop.Lat},
				},
			})
		}

		fare, err := r.fareFor(ctx, route.Type, len(stops))
		if err != nil {
			return nil, err
		}

		alert, err := r.alertFor(ctx, route.ID)
		if err != nil {
			return nil, err
		}

		path, err := GeoJSONFromWKB(route.Path)
		if err != nil {
			return nil, err
		}

		journeys = append(journeys, Journey{
			RouteID:    route.ID,
			RouteName:  route.Name,
			RouteType:  route.Type,
			RouteColor: route.Color,
			Path:       path,
			Stops:      stops,
			Fare:       fare,
			Alert:      alert,
		})
	}

	return journeys, nil
}

// fareFor prices a sub-journey of stopCount stops: base plus the per-stop
// charge once per traversed edge. Nil when the type has no fare record.
func (r *Resolver) fareFor(ctx context.Context, routeType string, stopCount int) (*float64, error) {
	fare, err := r.fares.FareForType(ctx, routeType)
	if err != nil {
		return nil, err
	}
	if fare == nil {
		return nil, nil
	}
	total := fare.BaseFare + fare.PerStopCharge*float64(stopCount-1)
	return &total, nil
}

func (r *Resolver) alertFor(ctx context.Context, routeID uint) (*AlertSummary, error) {
	alert, err := r.alerts.ActiveAlertForRoute(ctx, routeID, r.now())
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, nil
	}
	return &AlertSummary{
		Title:       alert.Title,
		Description: alert.Description,
		Type:        alert.Type,
	}, nil
}
