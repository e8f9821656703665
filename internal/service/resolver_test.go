package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"transit_info/internal/models"
)

// fakeRoutes implements RouteSource over an in-memory catalog, honoring
// the same contract as the GORM source: active routes containing both
// stops, in catalog order.
type fakeRoutes struct {
	routes []models.Route
	err    error
}

func (f *fakeRoutes) ActiveRoutesServing(_ context.Context, fromStopID, toStopID uint) ([]models.Route, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Route
	for _, r := range f.routes {
		if !r.IsActive {
			continue
		}
		hasFrom, hasTo := false, false
		for _, rs := range r.Stops {
			if rs.StopID == fromStopID {
				hasFrom = true
			}
			if rs.StopID == toStopID {
				hasTo = true
			}
		}
		if hasFrom && hasTo && fromStopID != toStopID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeFares struct {
	byType map[string]models.Fare
	err    error
}

func (f *fakeFares) FareForType(_ context.Context, routeType string) (*models.Fare, error) {
	if f.err != nil {
		return nil, f.err
	}
	fare, ok := f.byType[routeType]
	if !ok {
		return nil, nil
	}
	return &fare, nil
}

type alertEntry struct {
	alert    models.ServiceAlert
	routeIDs []uint
}

// fakeAlerts mirrors the GORM source's tie-break: most recently started
// active alert wins.
type fakeAlerts struct {
	entries []alertEntry
}

func (f *fakeAlerts) ActiveAlertForRoute(_ context.Context, routeID uint, at time.Time) (*models.ServiceAlert, error) {
	var best *models.ServiceAlert
	for i := range f.entries {
		e := &f.entries[i]
		attached := false
		for _, id := range e.routeIDs {
			if id == routeID {
				attached = true
				break
			}
		}
		if !attached || !e.alert.ActiveAt(at) {
			continue
		}
		if best == nil || e.alert.StartsAt.After(best.StartsAt) {
			best = &e.alert
		}
	}
	return best, nil
}

func busRoute(id uint, name string, stopIDs ...uint) models.Route {
	r := models.Route{Name: name, Type: models.RouteTypeBus, Color: "#3498db", IsActive: true}
	r.ID = id
	for i, sid := range stopIDs {
		stop := models.Stop{Name: fmt.Sprintf("S%d", sid), Lng: float64(sid), Lat: float64(sid) / 2}
		stop.ID = sid
		r.Stops = append(r.Stops, models.RouteStop{RouteID: id, StopID: sid, Seq: i, Stop: stop})
	}
	return r
}

func newTestResolver(routes RouteSource, fares FareSource, alerts AlertSource, now time.Time) *Resolver {
	r := NewResolver(routes, fares, alerts)
	r.now = func() time.Time { return now }
	return r
}

func stopIDs(j Journey) []uint {
	ids := make([]uint, 0, len(j.Stops))
	for _, s := range j.Stops {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestResolveNoCommonRoute(t *testing.T) {
	routes := &fakeRoutes{routes: []models.Route{
		busRoute(1, "North Line", 1, 2),
		busRoute(2, "South Line", 3, 4),
	}}
	r := newTestResolver(routes, &fakeFares{}, &fakeAlerts{}, time.Now())

	journeys, err := r.Resolve(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(journeys) != 0 {
		t.Fatalf("expected no journeys, got %d", len(journeys))
	}
}

func TestResolveDirectionRule(t *testing.T) {
	// Route [A=1, B=2, C=3, D=4]
	routes := &fakeRoutes{routes: []models.Route{busRoute(10, "Line", 1, 2, 3, 4)}}
	r := newTestResolver(routes, &fakeFares{}, &fakeAlerts{}, time.Now())

	forward, err := r.Resolve(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(forward) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(forward))
	}
	if got, want := stopIDs(forward[0]), []uint{2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("sub-journey stops = %v, want %v", got, want)
	}

	reverse, err := r.Resolve(context.Background(), 4, 2)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(reverse) != 0 {
		t.Errorf("reverse direction should yield no journey, got %d", len(reverse))
	}
}

func TestResolveFareFormula(t *testing.T) {
	routes := &fakeRoutes{routes: []models.Route{busRoute(1, "Line", 1, 2, 3)}}
	fares := &fakeFares{byType: map[string]models.Fare{
		models.RouteTypeBus: {RouteType: models.RouteTypeBus, BaseFare: 10, PerStopCharge: 2},
	}}
	r := newTestResolver(routes, fares, &fakeAlerts{}, time.Now())

	journeys, err := r.Resolve(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(journeys) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(journeys))
	}
	if journeys[0].Fare == nil {
		t.Fatal("fare should be set")
	}
	// base 10 + 2 per edge over 3 stops = 14
	if *journeys[0].Fare != 14 {
		t.Errorf("fare = %v, want 14", *journeys[0].Fare)
	}
}

func TestResolveUnpricedFareIsNull(t *testing.T) {
	routes := &fakeRoutes{routes: []models.Route{busRoute(1, "Line", 1, 2)}}
	r := newTestResolver(routes, &fakeFares{}, &fakeAlerts{}, time.Now())

	journeys, err := r.Resolve(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(journeys) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(journeys))
	}
	if journeys[0].Fare != nil {
		t.Errorf("fare should be nil when the type has no fare record, got %v", *journeys[0].Fare)
	}

	// The response shape must carry an explicit null, never omit the field.
	b, err := json.Marshal(journeys[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"fare":null`) {
		t.Errorf("serialized journey should contain \"fare\":null, got %s", b)
	}
}

func TestResolveAlertWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	routes := &fakeRoutes{routes: []models.Route{busRoute(7, "Line", 1, 2)}}

	active := models.ServiceAlert{
		Title:       "Works ahead",
		Description: "Expect delays",
		Type:        models.AlertTypeDelay,
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
	}
	expired := models.ServiceAlert{
		Title:    "Old closure",
		Type:     models.AlertTypeClosure,
		StartsAt: now.Add(-2 * time.Hour),
		EndsAt:   now.Add(-time.Minute),
	}

	t.Run("active alert attached", func(t *testing.T) {
		alerts := &fakeAlerts{entries: []alertEntry{{alert: active, routeIDs: []uint{7}}}}
		r := newTestResolver(routes, &fakeFares{}, alerts, now)
		journeys, err := r.Resolve(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if journeys[0].Alert == nil {
			t.Fatal("expected an alert")
		}
		if journeys[0].Alert.Title != "Works ahead" {
			t.Errorf("alert title = %q", journeys[0].Alert.Title)
		}
	})

	t.Run("expired alert excluded", func(t *testing.T) {
		alerts := &fakeAlerts{entries: []alertEntry{{alert: expired, routeIDs: []uint{7}}}}
		r := newTestResolver(routes, &fakeFares{}, alerts, now)
		journeys, err := r.Resolve(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if journeys[0].Alert != nil {
			t.Errorf("expired alert should not be attached, got %q", journeys[0].Alert.Title)
		}
	})

	t.Run("alert for another route excluded", func(t *testing.T) {
		alerts := &fakeAlerts{entries: []alertEntry{{alert: active, routeIDs: []uint{99}}}}
		r := newTestResolver(routes, &fakeFares{}, alerts, now)
		journeys, err := r.Resolve(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if journeys[0].Alert != nil {
			t.Error("alert attached to a different route should be excluded")
		}
	})
}

func TestResolveAlertTieBreak(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	routes := &fakeRoutes{routes: []models.Route{busRoute(3, "Line", 1, 2)}}

	older := models.ServiceAlert{Title: "Older", StartsAt: now.Add(-2 * time.Hour), EndsAt: now.Add(time.Hour)}
	newer := models.ServiceAlert{Title: "Newer", StartsAt: now.Add(-10 * time.Minute), EndsAt: now.Add(time.Hour)}

	alerts := &fakeAlerts{entries: []alertEntry{
		{alert: older, routeIDs: []uint{3}},
		{alert: newer, routeIDs: []uint{3}},
	}}
	r := newTestResolver(routes, &fakeFares{}, alerts, now)

	journeys, err := r.Resolve(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if journeys[0].Alert == nil {
		t.Fatal("expected an alert")
	}
	if journeys[0].Alert.Title != "Newer" {
		t.Errorf("most recently started alert should win, got %q", journeys[0].Alert.Title)
	}
}

func TestResolveScenarioLine1(t *testing.T) {
	// Stops S1..S4 on "Line 1" (Bus, base 5, per-stop 1), delay active now.
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	routes := &fakeRoutes{routes: []models.Route{busRoute(1, "Line 1", 1, 2, 3, 4)}}
	fares := &fakeFares{byType: map[string]models.Fare{
		models.RouteTypeBus: {RouteType: models.RouteTypeBus, BaseFare: 5, PerStopCharge: 1},
	}}
	delay := models.ServiceAlert{
		Title:       "Delay on Line1",
		Description: "Congestion",
		Type:        models.AlertTypeDelay,
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
	}
	alerts := &fakeAlerts{entries: []alertEntry{{alert: delay, routeIDs: []uint{1}}}}

	r := newTestResolver(routes, fares, alerts, now)
	journeys, err := r.Resolve(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(journeys) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(journeys))
	}

	j := journeys[0]
	if got, want := stopIDs(j), []uint{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("stops = %v, want %v", got, want)
	}
	if j.Fare == nil || *j.Fare != 7 {
		t.Errorf("fare = %v, want 7", j.Fare)
	}
	if j.Alert == nil || j.Alert.Title != "Delay on Line1" {
		t.Errorf("alert = %+v, want title \"Delay on Line1\"", j.Alert)
	}
	if j.RouteName != "Line 1" || j.RouteType != models.RouteTypeBus {
		t.Errorf("route metadata = %q/%q", j.RouteName, j.RouteType)
	}
}

func TestResolveMultipleRoutesOnePerRoute(t *testing.T) {
	// Both routes serve 1 before 3; each yields its own journey, in
	// catalog order.
	routes := &fakeRoutes{routes: []models.Route{
		busRoute(1, "Express", 1, 3),
		busRoute(2, "Local", 1, 2, 3),
	}}
	r := newTestResolver(routes, &fakeFares{}, &fakeAlerts{}, time.Now())

	journeys, err := r.Resolve(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(journeys) != 2 {
		t.Fatalf("expected 2 journeys, got %d", len(journeys))
	}
	if journeys[0].RouteID != 1 || journeys[1].RouteID != 2 {
		t.Errorf("journeys out of catalog order: %d, %d", journeys[0].RouteID, journeys[1].RouteID)
	}
	if len(journeys[0].Stops) != 2 || len(journeys[1].Stops) != 3 {
		t.Errorf("stop counts = %d, %d; want 2, 3", len(journeys[0].Stops), len(journeys[1].Stops))
	}
}

func TestResolveIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	routes := &fakeRoutes{routes: []models.Route{busRoute(1, "Line 1", 1, 2, 3)}}
	fares := &fakeFares{byType: map[string]models.Fare{
		models.RouteTypeBus: {RouteType: models.RouteTypeBus, BaseFare: 2, PerStopCharge: 1},
	}}
	r := newTestResolver(routes, fares, &fakeAlerts{}, now)

	first, err := r.Resolve(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := r.Resolve(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated resolve differs:\n%+v\n%+v", first, second)
	}
}

func TestResolvePathGeometry(t *testing.T) {
	route := busRoute(1, "Line", 1, 2)
	wkbPath, err := WKBLineString([][]float64{{2.17, 41.38}, {2.18, 41.39}})
	if err != nil {
		t.Fatalf("WKBLineString failed: %v", err)
	}
	route.Path = wkbPath

	routes := &fakeRoutes{routes: []models.Route{route}}
	r := newTestResolver(routes, &fakeFares{}, &fakeAlerts{}, time.Now())

	journeys, err := r.Resolve(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	var line struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(journeys[0].Path, &line); err != nil {
		t.Fatalf("journey path is not valid GeoJSON: %v", err)
	}
	if line.Type != "LineString" || len(line.Coordinates) != 2 {
		t.Errorf("path = %+v", line)
	}
}

func TestResolveStoreFailure(t *testing.T) {
	routes := &fakeRoutes{err: errors.New("connection refused")}
	r := newTestResolver(routes, &fakeFares{}, &fakeAlerts{}, time.Now())

	if _, err := r.Resolve(context.Background(), 1, 2); err == nil {
		t.Fatal("store failure should propagate")
	}
}
