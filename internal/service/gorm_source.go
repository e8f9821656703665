package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"transit_info/internal/models"
)

// GormRouteSource implements RouteSource over the shared GORM handle.
type GormRouteSource struct {
	db *gorm.DB
}

func NewGormRouteSource(db *gorm.DB) *GormRouteSource {
	return &GormRouteSource{db: db}
}

// ActiveRoutesServing narrows by set containment: route ids whose stop
// links cover both stops, then loads the active ones with their stop
// sequence in travel order.
func (s *GormRouteSource) ActiveRoutesServing(ctx context.Context, fromStopID, toStopID uint) ([]models.Route, error) {
	serving := s.db.WithContext(ctx).
		Table("route_stops").
		Select("route_id").
		Where("stop_id IN ?", []uint{fromStopID, toStopID}).
		Group("route_id").
		Having("COUNT(DISTINCT stop_id) = 2")

	var routes []models.Route
	err := s.db.WithContext(ctx).
		Preload("Stops", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Preload("Stops.Stop").
		Where("is_active = ?", true).
		Where("id IN (?)", serving).
		Order("id ASC").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// GormFareSource implements FareSource over the shared GORM handle.
type GormFareSource struct {
	db *gorm.DB
}

func NewGormFareSource(db *gorm.DB) *GormFareSource {
	return &GormFareSource{db: db}
}

func (s *GormFareSource) FareForType(ctx context.Context, routeType string) (*models.Fare, error) {
	var fare models.Fare
	err := s.db.WithContext(ctx).Where("route_type = ?", routeType).First(&fare).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fare, nil
}

// GormAlertSource implements AlertSource over the shared GORM handle.
type GormAlertSource struct {
	db *gorm.DB
}

func NewGormAlertSource(db *gorm.DB) *GormAlertSource {
	return &GormAlertSource{db: db}
}

// ActiveAlertForRoute evaluates the half-open window at the given instant.
// When several alerts overlap, the most recently started one wins.
func (s *GormAlertSource) ActiveAlertForRoute(ctx context.Context, routeID uint, at time.Time) (*models.ServiceAlert, error) {
	var alert models.ServiceAlert
	err := s.db.WithContext(ctx).
		Joins("JOIN alert_routes ON alert_routes.service_alert_id = service_alerts.id").
		Where("alert_routes.route_id = ?", routeID).
		Where("starts_at <= ? AND ends_at > ?", at, at).
		Order("starts_at DESC, service_alerts.id DESC").
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}
