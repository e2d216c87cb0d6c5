package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/gmaps"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

var errPlacesDisabled = apierr.New(http.StatusServiceUnavailable, "unavailable", errors.New("places search is not configured"))

// NearbyQuery locates a search. Lat and Lng are pointers so a missing
// coordinate is rejected instead of searching around 0,0.
type NearbyQuery struct {
	Lat    *float64 `form:"lat" json:"lat" validate:"required,latitude"`
	Lng    *float64 `form:"lng" json:"lng" validate:"required,longitude"`
	Radius uint     `form:"radius" json:"radius" validate:"lte=50000"`
	Type   string   `form:"type" json:"type" validate:"omitempty,max=64"`
}

type PlacesService interface {
	Nearby(ctx context.Context, q NearbyQuery) ([]gmaps.Place, error)
	NearProject(ctx context.Context, projectKey string, radius uint, placeType string) ([]gmaps.Place, error)
}

type placesService struct {
	log    *logger.Logger
	repos  repos.Set
	places gmaps.Places
}

// NewPlacesService accepts a nil places client; every call then reports 503.
func NewPlacesService(log *logger.Logger, set repos.Set, places gmaps.Places) PlacesService {
	return &placesService{log: log.With("service", "PlacesService"), repos: set, places: places}
}

func (s *placesService) Nearby(ctx context.Context, q NearbyQuery) ([]gmaps.Place, error) {
	q.Type = strings.TrimSpace(q.Type)
	if err := validate.Struct(&q); err != nil {
		return nil, err
	}
	if s.places == nil {
		return nil, errPlacesDisabled
	}
	lat, lng := *q.Lat, *q.Lng
	out, err := s.places.NearbySearch(ctx, lat, lng, q.Radius, q.Type)
	if err != nil {
		s.log.Error("nearby search failed", "lat", lat, "lng", lng, "type", q.Type, "error", err)
		return nil, apierr.Server()
	}
	return out, nil
}

// NearProject searches around the project's stored coordinates.
func (s *placesService) NearProject(ctx context.Context, projectKey string, radius uint, placeType string) ([]gmaps.Place, error) {
	if s.places == nil {
		return nil, errPlacesDisabled
	}
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "nearby", projectKey)
	}
	loc, err := s.repos.Location.Find(ctx, nil, gateway.Where("project_id", p.ID))
	if err != nil && !isNotFound(err) {
		return nil, classify(s.log, err, "location", "nearby", p.ID)
	}
	if loc == nil || loc.Latitude == nil || loc.Longitude == nil {
		return nil, apierr.ValidationField("location", "project has no coordinates")
	}
	return s.Nearby(ctx, NearbyQuery{Lat: loc.Latitude, Lng: loc.Longitude, Radius: radius, Type: placeType})
}
