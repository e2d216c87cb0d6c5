package gmaps

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/umahmood/haversine"
	"googlemaps.github.io/maps"

	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

const (
	DefaultRadiusMeters = 1000
	MaxRadiusMeters     = 50000
)

type Place struct {
	PlaceID        string   `json:"placeId"`
	Name           string   `json:"name"`
	Address        string   `json:"address,omitempty"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Rating         float32  `json:"rating,omitempty"`
	Types          []string `json:"types,omitempty"`
	DistanceMeters float64  `json:"distanceMeters"`
}

// Places finds points of interest around a coordinate.
type Places interface {
	NearbySearch(ctx context.Context, lat, lng float64, radius uint, placeType string) ([]Place, error)
}

type Config struct {
	APIKey  string
	BaseURL string
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:  envutil.String("GOOGLE_MAPS_API_KEY", ""),
		BaseURL: envutil.String("GOOGLE_MAPS_BASE_URL", ""),
	}
}

type placesClient struct {
	log *logger.Logger
	c   *maps.Client
}

func NewPlaces(log *logger.Logger, cfg Config, httpClient *http.Client) (Places, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GOOGLE_MAPS_API_KEY")
	}
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &placesClient{log: log.With("client", "GooglePlaces"), c: c}, nil
}

func (p *placesClient) NearbySearch(ctx context.Context, lat, lng float64, radius uint, placeType string) ([]Place, error) {
	if radius == 0 {
		radius = DefaultRadiusMeters
	}
	if radius > MaxRadiusMeters {
		radius = MaxRadiusMeters
	}
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   radius,
	}
	if t := strings.TrimSpace(placeType); t != "" {
		req.Type = maps.PlaceType(t)
	}
	resp, err := p.c.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	out := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		loc := r.Geometry.Location
		addr := r.Vicinity
		if addr == "" {
			addr = r.FormattedAddress
		}
		out = append(out, Place{
			PlaceID:        r.PlaceID,
			Name:           r.Name,
			Address:        addr,
			Latitude:       loc.Lat,
			Longitude:      loc.Lng,
			Rating:         r.Rating,
			Types:          r.Types,
			DistanceMeters: DistanceMeters(lat, lng, loc.Lat, loc.Lng),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceMeters < out[j].DistanceMeters })
	return out, nil
}

// DistanceMeters is the great-circle distance rounded to the metre.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lng1},
		haversine.Coord{Lat: lat2, Lon: lng2},
	)
	return math.Round(km * 1000)
}
