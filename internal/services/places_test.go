package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	"github.com/yungbote/estatehub-backend/internal/platform/gmaps"
)

type recordingPlaces struct {
	calls    int
	lat, lng float64
}

func (p *recordingPlaces) NearbySearch(_ context.Context, lat, lng float64, _ uint, _ string) ([]gmaps.Place, error) {
	p.calls++
	p.lat, p.lng = lat, lng
	return []gmaps.Place{{PlaceID: "p1", Name: "Marina Mall"}}, nil
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	f := newFixture(t)
	places := &recordingPlaces{}
	svc := NewPlacesService(f.log, f.repo, places)
	lat, lng, zero := 25.08, 55.14, 0.0

	_, err := svc.Nearby(f.ctx, NearbyQuery{Lng: &lng})
	assert.Contains(t, fieldsOf(t, err), "lat")

	_, err = svc.Nearby(f.ctx, NearbyQuery{Lat: &lat})
	assert.Contains(t, fieldsOf(t, err), "lng")

	bad := 91.0
	_, err = svc.Nearby(f.ctx, NearbyQuery{Lat: &bad, Lng: &lng})
	assert.Contains(t, fieldsOf(t, err), "lat")
	assert.Zero(t, places.calls)

	// The equator and prime meridian are real coordinates.
	out, err := svc.Nearby(f.ctx, NearbyQuery{Lat: &zero, Lng: &zero})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = svc.Nearby(f.ctx, NearbyQuery{Lat: &lat, Lng: &lng, Type: " cafe "})
	require.NoError(t, err)
	assert.Equal(t, 2, places.calls)
	assert.Equal(t, lat, places.lat)
	assert.Equal(t, lng, places.lng)
}

func TestNearbyWithoutClient(t *testing.T) {
	f := newFixture(t)
	svc := NewPlacesService(f.log, f.repo, nil)
	lat, lng := 25.08, 55.14

	_, err := svc.Nearby(f.ctx, NearbyQuery{})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Nearby(f.ctx, NearbyQuery{Lat: &lat, Lng: &lng})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
}

func TestNearProjectUsesStoredCoordinates(t *testing.T) {
	f := newFixture(t)
	places := &recordingPlaces{}
	svc := NewPlacesService(f.log, f.repo, places)

	bare := testutil.SeedProject(t, f.ctx, f.db, "bare", nil)
	_, err := svc.NearProject(f.ctx, bare.Slug, 1000, "")
	assert.Contains(t, fieldsOf(t, err), "location")

	p := testutil.SeedProject(t, f.ctx, f.db, "located", nil)
	loc := testutil.SeedLocation(t, f.ctx, f.db, p.ID, "Dubai")
	_, err = svc.NearProject(f.ctx, p.Slug, 1000, "school")
	require.NoError(t, err)
	assert.Equal(t, *loc.Latitude, places.lat)
	assert.Equal(t, *loc.Longitude, places.lng)
}
