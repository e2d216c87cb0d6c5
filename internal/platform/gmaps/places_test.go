package gmaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

func TestDistanceMeters(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(41.7151, 44.8271, 41.7151, 44.8271))
	// Tbilisi to Batumi is roughly 280km as the crow flies.
	d := DistanceMeters(41.7151, 44.8271, 41.6168, 41.6367)
	assert.InDelta(t, 265000, d, 20000)
}

func TestNearbySearchAnnotatesAndSortsByDistance(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"location": r.URL.Query().Get("location"),
			"radius":   r.URL.Query().Get("radius"),
			"type":     r.URL.Query().Get("type"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"far","name":"Far School","vicinity":"Far st","geometry":{"location":{"lat":41.73,"lng":44.83}}},
			{"place_id":"near","name":"Near School","vicinity":"Near st","geometry":{"location":{"lat":41.716,"lng":44.8271}}}
		]}`))
	}))
	defer srv.Close()

	p, err := NewPlaces(logger.Nop(), Config{APIKey: "AIza-test", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	places, err := p.NearbySearch(context.Background(), 41.7151, 44.8271, 0, "school")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "near", places[0].PlaceID)
	assert.Less(t, places[0].DistanceMeters, places[1].DistanceMeters)
	assert.Equal(t, "1000", gotQuery["radius"])
	assert.Equal(t, "school", gotQuery["type"])
}

func TestNewPlacesRequiresKey(t *testing.T) {
	_, err := NewPlaces(logger.Nop(), Config{}, nil)
	require.Error(t, err)
}
