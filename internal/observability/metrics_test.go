package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/projects/:id", "200", 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/projects/:id", "404", 2*time.Second)
	m.ObserveExternal("qdrant", "query", errors.New("boom"), time.Second)
	m.APIInflightInc()

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, `estatehub_api_requests_total{method="GET",route="/api/projects/:id",status="200"} 1`)
	assert.Contains(t, out, `estatehub_api_request_seconds_bucket{method="GET",route="/api/projects/:id",le="0.05"} 1`)
	assert.Contains(t, out, `estatehub_api_request_seconds_bucket{method="GET",route="/api/projects/:id",le="+Inf"} 2`)
	assert.Contains(t, out, `estatehub_api_request_seconds_count{method="GET",route="/api/projects/:id"} 2`)
	assert.Contains(t, out, `estatehub_external_calls_total{service="qdrant",operation="query",outcome="error"} 1`)
	assert.Contains(t, out, "estatehub_api_inflight 1\n")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.APIInflightInc()
	m.ObserveExternal("gcs", "put", nil, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	assert.Empty(t, buf.String())
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route"}, []string{`a"b`})
	assert.True(t, strings.Contains(got, `a\"b`), got)
	assert.Equal(t, `{route="unknown"}`, labelString([]string{"route"}, nil))
}
