package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/report"
)

func newTestServer() *Server {
	return New("127.0.0.1:0", orbit.NewDefaultFactory(), WithLogger(newTestLogger()))
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func TestHandleClassify_SevenSlots(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/classify?n=7")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, 7, r.N)
	assert.Equal(t, "twisted", r.Action)
	assert.Equal(t, orbit.DefaultClassifier, r.Algorithm)
	assert.Equal(t, 10, r.Orbits)
	require.Len(t, r.Representatives, 10)
	assert.Equal(t, "0000000", r.Representatives[0].Bits)
	assert.Equal(t, 14, r.Representatives[0].OrbitSize)
	assert.Equal(t, "I", r.Representatives[0].Label)
	assert.Equal(t, "0101010", r.Representatives[9].Bits)
	assert.Empty(t, r.Representatives[0].Members)
}

func TestHandleClassify_AllStrategiesWithMembers(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/classify?n=5&algo=all&action=cyclic&members=true")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, "cyclic", r.Action)
	assert.Equal(t, "all", r.Algorithm)
	assert.Equal(t, 8, r.Orbits)
	total := 0
	for _, e := range r.Representatives {
		assert.Len(t, e.Members, e.OrbitSize)
		total += e.OrbitSize
	}
	assert.Equal(t, 32, total)
}

func TestHandleClassify_BadRequests(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name   string
		target string
	}{
		{"missing n", "/classify"},
		{"non-numeric n", "/classify?n=seven"},
		{"zero", "/classify?n=0"},
		{"above limit", "/classify?n=21"},
		{"unknown action", "/classify?n=4&action=mirror"},
		{"unknown algorithm", "/classify?n=4&algo=quantum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandleClassify_MethodNotAllowed(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classify?n=3", http.NoBody))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHandleOrbit(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/orbit?bits=0101010")
	require.Equal(t, http.StatusOK, rec.Code)

	var body OrbitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Size)
	assert.Equal(t, []string{"0101010", "1010101"}, body.Members)
	assert.Equal(t, "0101010", body.Key)

	rec = get(t, s, "/orbit?bits=01x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestOrbitsDiscoveredCounter(t *testing.T) {
	s := newTestServer()
	require.Equal(t, http.StatusOK, get(t, s, "/classify?n=7").Code)
	body := get(t, s, "/metrics").Body.String()
	assert.Contains(t, body, "orbitcalc_orbits_discovered_total 10")
	assert.Contains(t, body, "orbitcalc_request_duration_seconds")
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := newTestServer()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
