package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp-console/internal/session"
)

func init() { gin.SetMode(gin.TestMode) }

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/users/edit/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/users/edit/1", "/users/edit/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/users/edit/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestTransportCountsUpstreamCalls(t *testing.T) {
	m := New(prometheus.NewRegistry())
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer api.Close()

	client := &http.Client{Transport: m.Transport(nil)}
	resp, err := client.Get(api.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("401", "get")))
}

func TestSessionObserver(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveSession(session.Snapshot{Event: session.EventLogin})
	m.ObserveSession(session.Snapshot{Event: session.EventLogin})
	m.ObserveSession(session.Snapshot{})
	m.ObserveVerdict("denied")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionEventsTotal.WithLabelValues("login")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SessionEventsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuardDecisions.WithLabelValues("denied")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveVerdict("granted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `erp_console_guard_decisions_total{verdict="granted"} 1`))
}
