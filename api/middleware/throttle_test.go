package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/littlelemon-backend/pkg/config"
)

func TestThrottleLimitsPerUser(t *testing.T) {
	store := newFakeRateStore()
	cfg := config.ThrottleConfig{UserWindow: time.Minute, UserLimit: 2}
	handler := Throttle(cfg, store, nil)(okHandler())

	serve := func(userID uint) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/menu-items", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve(1).Code)
	assert.Equal(t, http.StatusOK, serve(1).Code)
	blocked := serve(1)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, serve(2).Code)
}

type observation struct {
	method, route string
	status        int
}

type stubObserver struct {
	seen []observation
}

func (s *stubObserver) Observe(method, route string, status int, _ time.Duration) {
	s.seen = append(s.seen, observation{method: method, route: route, status: status})
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	observer := &stubObserver{}
	r := chi.NewRouter()
	r.Use(Metrics(observer))
	r.Get("/api/orders/{orderID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders/17", nil))

	require.Len(t, observer.seen, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/api/orders/{orderID}", status: http.StatusNoContent}, observer.seen[0])
}
