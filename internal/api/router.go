package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mfreitas/clima-api/internal/metrics"
	"github.com/mfreitas/clima-api/internal/service"
	"github.com/mfreitas/clima-api/internal/stats"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, statsCollector *stats.Collector, metricsCollector *metrics.Collector) *mux.Router {
	handler := NewHandler(svc)

	router := mux.NewRouter()

	// Health check and metrics
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.Use(instrument(metricsCollector))
	v1.HandleFunc("/suggest", handler.Suggest).Methods("GET")
	v1.HandleFunc("/locate", handler.Locate).Methods("GET")
	v1.HandleFunc("/weather", handler.Weather).Methods("GET")
	v1.HandleFunc("/history", handler.History).Methods("GET")

	if statsCollector != nil {
		statsHandler := NewStatsHandler(statsCollector)
		v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	}

	return router
}

// instrument records per-endpoint request counts and durations
func instrument(c *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tmpl
				}
			}

			c.APIRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(recorder.status)).Inc()
			c.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
