package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/mfreitas/clima-api/internal/model"
	"github.com/mfreitas/clima-api/internal/service"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Suggest handles GET /api/v1/suggest
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	// Short or empty queries are not errors: they yield an empty list
	// without touching the upstream provider
	results, err := h.service.Suggest(r.Context(), query)
	if err != nil {
		log.Printf("Error suggesting locations: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, model.SuggestResponse{Results: results})
}

// Locate handles GET /api/v1/locate. When lat and lon are supplied the
// caller's coordinates are resolved; otherwise the configured position
// source is used.
func (h *Handler) Locate(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	var response *model.LocateResponse
	var err error

	if latStr != "" || lonStr != "" {
		lat, perr := strconv.ParseFloat(latStr, 64)
		if perr != nil {
			http.Error(w, "invalid lat parameter", http.StatusBadRequest)
			return
		}
		lon, perr := strconv.ParseFloat(lonStr, 64)
		if perr != nil {
			http.Error(w, "invalid lon parameter", http.StatusBadRequest)
			return
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			http.Error(w, "invalid coordinates range", http.StatusBadRequest)
			return
		}
		response, err = h.service.LocateCoordinate(r.Context(), lat, lon)
	} else {
		response, err = h.service.Locate(r.Context())
	}

	if err != nil {
		// The error carries the user-facing resolution message
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, response)
}

// Weather handles GET /api/v1/weather
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		http.Error(w, "query parameter 'location' is required", http.StatusBadRequest)
		return
	}

	snapshot, err := h.service.Weather(r.Context(), location, "typed")
	if err != nil {
		log.Printf("Error fetching weather: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, snapshot)
}

// History handles GET /api/v1/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		log.Printf("Error reading history: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"lookups": records,
		"count":   len(records),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
