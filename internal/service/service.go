package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/locate"
	"github.com/mfreitas/clima-api/internal/metrics"
	"github.com/mfreitas/clima-api/internal/model"
	"github.com/mfreitas/clima-api/internal/position"
	"github.com/mfreitas/clima-api/internal/suggest"
	"go.uber.org/zap"
)

// Geocoder combines the forward and reverse geocoding collaborators
type Geocoder interface {
	Search(ctx context.Context, query string) ([]model.Suggestion, error)
	Reverse(ctx context.Context, lat, lon float64) (*model.Address, error)
}

// Orchestrator fetches and tracks weather snapshots
type Orchestrator interface {
	Submit(ctx context.Context, location, source string) (*model.Snapshot, error)
}

// HistoryReader reads the session lookup history
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]model.LookupRecord, error)
}

// Service provides business logic for the API
type Service struct {
	geocoder     Geocoder
	orchestrator Orchestrator
	history      HistoryReader
	locator      *locate.Pipeline
	minQueryLen  int
	metrics      *metrics.Collector
	logger       *zap.Logger
}

// NewService creates a new service instance. source and history may be
// nil; metrics may be nil in tests.
func NewService(
	geocoder Geocoder,
	source position.Source,
	orchestrator Orchestrator,
	history HistoryReader,
	cfg config.SuggestConfig,
	m *metrics.Collector,
	logger *zap.Logger,
) *Service {
	return &Service{
		geocoder:     geocoder,
		orchestrator: orchestrator,
		history:      history,
		locator:      locate.NewPipeline(source, geocoder, logger),
		minQueryLen:  cfg.MinQueryLen,
		metrics:      m,
		logger:       logger,
	}
}

// Suggest performs a forward geocode of the query and filters the
// results to settlements. Queries shorter than the minimum length skip
// the upstream call; lookup failures are silent and yield an empty list.
func (s *Service) Suggest(ctx context.Context, query string) ([]model.Suggestion, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.minQueryLen {
		return []model.Suggestion{}, nil
	}

	start := time.Now()
	results, err := s.geocoder.Search(ctx, trimmed)
	if s.metrics != nil {
		s.metrics.ObserveUpstream("geocode", start, err)
	}
	if err != nil {
		s.logger.Warn("suggestion lookup failed", zap.String("query", trimmed), zap.Error(err))
		return []model.Suggestion{}, nil
	}

	filtered := suggest.Filter(results)
	if s.metrics != nil {
		s.metrics.SuggestionResults.Observe(float64(len(filtered)))
	}
	return filtered, nil
}

// Locate resolves the configured position source to a location and
// fetches its weather
func (s *Service) Locate(ctx context.Context) (*model.LocateResponse, error) {
	return s.resolve(ctx, s.locator)
}

// LocateCoordinate resolves a caller-supplied coordinate pair, applying
// the same resolution rules and failure taxonomy as Locate
func (s *Service) LocateCoordinate(ctx context.Context, lat, lon float64) (*model.LocateResponse, error) {
	locator := locate.NewPipeline(position.Static{Coord: model.Coordinate{Lat: lat, Lon: lon}}, s.geocoder, s.logger)
	return s.resolve(ctx, locator)
}

func (s *Service) resolve(ctx context.Context, locator *locate.Pipeline) (*model.LocateResponse, error) {
	result, err := locator.Resolve(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.LookupsTotal.WithLabelValues("geolocation", "error").Inc()
		}
		return nil, err
	}

	response := &model.LocateResponse{
		Location: result.Location,
		Address:  result.Address,
		Request:  result.Coordinate,
	}

	// The resolved location is submitted exactly like a suggestion
	// selection; a weather failure does not undo the resolution
	snapshot, err := s.orchestrator.Submit(ctx, result.Location, "geolocation")
	if err != nil {
		response.WeatherError = err.Error()
	} else {
		response.Weather = snapshot
	}

	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues("geolocation", outcome(err)).Inc()
	}
	return response, nil
}

// Weather fetches a snapshot for an already-resolved location string
func (s *Service) Weather(ctx context.Context, location, source string) (*model.Snapshot, error) {
	snapshot, err := s.orchestrator.Submit(ctx, location, source)
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(source, outcome(err)).Inc()
	}
	return snapshot, err
}

// History returns the most recent lookups of the session
func (s *Service) History(ctx context.Context, limit int) ([]model.LookupRecord, error) {
	if s.history == nil {
		return []model.LookupRecord{}, nil
	}
	return s.history.Recent(ctx, limit)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
