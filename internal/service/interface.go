package service

import (
	"context"

	"github.com/mfreitas/clima-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	Suggest(ctx context.Context, query string) ([]model.Suggestion, error)
	Locate(ctx context.Context) (*model.LocateResponse, error)
	LocateCoordinate(ctx context.Context, lat, lon float64) (*model.LocateResponse, error)
	Weather(ctx context.Context, location, source string) (*model.Snapshot, error)
	History(ctx context.Context, limit int) ([]model.LookupRecord, error)
}
