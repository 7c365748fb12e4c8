package position

import (
	"context"

	"github.com/mfreitas/clima-api/internal/model"
)

// Code classifies platform-level position failures, mirroring the
// conventional geolocation error codes.
type Code int

const (
	CodePermissionDenied Code = 1
	CodeUnavailable      Code = 2
	CodeTimeout          Code = 3
)

// Error is a platform-level position failure
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Source provides the device's current position. Every call is a fresh
// one-shot request; implementations must not serve cached positions.
type Source interface {
	Current(ctx context.Context) (model.Coordinate, error)
}

// Static is a Source with a fixed coordinate, used when the caller
// already holds the position (e.g. coordinates forwarded by a client).
type Static struct {
	Coord model.Coordinate
}

func (s Static) Current(ctx context.Context) (model.Coordinate, error) {
	return s.Coord, nil
}
