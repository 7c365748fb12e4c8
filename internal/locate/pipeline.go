package locate

import (
	"context"
	"errors"
	"sync"

	"github.com/mfreitas/clima-api/internal/model"
	"github.com/mfreitas/clima-api/internal/position"
	"go.uber.org/zap"
)

// User-facing failure messages. Platform-level position failures map to
// one of four messages by error code; resolution failures after a
// successful position fix use their own messages.
const (
	MsgUnsupported      = "Geolocalização não é suportada neste dispositivo"
	MsgPermissionDenied = "Permissão de localização negada"
	MsgUnavailable      = "Localização indisponível"
	MsgTimeout          = "Tempo esgotado ao obter a localização"
	MsgPlatformError    = "Erro ao obter a localização"
	MsgResolveError     = "Erro ao determinar a localização"
	MsgNoLocation       = "Não foi possível determinar sua localização"
)

// State of the pipeline. A new resolution always starts from Idle
// regardless of the previous terminal state.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateResolved
	StateFailed
)

// ReverseGeocoder converts a coordinate pair into a structured address
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*model.Address, error)
}

// Result is a successful resolution
type Result struct {
	Location   string
	Address    model.Address
	Coordinate model.Coordinate
}

// Pipeline resolves the device position to a canonical location string.
// A nil position source models a platform without geolocation support.
type Pipeline struct {
	source   position.Source
	geocoder ReverseGeocoder
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	busy   bool
	errMsg string
}

// NewPipeline creates a geolocation pipeline. source may be nil.
func NewPipeline(source position.Source, geocoder ReverseGeocoder, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		source:   source,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve performs one full resolution: position fix, reverse geocode and
// canonical string derivation. On failure the returned error carries the
// user-facing message. The busy flag is cleared on every exit path.
func (p *Pipeline) Resolve(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	p.state = StateRequesting
	p.busy = true
	p.errMsg = ""
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	if p.source == nil {
		return nil, p.fail(MsgUnsupported)
	}

	coord, err := p.source.Current(ctx)
	if err != nil {
		p.logger.Warn("position request failed", zap.Error(err))
		return nil, p.fail(classify(err))
	}

	addr, err := p.geocoder.Reverse(ctx, coord.Lat, coord.Lon)
	if err != nil {
		p.logger.Warn("reverse geocode failed", zap.Error(err))
		return nil, p.fail(MsgResolveError)
	}

	location := model.FormatLocation(addr.CityName(), addr.State)
	if location == "" {
		return nil, p.fail(MsgNoLocation)
	}

	p.mu.Lock()
	p.state = StateResolved
	p.mu.Unlock()

	return &Result{Location: location, Address: *addr, Coordinate: coord}, nil
}

// classify maps a platform position error onto its user-facing message
func classify(err error) string {
	var posErr *position.Error
	if !errors.As(err, &posErr) {
		return MsgPlatformError
	}
	switch posErr.Code {
	case position.CodePermissionDenied:
		return MsgPermissionDenied
	case position.CodeUnavailable:
		return MsgUnavailable
	case position.CodeTimeout:
		return MsgTimeout
	default:
		return MsgPlatformError
	}
}

func (p *Pipeline) fail(msg string) error {
	p.mu.Lock()
	p.state = StateFailed
	p.errMsg = msg
	p.mu.Unlock()
	return errors.New(msg)
}

// Busy reports whether a resolution is in progress
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// State returns the current pipeline state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the user-facing message of the last failure, or ""
func (p *Pipeline) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}
