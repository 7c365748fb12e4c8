package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mfreitas/clima-api/internal/model"
	"go.uber.org/zap"
)

// MsgWeatherError is the generic user-facing message for a failed fetch
const MsgWeatherError = "Não foi possível carregar a previsão"

// View identifies which of the mutually exclusive states is visible.
// Loading takes precedence over error, error over snapshot.
type View int

const (
	ViewEmpty View = iota
	ViewLoading
	ViewError
	ViewSnapshot
)

// Fetcher is the weather collaborator
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*model.Snapshot, error)
}

// Recorder stores completed lookups in the session history
type Recorder interface {
	Record(ctx context.Context, rec model.LookupRecord) error
}

// Orchestrator owns the weather view state: given a resolved location
// string from either pipeline or a direct submission, it fetches a
// snapshot and tracks loading/error/snapshot state.
type Orchestrator struct {
	fetcher  Fetcher
	recorder Recorder // may be nil
	logger   *zap.Logger

	mu       sync.Mutex
	loading  bool
	errMsg   string
	snapshot *model.Snapshot
}

// NewOrchestrator creates a weather orchestrator. recorder may be nil.
func NewOrchestrator(fetcher Fetcher, recorder Recorder, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		recorder: recorder,
		logger:   logger,
	}
}

// Submit fetches the weather for a location string. An empty trimmed
// string is ignored. Each submission is an independent fetch: a success
// replaces the whole snapshot and clears any error; a failure sets the
// generic message and deliberately leaves the previous snapshot in place.
func (o *Orchestrator) Submit(ctx context.Context, location, source string) (*model.Snapshot, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}

	o.mu.Lock()
	o.loading = true
	o.mu.Unlock()

	snapshot, err := o.fetcher.Fetch(ctx, location)

	o.mu.Lock()
	o.loading = false
	if err != nil {
		o.errMsg = MsgWeatherError
		o.mu.Unlock()
		o.logger.Error("weather fetch failed", zap.String("location", location), zap.Error(err))
		return nil, errors.New(MsgWeatherError)
	}
	o.snapshot = snapshot
	o.errMsg = ""
	o.mu.Unlock()

	o.record(ctx, location, source, snapshot)
	return snapshot, nil
}

// record is best-effort: history failures never affect the lookup
func (o *Orchestrator) record(ctx context.Context, location, source string, snapshot *model.Snapshot) {
	if o.recorder == nil {
		return
	}
	rec := model.LookupRecord{
		Location:    location,
		Source:      source,
		Temperature: snapshot.Temperature,
		Condition:   snapshot.Condition,
	}
	if err := o.recorder.Record(ctx, rec); err != nil {
		o.logger.Warn("failed to record lookup", zap.Error(err))
	}
}

// View returns the single visible state by priority
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.loading:
		return ViewLoading
	case o.errMsg != "":
		return ViewError
	case o.snapshot != nil:
		return ViewSnapshot
	default:
		return ViewEmpty
	}
}

// Loading reports whether a fetch is in progress
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Err returns the user-facing message of the last failed fetch, or ""
func (o *Orchestrator) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// Snapshot returns the last successful snapshot, which may be stale
// when an error is also set
func (o *Orchestrator) Snapshot() *model.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot
}
