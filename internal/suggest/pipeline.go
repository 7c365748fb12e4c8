package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/model"
	"go.uber.org/zap"
)

// Geocoder is the forward-geocoding collaborator of the pipeline
type Geocoder interface {
	Search(ctx context.Context, query string) ([]model.Suggestion, error)
}

// Pipeline converts typed input into a low-noise list of candidate
// locations. Input is debounced so at most one lookup is scheduled per
// quiet period, each issued lookup carries a monotonically increasing
// sequence number, and completions are applied only while they are still
// the latest issued lookup, so a slow earlier response can never
// overwrite a newer result.
type Pipeline struct {
	geocoder Geocoder
	logger   *zap.Logger
	debounce time.Duration
	minLen   int

	// onChange is invoked with the current suggestion list whenever
	// it is replaced or cleared
	onChange func([]model.Suggestion)

	mu          sync.Mutex
	query       string
	timer       *time.Timer
	seq         uint64
	suggestions []model.Suggestion
	open        bool
}

// NewPipeline creates a suggestion pipeline. onChange may be nil.
func NewPipeline(geocoder Geocoder, cfg config.SuggestConfig, logger *zap.Logger, onChange func([]model.Suggestion)) *Pipeline {
	return &Pipeline{
		geocoder: geocoder,
		logger:   logger,
		debounce: cfg.Debounce,
		minLen:   cfg.MinQueryLen,
		onChange: onChange,
	}
}

// Input records a change of the typed query. The raw text is stored
// immediately; the lookup itself is debounced. Queries shorter than the
// minimum length clear the list and issue no request.
func (p *Pipeline) Input(ctx context.Context, text string) {
	p.mu.Lock()
	p.query = text

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < p.minLen {
		// Invalidate any lookup still in flight so it cannot
		// repopulate a list the user just emptied
		p.seq++
		p.clearLocked()
		p.mu.Unlock()
		return
	}

	p.timer = time.AfterFunc(p.debounce, func() {
		p.lookup(ctx, trimmed)
	})
	p.mu.Unlock()
}

func (p *Pipeline) lookup(ctx context.Context, query string) {
	p.mu.Lock()
	p.seq++
	id := p.seq
	p.mu.Unlock()

	results, err := p.geocoder.Search(ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()

	if id != p.seq {
		// A newer lookup was issued while this one was in flight
		p.logger.Debug("discarding stale suggestion lookup", zap.String("query", query))
		return
	}

	if err != nil {
		p.logger.Warn("suggestion lookup failed", zap.String("query", query), zap.Error(err))
		p.clearLocked()
		return
	}

	p.suggestions = Filter(results)
	p.open = len(p.suggestions) > 0
	p.notifyLocked()
}

// Filter keeps only results that carry a resolvable city or town,
// discarding landmarks, streets and other non-settlement matches.
func Filter(results []model.Suggestion) []model.Suggestion {
	filtered := make([]model.Suggestion, 0, len(results))
	for _, r := range results {
		if r.Address.City != "" || r.Address.Town != "" {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Select resolves a suggestion into the canonical location string,
// replaces the query text with it and closes the list. It reports false
// when the suggestion lacks a resolvable city/town or state.
func (p *Pipeline) Select(s model.Suggestion) (string, bool) {
	location := s.Location()
	if location == "" {
		return "", false
	}

	p.mu.Lock()
	p.query = location
	p.seq++
	p.clearLocked()
	p.mu.Unlock()

	return location, true
}

// Dismiss closes the suggestion list without touching the query text
func (p *Pipeline) Dismiss() {
	p.mu.Lock()
	p.seq++
	p.clearLocked()
	p.mu.Unlock()
}

// Stop cancels any pending scheduled lookup
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()
}

// Query returns the current raw query text
func (p *Pipeline) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Suggestions returns the result of the latest completed lookup
func (p *Pipeline) Suggestions() []model.Suggestion {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suggestions
}

// Open reports whether the suggestion list is visible
func (p *Pipeline) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Pipeline) clearLocked() {
	p.suggestions = nil
	p.open = false
	p.notifyLocked()
}

func (p *Pipeline) notifyLocked() {
	if p.onChange != nil {
		p.onChange(p.suggestions)
	}
}
