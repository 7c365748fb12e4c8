package stats

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/mfreitas/clima-api/internal/history"
)

type Stats struct {
	Timestamp time.Time    `json:"timestamp"`
	Memory    MemoryStats  `json:"memory"`
	Lookups   LookupStats  `json:"lookups"`
	Runtime   RuntimeStats `json:"runtime"`
}

type MemoryStats struct {
	Alloc        uint64 `json:"alloc"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapSys      uint64 `json:"heap_sys"`
	HeapInuse    uint64 `json:"heap_inuse"`
	HeapReleased uint64 `json:"heap_released"`
}

// LookupStats summarizes the session's weather lookups
type LookupStats struct {
	Total        int64                   `json:"total"`
	TopLocations []history.LocationCount `json:"top_locations"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// Collector gathers process and session statistics
type Collector struct {
	store      *history.Store
	startTime  time.Time
	cachedMem  *MemoryStats
	cacheTime  time.Time
	cacheMutex sync.RWMutex
}

var memStatsCacheDuration = 5 * time.Second

// NewCollector creates a collector backed by the session history store
func NewCollector(store *history.Store) *Collector {
	return &Collector{
		store:     store,
		startTime: time.Now(),
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Timestamp: time.Now(),
	}

	stats.Memory = c.collectMemoryStats()

	lookupStats, err := c.collectLookupStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Lookups = *lookupStats
	stats.Runtime = c.collectRuntimeStats()

	return stats, nil
}

func (c *Collector) collectMemoryStats() MemoryStats {
	c.cacheMutex.RLock()
	if c.cachedMem != nil && time.Since(c.cacheTime) < memStatsCacheDuration {
		mem := *c.cachedMem
		c.cacheMutex.RUnlock()
		return mem
	}
	c.cacheMutex.RUnlock()

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mem := MemoryStats{
		Alloc:        m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapInuse:    m.HeapInuse,
		HeapReleased: m.HeapReleased,
	}

	c.cachedMem = &mem
	c.cacheTime = time.Now()

	return mem
}

func (c *Collector) collectLookupStats(ctx context.Context) (*LookupStats, error) {
	total, err := c.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	top, err := c.store.TopLocations(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &LookupStats{Total: total, TopLocations: top}, nil
}

func (c *Collector) collectRuntimeStats() RuntimeStats {
	uptime := time.Since(c.startTime).Seconds()
	return RuntimeStats{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		UptimeSeconds: int64(uptime),
	}
}
