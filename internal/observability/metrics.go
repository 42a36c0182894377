package observability

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	metricsDirMode  = 0o700
	metricsFileMode = 0o600
)

// Registry holds in-process counters, gauges and timers. All methods
// are safe for concurrent use and safe on a nil receiver, so callers
// can treat metrics as strictly optional.
type Registry struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timers   map[string]float64
}

func NewRegistry() *Registry {
	return &Registry{
		counters: map[string]int64{},
		gauges:   map[string]float64{},
		timers:   map[string]float64{},
	}
}

func (r *Registry) Incr(name string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name]++
}

func (r *Registry) Gauge(name string, value float64) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges[name] = value
}

func (r *Registry) Timing(name string, elapsed time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers[name] = elapsed.Seconds()
}

type Snapshot struct {
	Counters map[string]int64   `json:"counters"`
	Gauges   map[string]float64 `json:"gauges"`
	Timers   map[string]float64 `json:"timers"`
}

func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Counters: map[string]int64{},
		Gauges:   map[string]float64{},
		Timers:   map[string]float64{},
	}
	if r == nil {
		return snap
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, value := range r.counters {
		snap.Counters[name] = value
	}
	for name, value := range r.gauges {
		snap.Gauges[name] = value
	}
	for name, value := range r.timers {
		snap.Timers[name] = value
	}

	return snap
}

// Flush writes the current snapshot to dir as a timestamped JSON file
// and returns the file path.
func (r *Registry) Flush(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, metricsDirMode); err != nil {
		return "", fmt.Errorf("create metrics directory: %w", err)
	}

	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metrics snapshot: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("metrics_%d.json", now.Unix()))
	if err := os.WriteFile(path, data, metricsFileMode); err != nil {
		return "", fmt.Errorf("write metrics snapshot: %w", err)
	}

	return path, nil
}
