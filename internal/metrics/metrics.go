package metrics

import (
	"sync"
	"time"
)

type opStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about player mutations and
// store saves, mirrored to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	mutations map[string]*opStats
	saves     map[string]*opStats
	retries   map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		mutations: make(map[string]*opStats),
		saves:     make(map[string]*opStats),
		retries:   make(map[string]int),
		otel:      otel,
	}
}

// RecordMutation counts a directory mutation (add, level_up) and its latency.
func (r *Recorder) RecordMutation(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	record(r.mutations, op, duration, err)
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordMutation(op, duration, err)
	}
}

// RecordSave counts a flush to the given backend and its latency.
func (r *Recorder) RecordSave(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	record(r.saves, backend, duration, err)
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSave(backend, duration, err)
	}
}

// RecordSaveRetry tracks a retried backend save.
func (r *Recorder) RecordSaveRetry(backend string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.retries[backend]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSaveRetry(backend)
	}
}

// Snapshot returns a copy of the stats for one operation or backend.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// Mutation returns the stats recorded for a directory mutation.
func (r *Recorder) Mutation(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshotOf(r.mutations[op])
}

// Save returns the stats recorded for a backend.
func (r *Recorder) Save(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshotOf(r.saves[backend])
}

// SaveRetries returns how many save retries were recorded for a backend.
func (r *Recorder) SaveRetries(backend string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retries[backend]
}

func record(m map[string]*opStats, key string, duration time.Duration, err error) {
	stats, ok := m[key]
	if !ok {
		stats = &opStats{}
		m[key] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
}

func snapshotOf(stats *opStats) Snapshot {
	if stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}
