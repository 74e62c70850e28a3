package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls             int
	errors            int
	acceptedHits      int
	lastStatus        int
	lastAcceptedDelay time.Duration
	lastCallLatency   time.Duration
}

type updateStats struct {
	cycles       int
	errors       int
	lastCount    int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about collection fetches and list updates.
// When telemetry is enabled the same events are mirrored into OpenTelemetry instruments.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	updates updateStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for one upstream request and stores the last observed latency.
// status is zero when the request failed before a response arrived.
func (r *Recorder) RecordProviderAttempt(provider string, status int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastStatus = status
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, status, duration, err)
	}
}

// RecordAccepted tracks an upstream "still preparing" response and the wait applied before retrying.
func (r *Recorder) RecordAccepted(provider string, delay time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.acceptedHits++
	if delay > 0 {
		stats.lastAcceptedDelay = delay
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAccepted(provider, delay)
	}
}

// RecordUpdateCycle tracks one fetch-filter-save cycle.
func (r *Recorder) RecordUpdateCycle(duration time.Duration, count int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.updates.cycles++
	r.updates.lastDuration = duration
	if err != nil {
		r.updates.errors++
	} else {
		r.updates.lastCount = count
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpdate(duration, count, err)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// AcceptedHits returns how many times the provider answered 202.
func (r *Recorder) AcceptedHits(provider string) int {
	return r.Snapshot(provider).AcceptedHits
}

// LastAcceptedDelay returns the most recent wait applied after a 202.
func (r *Recorder) LastAcceptedDelay(provider string) time.Duration {
	return r.Snapshot(provider).LastAcceptedDelay
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls             int
	Errors            int
	AcceptedHits      int
	LastStatus        int
	LastAcceptedDelay time.Duration
	LastCallLatency   time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:             stats.calls,
		Errors:            stats.errors,
		AcceptedHits:      stats.acceptedHits,
		LastStatus:        stats.lastStatus,
		LastAcceptedDelay: stats.lastAcceptedDelay,
		LastCallLatency:   stats.lastCallLatency,
	}
}

// UpdateSnapshot is a copy of the update cycle stats.
type UpdateSnapshot struct {
	Cycles       int
	Errors       int
	LastCount    int
	LastDuration time.Duration
}

// Updates returns a copy of the update cycle stats.
func (r *Recorder) Updates() UpdateSnapshot {
	if r == nil {
		return UpdateSnapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return UpdateSnapshot{
		Cycles:       r.updates.cycles,
		Errors:       r.updates.errors,
		LastCount:    r.updates.lastCount,
		LastDuration: r.updates.lastDuration,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
