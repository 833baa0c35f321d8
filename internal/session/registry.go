// Package session hosts drill controllers for concurrent clients, keyed by
// an opaque id, and expires the ones that go idle.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/squaredrill/internal/drill"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrClosed   = errors.New("registry closed")
)

// PublishFunc receives every snapshot a hosted controller emits.
type PublishFunc func(id string, snap drill.Snapshot)

// RemoveFunc is told about every session that leaves the registry, whether
// deleted, expired or dropped on Close.
type RemoveFunc func(id string)

type Options struct {
	Settings drill.Settings
	TTL      time.Duration
	Publish  PublishFunc
	OnRemove RemoveFunc

	// Scheduler overrides the countdown scheduler of new controllers.
	Scheduler drill.Scheduler
	Now       func() time.Time
}

type Registry struct {
	opts   Options
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*drill.Controller
	closed   bool
}

func NewRegistry(logger *slog.Logger, opts Options) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		opts:     opts,
		logger:   logger,
		sessions: make(map[string]*drill.Controller),
	}
}

// Create registers a new idle controller in the given mode.
func (r *Registry) Create(mode drill.Mode) (string, *drill.Controller, error) {
	id := uuid.NewString()

	opts := []drill.Option{drill.WithMode(mode), drill.WithClock(r.opts.Now)}
	if r.opts.Scheduler != nil {
		opts = append(opts, drill.WithScheduler(r.opts.Scheduler))
	}
	if publish := r.opts.Publish; publish != nil {
		opts = append(opts, drill.WithListener(func(s drill.Snapshot) { publish(id, s) }))
	}
	c := drill.NewController(r.opts.Settings, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		c.Close()
		return "", nil, ErrClosed
	}
	r.sessions[id] = c

	r.logger.Info("session created", "session_id", id, "mode", mode.String())
	return id, c, nil
}

func (r *Registry) Get(id string) (*drill.Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Delete removes the session and cancels its countdown.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	r.release(id, c)
	r.logger.Info("session deleted", "session_id", id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and reports how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.opts.Now().Add(-r.opts.TTL)

	r.mu.Lock()
	expired := make(map[string]*drill.Controller)
	for id, c := range r.sessions {
		if c.LastActive().Before(cutoff) {
			expired[id] = c
			delete(r.sessions, id)
			r.logger.Debug("session expired", "session_id", id)
		}
	}
	r.mu.Unlock()

	for id, c := range expired {
		r.release(id, c)
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("expired idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}

// Close cancels every countdown and rejects further Create calls.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.closed = true
	dropped := r.sessions
	r.sessions = make(map[string]*drill.Controller)
	r.mu.Unlock()

	for id, c := range dropped {
		r.release(id, c)
	}
	return nil
}

// release stops a removed session's countdown and notifies OnRemove.
// Callers must not hold r.mu.
func (r *Registry) release(id string, c *drill.Controller) {
	c.Close()
	if r.opts.OnRemove != nil {
		r.opts.OnRemove(id)
	}
}

// Check implements health.Checker.
func (r *Registry) Check(_ context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}
