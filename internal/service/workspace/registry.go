package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// ErrCapacity is returned by Create when the registry is full.
var ErrCapacity = fmt.Errorf("%w: too many open workspaces", domain.ErrConflict)

// RegistryConfig bounds the number and lifetime of workspaces.
type RegistryConfig struct {
	IdleTTL         time.Duration
	JanitorInterval time.Duration
	// MaxWorkspaces of zero means unlimited.
	MaxWorkspaces int
}

// Registry owns the open workspaces of the process and evicts idle ones.
type Registry struct {
	log  *slog.Logger
	deps Deps
	opts Options
	cfg  RegistryConfig

	mu    sync.RWMutex
	items map[uuid.UUID]*Workspace
}

func NewRegistry(log *slog.Logger, deps Deps, opts Options, cfg RegistryConfig) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = time.Minute
	}
	return &Registry{
		log:   log.With("service", "workspace"),
		deps:  deps,
		opts:  opts,
		cfg:   cfg,
		items: make(map[uuid.UUID]*Workspace),
	}
}

// Create opens a new workspace seeded from the catalog.
func (r *Registry) Create() (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg.MaxWorkspaces > 0 && len(r.items) >= r.cfg.MaxWorkspaces {
		return nil, ErrCapacity
	}
	w := New(r.log, r.deps, r.opts)
	r.items[w.ID()] = w
	r.log.Info("workspace created", slog.String("workspace_id", w.ID().String()), slog.Int("open", len(r.items)))
	return w, nil
}

// Get returns an open workspace and records activity on it.
func (r *Registry) Get(id uuid.UUID) (*Workspace, error) {
	r.mu.RLock()
	w, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}
	w.Touch()
	return w, nil
}

// Remove closes and forgets a workspace. Unknown ids are ignored.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	w, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()
	if ok {
		w.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Sweep closes every workspace idle since before now minus the idle TTL and
// returns how many were evicted.
func (r *Registry) Sweep(now time.Time) int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var expired []*Workspace
	for id, w := range r.items {
		if w.LastSeen().Before(cutoff) {
			expired = append(expired, w)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, w := range expired {
		w.Close()
		r.log.Info("idle workspace evicted", slog.String("workspace_id", w.ID().String()))
	}
	return len(expired)
}

// Run evicts idle workspaces every janitor interval until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.JanitorInterval)
	defer ticker.Stop()

	r.log.Info("workspace janitor started", slog.Duration("interval", r.cfg.JanitorInterval), slog.Duration("idle_ttl", r.cfg.IdleTTL))
	for {
		select {
		case <-ctx.Done():
			r.log.Info("workspace janitor stopped")
			return nil
		case <-ticker.C:
			if n := r.Sweep(r.deps.Now()); n > 0 {
				r.log.Debug("sweep finished", slog.Int("evicted", n))
			}
		}
	}
}

// Close closes every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	items := r.items
	r.items = make(map[uuid.UUID]*Workspace)
	r.mu.Unlock()

	for _, w := range items {
		w.Close()
	}
}
