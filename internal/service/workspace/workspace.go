// Package workspace coordinates the state of one browser session: navigation,
// lesson progression, content, the project draft, the mentor chat and the
// auth store. Every mutation runs under the workspace lock; calls to outside
// collaborators run without it and re-acquire it to apply their result.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/seed"
	"github.com/heartmarshall/makerlab-backend/internal/service/content"
	"github.com/heartmarshall/makerlab-backend/internal/service/curation"
	"github.com/heartmarshall/makerlab-backend/internal/service/mentor"
	"github.com/heartmarshall/makerlab-backend/internal/service/navigation"
	"github.com/heartmarshall/makerlab-backend/internal/service/progression"
	"github.com/heartmarshall/makerlab-backend/internal/service/session"
)

type completer interface {
	Complete(ctx context.Context, prompt, context string) (string, error)
}

type imageProber interface {
	Probe(ctx context.Context, url string) (bool, error)
}

type verifier interface {
	VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

// ErrClosed is returned by operations on an evicted workspace.
var ErrClosed = fmt.Errorf("workspace closed: %w", domain.ErrNotFound)

// DefaultPublishDelay is the latency of publishing a completed lesson.
const DefaultPublishDelay = 1200 * time.Millisecond

// Deps are the collaborators shared by all workspaces.
type Deps struct {
	Catalog *seed.Catalog
	Mentor  completer
	Images  imageProber
	// Verifier may be nil when Google sign-in is not configured.
	Verifier verifier
	Now      func() time.Time
}

// Options tune workspace behaviour.
type Options struct {
	PublishDelay time.Duration
}

// Workspace is safe for concurrent use.
type Workspace struct {
	id   uuid.UUID
	deps Deps
	opts Options
	log  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	bg     sync.WaitGroup

	lastSeen atomic.Int64
	publish  singleflight.Group

	session *session.Store

	mu         sync.Mutex
	closed     bool
	nav        *navigation.State
	prog       *progression.Engine
	content    *content.Collections
	draft      *curation.Flow
	chat       *mentor.Chat
	publishing bool
	lastIDms   int64
}

// New creates a workspace seeded from deps.Catalog.
func New(log *slog.Logger, deps Deps, opts Options) *Workspace {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if opts.PublishDelay <= 0 {
		opts.PublishDelay = DefaultPublishDelay
	}

	id := uuid.New()
	log = log.With("workspace_id", id.String())
	ctx, cancel := context.WithCancel(context.Background())

	var v verifier
	if deps.Verifier != nil {
		v = deps.Verifier
	}

	w := &Workspace{
		id:      id,
		deps:    deps,
		opts:    opts,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		session: session.NewStore(log, v),
		nav:     navigation.New(),
		prog:    progression.New(),
		content: content.New(log, deps.Catalog),
		draft:   curation.NewFlow(),
		chat:    mentor.NewChat(deps.Now()),
	}
	w.Touch()
	return w
}

func (w *Workspace) ID() uuid.UUID { return w.id }

// Session returns the workspace's auth store.
func (w *Workspace) Session() *session.Store { return w.session }

// A new workspace has not looked at its auth state yet and reports loading.
// The first read resolves it (signed out, as nothing is persisted); an event
// subscriber that arrives first sees loading followed by the resolved state.

// SessionState returns the auth state, resolving it on first use.
func (w *Workspace) SessionState() session.Event {
	w.session.Resolve(nil)
	return w.session.State()
}

// SubscribeSession streams auth events until ctx is cancelled or the
// workspace closes.
func (w *Workspace) SubscribeSession(ctx context.Context) <-chan session.Event {
	ch := w.session.Subscribe(ctx)
	w.session.Resolve(nil)
	return ch
}

// Touch records activity for idle eviction.
func (w *Workspace) Touch() { w.lastSeen.Store(w.deps.Now().UnixNano()) }

// LastSeen returns the time of the last recorded activity.
func (w *Workspace) LastSeen() time.Time { return time.Unix(0, w.lastSeen.Load()) }

// Close stops background work and ends auth subscriptions. It blocks until
// in-flight background probes have returned.
func (w *Workspace) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	w.session.Close()
	w.bg.Wait()
	w.log.Debug("workspace closed")
}

// lock acquires the workspace lock unless the workspace is closed.
func (w *Workspace) lock() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	return nil
}

// nextProjectID derives a project id from the current time, strictly
// increasing within the workspace. Caller holds the lock.
func (w *Workspace) nextProjectID(prefix string) string {
	ms := w.deps.Now().UnixMilli()
	if ms <= w.lastIDms {
		ms = w.lastIDms + 1
	}
	w.lastIDms = ms
	return fmt.Sprintf("%s-%d", prefix, ms)
}

func (w *Workspace) complete(ctx context.Context, prompt, labContext string) (string, error) {
	if w.deps.Mentor == nil {
		return "", domain.ErrNotConfigured
	}
	return w.deps.Mentor.Complete(ctx, prompt, labContext)
}
