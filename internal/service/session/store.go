// Package session is the per-workspace authentication store. It holds the
// signed-in identity, performs Google sign-in through a verifier and fans
// auth-state changes out to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// MsgSignInFailed is the inline error shown after a failed sign-in.
const MsgSignInFailed = "Google sign-in failed. Please check your credentials."

// ErrSignInFailed is returned by SignIn when the provider rejects the code.
var ErrSignInFailed = fmt.Errorf("%w: %s", domain.ErrUnauthorized, MsgSignInFailed)

const subscriberBuffer = 8

type verifier interface {
	VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

// Status is the coarse auth state a client renders.
type Status string

const (
	StatusLoading   Status = "loading"
	StatusSignedOut Status = "signed_out"
	StatusSignedIn  Status = "signed_in"
)

// Event is a snapshot of the auth state at one moment.
type Event struct {
	Status   Status
	Identity *domain.Identity
	Error    string
	At       time.Time
}

// Store is safe for concurrent use.
type Store struct {
	verifier verifier
	log      *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	identity *domain.Identity
	resolved bool
	lastErr  string
	subs     map[uint64]chan Event
	nextSub  uint64
	closed   bool
	done     chan struct{}
}

// NewStore creates a store in the loading state. v may be nil when Google
// sign-in is not configured.
func NewStore(log *slog.Logger, v verifier) *Store {
	return &Store{
		verifier: v,
		log:      log.With("service", "session"),
		now:      time.Now,
		subs:     make(map[uint64]chan Event),
		done:     make(chan struct{}),
	}
}

// Resolve publishes the first auth state. Later calls are no-ops.
func (s *Store) Resolve(identity *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved {
		return
	}
	s.resolved = true
	s.identity = copyIdentity(identity)
	s.publishLocked()
}

// State returns the current auth state.
func (s *Store) State() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventLocked()
}

// Identity returns a copy of the signed-in identity, or nil.
func (s *Store) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIdentity(s.identity)
}

// SignedIn reports whether an identity is present.
func (s *Store) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// SignIn exchanges a Google authorization code for an identity. The verifier
// runs without holding the store lock. On failure the inline error is set and
// ErrSignInFailed (or ErrNotConfigured) is returned.
func (s *Store) SignIn(ctx context.Context, code string) (*domain.Identity, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}

	if s.verifier == nil {
		s.fail("google sign-in is not configured")
		return nil, fmt.Errorf("google sign-in: %w", domain.ErrNotConfigured)
	}

	oauthID, err := s.verifier.VerifyCode(ctx, code)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.fail(err.Error())
		return nil, ErrSignInFailed
	}

	identity := oauthID.ToDomain()

	s.mu.Lock()
	s.resolved = true
	s.identity = identity
	s.lastErr = ""
	s.publishLocked()
	s.mu.Unlock()

	s.log.InfoContext(ctx, "signed in", slog.String("subject", identity.Subject))
	return copyIdentity(identity), nil
}

// SignOut clears the identity.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = true
	s.identity = nil
	s.lastErr = ""
	s.publishLocked()
}

func (s *Store) fail(reason string) {
	s.log.Warn("google sign-in failed", slog.String("reason", reason))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = true
	s.lastErr = MsgSignInFailed
	s.publishLocked()
}

// Subscribe streams auth events until ctx is cancelled or the store is
// closed. The current state is delivered first. A slow subscriber loses
// intermediate events but always receives the latest one.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.eventLocked()
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.unsubscribe(id)
	}()

	return ch
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close ends every subscription.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) eventLocked() Event {
	ev := Event{Status: StatusLoading, Error: s.lastErr, At: s.now()}
	switch {
	case !s.resolved:
	case s.identity != nil:
		ev.Status = StatusSignedIn
		ev.Identity = copyIdentity(s.identity)
	default:
		ev.Status = StatusSignedOut
	}
	return ev
}

func (s *Store) publishLocked() {
	ev := s.eventLocked()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Full buffer: drop the oldest event to make room for the newest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

func copyIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
