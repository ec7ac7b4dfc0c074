package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okVerifier() *verifierMock {
	name := "Ada"
	return &verifierMock{
		VerifyCodeFunc: func(_ context.Context, code string) (*auth.OAuthIdentity, error) {
			return &auth.OAuthIdentity{Email: "ada@example.com", Name: &name, ProviderID: "g-" + code}, nil
		},
	}
}

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	return Event{}
}

func TestStore_LoadingUntilResolved(t *testing.T) {
	s := NewStore(testLogger(), nil)
	assert.Equal(t, StatusLoading, s.State().Status)

	s.Resolve(nil)
	assert.Equal(t, StatusSignedOut, s.State().Status)

	s.Resolve(&domain.Identity{Subject: "x"})
	assert.Equal(t, StatusSignedOut, s.State().Status, "second resolve is ignored")
}

func TestStore_SignInAndOut(t *testing.T) {
	v := okVerifier()
	s := NewStore(testLogger(), v)
	s.Resolve(nil)

	id, err := s.SignIn(context.Background(), " code-1 ")
	require.NoError(t, err)
	assert.Equal(t, "g-code-1", id.Subject)
	assert.True(t, s.SignedIn())
	assert.Equal(t, "Ada", s.Identity().DisplayName)
	require.Len(t, v.VerifyCodeCalls(), 1)
	assert.Equal(t, "code-1", v.VerifyCodeCalls()[0].Code)

	st := s.State()
	assert.Equal(t, StatusSignedIn, st.Status)
	assert.Empty(t, st.Error)

	s.SignOut()
	assert.False(t, s.SignedIn())
	assert.Nil(t, s.Identity())
	assert.Equal(t, StatusSignedOut, s.State().Status)
}

func TestStore_SignInFailure(t *testing.T) {
	v := &verifierMock{
		VerifyCodeFunc: func(context.Context, string) (*auth.OAuthIdentity, error) {
			return nil, errors.New("oauth: invalid or expired code")
		},
	}
	s := NewStore(testLogger(), v)
	s.Resolve(nil)

	_, err := s.SignIn(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrSignInFailed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	st := s.State()
	assert.Equal(t, StatusSignedOut, st.Status)
	assert.Equal(t, MsgSignInFailed, st.Error)

	// A later success clears the inline error.
	v.VerifyCodeFunc = okVerifier().VerifyCodeFunc
	_, err = s.SignIn(context.Background(), "good")
	require.NoError(t, err)
	assert.Empty(t, s.State().Error)
}

func TestStore_SignInNotConfigured(t *testing.T) {
	s := NewStore(testLogger(), nil)

	_, err := s.SignIn(context.Background(), "code")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Equal(t, MsgSignInFailed, s.State().Error)
	assert.False(t, s.SignedIn())
}

func TestStore_SignInEmptyCode(t *testing.T) {
	v := okVerifier()
	s := NewStore(testLogger(), v)

	_, err := s.SignIn(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, v.VerifyCodeCalls())
}

func TestStore_SubscribeDeliversCurrentThenChanges(t *testing.T) {
	s := NewStore(testLogger(), okVerifier())
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)
	assert.Equal(t, StatusLoading, recv(t, ch).Status)

	s.Resolve(nil)
	assert.Equal(t, StatusSignedOut, recv(t, ch).Status)

	_, err := s.SignIn(context.Background(), "c")
	require.NoError(t, err)
	ev := recv(t, ch)
	assert.Equal(t, StatusSignedIn, ev.Status)
	require.NotNil(t, ev.Identity)
	assert.Equal(t, "ada@example.com", ev.Identity.Email)

	s.SignOut()
	assert.Equal(t, StatusSignedOut, recv(t, ch).Status)
}

func TestStore_SubscribeEndsOnCancel(t *testing.T) {
	s := NewStore(testLogger(), nil)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	recv(t, ch)
	assert.Equal(t, 1, s.Subscribers())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, s.Subscribers())
}

func TestStore_CloseEndsSubscriptions(t *testing.T) {
	s := NewStore(testLogger(), nil)

	ch := s.Subscribe(context.Background())
	recv(t, ch)
	s.Close()
	s.Close()

	require.Eventually(t, func() bool { return s.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	for range ch {
	}

	late := s.Subscribe(context.Background())
	_, ok := <-late
	assert.False(t, ok, "subscribing to a closed store yields a closed channel")
}

func TestStore_SlowSubscriberKeepsLatest(t *testing.T) {
	s := NewStore(testLogger(), nil)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	s.Resolve(nil)
	for range subscriberBuffer * 3 {
		s.SignOut()
	}
	s.Resolve(nil)
	_, _ = s.SignIn(context.Background(), "x")

	var last Event
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, MsgSignInFailed, last.Error)
}
