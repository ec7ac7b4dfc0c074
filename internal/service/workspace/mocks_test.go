package workspace

import (
	"context"
	"sync"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
)

var (
	_ completer   = &completerMock{}
	_ imageProber = &imageProberMock{}
	_ verifier    = &verifierMock{}
)

type completerMock struct {
	CompleteFunc func(ctx context.Context, prompt, context string) (string, error)

	calls struct {
		Complete []struct {
			Ctx     context.Context
			Prompt  string
			Context string
		}
	}
	lockComplete sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, prompt, labContext string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Prompt  string
		Context string
	}{Ctx: ctx, Prompt: prompt, Context: labContext}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, prompt, labContext)
}

func (mock *completerMock) CompleteCalls() []struct {
	Ctx     context.Context
	Prompt  string
	Context string
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}

type imageProberMock struct {
	ProbeFunc func(ctx context.Context, url string) (bool, error)

	calls struct {
		Probe []struct {
			Ctx context.Context
			URL string
		}
	}
	lockProbe sync.RWMutex
}

func (mock *imageProberMock) Probe(ctx context.Context, url string) (bool, error) {
	if mock.ProbeFunc == nil {
		panic("imageProberMock.ProbeFunc: method is nil but imageProber.Probe was just called")
	}
	callInfo := struct {
		Ctx context.Context
		URL string
	}{Ctx: ctx, URL: url}
	mock.lockProbe.Lock()
	mock.calls.Probe = append(mock.calls.Probe, callInfo)
	mock.lockProbe.Unlock()
	return mock.ProbeFunc(ctx, url)
}

func (mock *imageProberMock) ProbeCalls() []struct {
	Ctx context.Context
	URL string
} {
	mock.lockProbe.RLock()
	calls := mock.calls.Probe
	mock.lockProbe.RUnlock()
	return calls
}

type verifierMock struct {
	VerifyCodeFunc func(ctx context.Context, code string) (*auth.OAuthIdentity, error)

	calls struct {
		VerifyCode []struct {
			Ctx  context.Context
			Code string
		}
	}
	lockVerifyCode sync.RWMutex
}

func (mock *verifierMock) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	if mock.VerifyCodeFunc == nil {
		panic("verifierMock.VerifyCodeFunc: method is nil but verifier.VerifyCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockVerifyCode.Lock()
	mock.calls.VerifyCode = append(mock.calls.VerifyCode, callInfo)
	mock.lockVerifyCode.Unlock()
	return mock.VerifyCodeFunc(ctx, code)
}
