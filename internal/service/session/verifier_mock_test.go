package session

import (
	"context"
	"sync"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
)

var _ verifier = &verifierMock{}

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

func (mock *verifierMock) VerifyCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockVerifyCode.RLock()
	calls := mock.calls.VerifyCode
	mock.lockVerifyCode.RUnlock()
	return calls
}
