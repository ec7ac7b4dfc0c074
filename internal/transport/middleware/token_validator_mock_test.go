package middleware

import (
	"sync"

	"github.com/google/uuid"
)

var _ tokenValidator = &tokenValidatorMock{}

type tokenValidatorMock struct {
	ValidateWorkspaceTokenFunc func(token string) (uuid.UUID, error)

	calls struct {
		ValidateWorkspaceToken []struct {
			Token string
		}
	}
	lockValidateWorkspaceToken sync.RWMutex
}

func (mock *tokenValidatorMock) ValidateWorkspaceToken(token string) (uuid.UUID, error) {
	if mock.ValidateWorkspaceTokenFunc == nil {
		panic("tokenValidatorMock.ValidateWorkspaceTokenFunc: method is nil but tokenValidator.ValidateWorkspaceToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidateWorkspaceToken.Lock()
	mock.calls.ValidateWorkspaceToken = append(mock.calls.ValidateWorkspaceToken, callInfo)
	mock.lockValidateWorkspaceToken.Unlock()
	return mock.ValidateWorkspaceTokenFunc(token)
}

func (mock *tokenValidatorMock) ValidateWorkspaceTokenCalls() []struct {
	Token string
} {
	mock.lockValidateWorkspaceToken.RLock()
	calls := mock.calls.ValidateWorkspaceToken
	mock.lockValidateWorkspaceToken.RUnlock()
	return calls
}
