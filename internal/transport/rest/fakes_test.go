package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
)

type completerFake struct {
	mu       sync.Mutex
	prompts  []string
	contexts []string
	reply    string
	err      error
}

func (f *completerFake) Complete(_ context.Context, prompt, labContext string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.contexts = append(f.contexts, labContext)
	return f.reply, f.err
}

func (f *completerFake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *completerFake) Contexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.contexts...)
}

type verifierFake struct {
	identity *auth.OAuthIdentity
	err      error
}

func (f *verifierFake) VerifyCode(_ context.Context, _ string) (*auth.OAuthIdentity, error) {
	return f.identity, f.err
}
