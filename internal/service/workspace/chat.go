package workspace

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/service/mentor"
)

// ChatMessages returns the mentor conversation, oldest first.
func (w *Workspace) ChatMessages() ([]domain.ChatMessage, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.chat.Messages(), nil
}

// SendChat posts a learner message and waits for the mentor's reply. Blank
// input is ignored and reports false. A second message while a reply is
// outstanding fails with mentor.ErrPending. Completion failures become a
// friendly assistant message rather than an error.
func (w *Workspace) SendChat(ctx context.Context, text string) (domain.ChatMessage, bool, error) {
	if err := w.lock(); err != nil {
		return domain.ChatMessage{}, false, err
	}
	labContext := mentor.Context(w.content.LessonTitles(), w.nav.View())
	req, ok, err := w.chat.Begin(text, labContext, w.deps.Now())
	w.mu.Unlock()
	if err != nil || !ok {
		return domain.ChatMessage{}, false, err
	}

	// The reply is recorded even if the caller goes away.
	reply, cerr := w.complete(context.WithoutCancel(ctx), req.Prompt, req.Context)
	if cerr != nil {
		w.log.WarnContext(ctx, "mentor completion failed", slog.String("error", cerr.Error()))
	}

	if err := w.lock(); err != nil {
		return domain.ChatMessage{}, false, err
	}
	defer w.mu.Unlock()
	return w.chat.Finish(reply, cerr, w.deps.Now()), true, nil
}
