package workspace

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

const publishKey = "publish"

// PublishResult is the outcome of publishing the completed lesson path.
type PublishResult struct {
	Project   domain.Project
	Published bool
}

// PublishLesson turns the final lesson into a gallery project after the
// publish delay. Callers arriving while a publish is in flight join it and
// receive the same result. Cancelling ctx only stops the caller from waiting;
// the publish itself completes.
func (w *Workspace) PublishLesson(ctx context.Context) (PublishResult, error) {
	if err := w.lock(); err != nil {
		return PublishResult{}, err
	}
	if w.nav.Focus() != domain.FocusLesson {
		w.mu.Unlock()
		return PublishResult{}, ErrNotInLesson
	}
	if err := w.prog.CheckPublish(w.content.LessonCount()); err != nil {
		w.mu.Unlock()
		return PublishResult{}, err
	}
	lesson, ok := w.content.LessonAt(w.prog.Index())
	if !ok {
		w.mu.Unlock()
		return PublishResult{}, nil
	}
	lessonID := lesson.ID
	w.publishing = true
	w.mu.Unlock()

	ch := w.publish.DoChan(publishKey, func() (any, error) {
		return w.runPublish(lessonID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return PublishResult{}, res.Err
		}
		return res.Val.(PublishResult), nil
	case <-ctx.Done():
		return PublishResult{}, ctx.Err()
	}
}

func (w *Workspace) runPublish(lessonID string) (PublishResult, error) {
	timer := time.NewTimer(w.opts.PublishDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-w.ctx.Done():
		return PublishResult{}, ErrClosed
	}

	if err := w.lock(); err != nil {
		return PublishResult{}, err
	}
	defer w.mu.Unlock()
	if !w.publishing {
		// A previous run already published; this caller arrived just after it.
		return PublishResult{}, nil
	}
	w.publishing = false

	lesson, ok := w.content.Lesson(lessonID)
	if !ok {
		w.log.Warn("publish skipped: lesson disappeared", slog.String("lesson_id", lessonID))
		return PublishResult{}, nil
	}

	p := domain.ProjectFromLesson(w.nextProjectID("p-lesson"), lesson, w.session.Identity(), w.deps.Now())
	if err := w.content.AddProject(p); err != nil {
		return PublishResult{}, err
	}
	w.nav.Show(domain.TabProjectGallery)

	w.log.Info("lesson published", slog.String("lesson_id", lessonID), slog.String("project_id", p.ID))
	return PublishResult{Project: p, Published: true}, nil
}
