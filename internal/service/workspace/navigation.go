package workspace

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// ErrNotInLesson is returned by lesson-path operations outside lesson focus.
var ErrNotInLesson = fmt.Errorf("%w: the lesson path is not open", domain.ErrConflict)

// SelectTab switches the dashboard tab. It is ignored during a focus flow.
func (w *Workspace) SelectTab(tab domain.Tab) (bool, error) {
	if err := w.lock(); err != nil {
		return false, err
	}
	defer w.mu.Unlock()
	return w.nav.SelectTab(tab)
}

// EnterLessonFocus opens the lesson path at its first lesson.
func (w *Workspace) EnterLessonFocus() error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	w.nav.EnterLessonFocus()
	w.prog.Enter()
	return nil
}

// EnterProjectFocus opens the detail view of a gallery project.
func (w *Workspace) EnterProjectFocus(projectID string) error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	if _, ok := w.content.Project(projectID); !ok {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	w.nav.EnterProjectFocus(projectID)
	return nil
}

// ExitFocus returns to the tab shown before the focus flow.
func (w *Workspace) ExitFocus() error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	w.nav.ExitFocus()
	return nil
}

// AdvanceLesson moves to the next lesson; a no-op at the last one.
func (w *Workspace) AdvanceLesson() (bool, error) {
	if err := w.lock(); err != nil {
		return false, err
	}
	defer w.mu.Unlock()
	if w.nav.Focus() != domain.FocusLesson {
		return false, ErrNotInLesson
	}
	return w.prog.Advance(w.content.LessonCount()), nil
}

// StepMove selects how the step cursor moves.
type StepMove int

const (
	StepSelect StepMove = iota
	StepNext
	StepPrev
)

// MoveLessonStep moves the step cursor of the current lesson.
func (w *Workspace) MoveLessonStep(move StepMove, index int) error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	if w.nav.Focus() != domain.FocusLesson {
		return ErrNotInLesson
	}
	lesson, ok := w.content.LessonAt(w.prog.Index())
	if !ok {
		return fmt.Errorf("lesson %d: %w", w.prog.Index(), domain.ErrNotFound)
	}
	n := len(lesson.Steps)
	switch move {
	case StepNext:
		w.prog.NextStep(n)
	case StepPrev:
		w.prog.PrevStep()
	default:
		if !w.prog.SelectStep(index, n) {
			return domain.NewValidationError("index", fmt.Sprintf("step %d out of range [0,%d)", index, n))
		}
	}
	return nil
}

// MoveProjectStep moves the step cursor of the focused project.
func (w *Workspace) MoveProjectStep(move StepMove, index int) error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	if w.nav.Focus() != domain.FocusProject {
		return fmt.Errorf("%w: no project is open", domain.ErrConflict)
	}
	p, ok := w.content.Project(w.nav.FocusedProject())
	if !ok {
		return fmt.Errorf("project %s: %w", w.nav.FocusedProject(), domain.ErrNotFound)
	}
	n := len(p.Steps)
	cur := w.nav.ProjectCursor()
	switch move {
	case StepNext:
		cur.Next(n)
	case StepPrev:
		cur.Prev()
	default:
		if !cur.Select(index, n) {
			return domain.NewValidationError("index", fmt.Sprintf("step %d out of range [0,%d)", index, n))
		}
	}
	return nil
}

// RemoveLessonStep deletes a step from a lesson, looked up by id. If that
// lesson is the one on screen the step cursor is repositioned. Misses are
// silent and report false.
func (w *Workspace) RemoveLessonStep(lessonID string, idx int) (bool, error) {
	if err := w.lock(); err != nil {
		return false, err
	}
	defer w.mu.Unlock()

	oldLen, removed := w.content.RemoveLessonStep(lessonID, idx)
	if !removed {
		return false, nil
	}
	if w.nav.Focus() == domain.FocusLesson {
		if cur, ok := w.content.LessonAt(w.prog.Index()); ok && cur.ID == lessonID {
			w.prog.StepRemoved(idx, oldLen)
		}
	}
	w.log.Info("lesson step removed", slog.String("lesson_id", lessonID), slog.Int("index", idx))
	return true, nil
}

// RemoveProjectStep deletes a step from a gallery project, looked up by id.
// The detail view's cursor follows when that project is open.
func (w *Workspace) RemoveProjectStep(projectID string, idx int) (bool, error) {
	if err := w.lock(); err != nil {
		return false, err
	}
	defer w.mu.Unlock()

	oldLen, removed := w.content.RemoveProjectStep(projectID, idx)
	if !removed {
		return false, nil
	}
	if w.nav.Focus() == domain.FocusProject && w.nav.FocusedProject() == projectID {
		w.nav.ProjectCursor().AfterRemoval(idx, oldLen)
	}
	w.log.Info("project step removed", slog.String("project_id", projectID), slog.Int("index", idx))
	return true, nil
}
