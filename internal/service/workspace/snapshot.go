package workspace

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/service/session"
)

// LessonProgress describes the lesson path while it is open.
type LessonProgress struct {
	Index    int
	Count    int
	Step     int
	Terminal bool
	// Percent of the path completed, counting the current lesson.
	Percent int
	Lesson  domain.Lesson
}

// Snapshot is a consistent view of everything a client renders.
type Snapshot struct {
	ID             uuid.UUID
	Tab            domain.Tab
	Focus          domain.FocusMode
	View           domain.View
	FocusedProject *domain.Project
	ProjectStep    int
	Lesson         *LessonProgress
	Publishing     bool
	DraftOpen      bool
	ChatPending    bool
	Session        session.Event
}

// Snapshot captures the workspace state under one lock acquisition.
func (w *Workspace) Snapshot() (Snapshot, error) {
	if err := w.lock(); err != nil {
		return Snapshot{}, err
	}
	defer w.mu.Unlock()

	s := Snapshot{
		ID:          w.id,
		Tab:         w.nav.Tab(),
		Focus:       w.nav.Focus(),
		View:        w.nav.View(),
		Publishing:  w.publishing,
		DraftOpen:   w.draft.IsOpen(),
		ChatPending: w.chat.Pending(),
		Session:     w.SessionState(),
	}

	switch s.Focus {
	case domain.FocusProject:
		if p, ok := w.content.Project(w.nav.FocusedProject()); ok {
			s.FocusedProject = &p
			s.ProjectStep = w.nav.ProjectStep()
		}
	case domain.FocusLesson:
		n := w.content.LessonCount()
		if l, ok := w.content.LessonAt(w.prog.Index()); ok {
			s.Lesson = &LessonProgress{
				Index:    w.prog.Index(),
				Count:    n,
				Step:     w.prog.Step(),
				Terminal: w.prog.IsTerminal(n),
				Percent:  w.prog.Progress(n),
				Lesson:   l,
			}
		}
	}
	return s, nil
}
