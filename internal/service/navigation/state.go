// Package navigation tracks which dashboard tab is shown and whether a
// full-view focus flow (lesson path or project detail) replaces it.
package navigation

import (
	"fmt"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// State is not safe for concurrent use; the owning workspace serializes it.
type State struct {
	tab     domain.Tab
	focus   domain.FocusMode
	project string
	// Step shown in the project detail view.
	projectStep domain.StepCursor
}

// New returns navigation positioned on the Lab Layout tab.
func New() *State {
	return &State{tab: domain.TabLabLayout, focus: domain.FocusNone}
}

func (s *State) Tab() domain.Tab         { return s.tab }
func (s *State) Focus() domain.FocusMode { return s.focus }
func (s *State) FocusedProject() string  { return s.project }
func (s *State) ProjectStep() int        { return s.projectStep.Active }
func (s *State) InFocus() bool           { return s.focus != domain.FocusNone }

// ProjectCursor exposes the detail view's step cursor for repositioning.
func (s *State) ProjectCursor() *domain.StepCursor { return &s.projectStep }

// SelectTab switches the active tab. While a focus mode is active the call is
// ignored and reports false: the tab bar is hidden behind the focus view.
func (s *State) SelectTab(tab domain.Tab) (bool, error) {
	if !tab.IsValid() {
		return false, domain.NewValidationError("tab", fmt.Sprintf("unknown tab %q", tab))
	}
	if s.InFocus() {
		return false, nil
	}
	s.tab = tab
	return true, nil
}

// EnterLessonFocus replaces the dashboard with the lesson path.
func (s *State) EnterLessonFocus() {
	s.focus = domain.FocusLesson
	s.project = ""
	s.projectStep.Reset()
}

// EnterProjectFocus replaces the dashboard with the detail view of projectID.
func (s *State) EnterProjectFocus(projectID string) {
	s.focus = domain.FocusProject
	s.project = projectID
	s.projectStep.Reset()
}

// ExitFocus returns to the tab that was active before the focus was entered.
func (s *State) ExitFocus() {
	s.focus = domain.FocusNone
	s.project = ""
	s.projectStep.Reset()
}

// Show leaves any focus and jumps to tab. Used when a flow completes and
// lands the user on its result.
func (s *State) Show(tab domain.Tab) {
	s.ExitFocus()
	s.tab = tab
}

// View derives the screen currently rendered.
func (s *State) View() domain.View {
	switch s.focus {
	case domain.FocusLesson:
		return domain.ViewLessonPath
	case domain.FocusProject:
		return domain.ViewProjectDetail
	}
	return domain.ViewForTab(s.tab)
}
