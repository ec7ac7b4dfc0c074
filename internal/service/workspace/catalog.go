package workspace

import (
	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// Lessons returns the lesson path.
func (w *Workspace) Lessons() ([]domain.Lesson, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.content.Lessons(), nil
}

// Project returns one gallery project.
func (w *Workspace) Project(id string) (domain.Project, bool, error) {
	if err := w.lock(); err != nil {
		return domain.Project{}, false, err
	}
	defer w.mu.Unlock()
	p, ok := w.content.Project(id)
	return p, ok, nil
}

// Projects filters the gallery.
func (w *Workspace) Projects(f domain.ProjectFilter) ([]domain.Project, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.content.FilterProjects(f), nil
}

// ProjectCategories lists gallery categories.
func (w *Workspace) ProjectCategories() ([]string, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.content.ProjectCategories(), nil
}

// LikeProject increments a project's likes.
func (w *Workspace) LikeProject(id string) (int, error) {
	if err := w.lock(); err != nil {
		return 0, err
	}
	defer w.mu.Unlock()
	return w.content.LikeProject(id)
}

// Materials filters the materials catalog.
func (w *Workspace) Materials(f domain.MaterialFilter) ([]domain.Material, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.content.FilterMaterials(f), nil
}

// ToggleSavedMaterial flips a material on the saved list.
func (w *Workspace) ToggleSavedMaterial(id string) (bool, error) {
	if err := w.lock(); err != nil {
		return false, err
	}
	defer w.mu.Unlock()
	return w.content.ToggleSavedMaterial(id)
}

// SavedMaterials returns saved material ids.
func (w *Workspace) SavedMaterials() ([]string, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.content.SavedMaterials(), nil
}

// Schedule returns the weekly schedule.
func (w *Workspace) Schedule() ([]domain.DaySchedule, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	return w.content.Schedule(), nil
}

// AddScheduleItem appends an activity to a day; unknown days drop it.
func (w *Workspace) AddScheduleItem(day string, item domain.ScheduleItem) (bool, error) {
	if !item.Kind.IsValid() {
		return false, domain.NewValidationError("kind", "unknown activity kind")
	}
	if err := w.lock(); err != nil {
		return false, err
	}
	defer w.mu.Unlock()
	if item.LessonID != "" {
		if _, ok := w.content.Lesson(item.LessonID); !ok {
			return false, domain.NewValidationError("lessonId", "unknown lesson")
		}
	}
	return w.content.AddScheduleItem(day, item), nil
}
