// Package content owns the in-memory lesson, project, material and schedule
// collections of one workspace.
package content

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/seed"
)

// Collections is not safe for concurrent use; the owning workspace
// serializes access. Getters return copies.
type Collections struct {
	lessons   []domain.Lesson
	projects  []domain.Project
	materials []domain.Material
	schedule  []domain.DaySchedule
	saved     []string
	log       *slog.Logger
}

// New seeds the collections from a private copy of catalog.
func New(log *slog.Logger, catalog *seed.Catalog) *Collections {
	c := catalog.Clone()
	return &Collections{
		lessons:   c.Lessons,
		projects:  c.Projects,
		materials: c.Materials,
		schedule:  c.Schedule,
		log:       log.With("service", "content"),
	}
}

// ---------------------------------------------------------------------------
// Lessons
// ---------------------------------------------------------------------------

func (c *Collections) LessonCount() int { return len(c.lessons) }

// Lessons returns all lessons in path order.
func (c *Collections) Lessons() []domain.Lesson {
	out := make([]domain.Lesson, len(c.lessons))
	for i, l := range c.lessons {
		out[i] = l.Clone()
	}
	return out
}

// LessonAt returns the lesson at position i of the path.
func (c *Collections) LessonAt(i int) (domain.Lesson, bool) {
	if i < 0 || i >= len(c.lessons) {
		return domain.Lesson{}, false
	}
	return c.lessons[i].Clone(), true
}

// Lesson looks a lesson up by id.
func (c *Collections) Lesson(id string) (domain.Lesson, bool) {
	i := c.lessonIndex(id)
	if i < 0 {
		return domain.Lesson{}, false
	}
	return c.lessons[i].Clone(), true
}

// LessonTitles lists lesson titles in path order.
func (c *Collections) LessonTitles() []string {
	titles := make([]string, len(c.lessons))
	for i, l := range c.lessons {
		titles[i] = l.Title
	}
	return titles
}

// RemoveLessonStep deletes step idx of lesson lessonID. A missing lesson or
// an out-of-range index leaves everything unchanged. oldLen is the step count
// before removal.
func (c *Collections) RemoveLessonStep(lessonID string, idx int) (oldLen int, removed bool) {
	i := c.lessonIndex(lessonID)
	if i < 0 {
		c.log.Debug("remove lesson step: lesson not found", slog.String("lesson_id", lessonID))
		return 0, false
	}
	oldLen = len(c.lessons[i].Steps)
	c.lessons[i].Steps, removed = domain.RemoveStepAt(c.lessons[i].Steps, idx)
	return oldLen, removed
}

func (c *Collections) lessonIndex(id string) int {
	return slices.IndexFunc(c.lessons, func(l domain.Lesson) bool { return l.ID == id })
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

// Projects returns the gallery, newest first.
func (c *Collections) Projects() []domain.Project {
	out := make([]domain.Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.Clone()
	}
	return out
}

// Project looks a project up by id.
func (c *Collections) Project(id string) (domain.Project, bool) {
	i := c.projectIndex(id)
	if i < 0 {
		return domain.Project{}, false
	}
	return c.projects[i].Clone(), true
}

// AddProject prepends p to the gallery.
func (c *Collections) AddProject(p domain.Project) error {
	if c.projectIndex(p.ID) >= 0 {
		return fmt.Errorf("project %s: %w", p.ID, domain.ErrAlreadyExists)
	}
	c.projects = slices.Insert(c.projects, 0, p.Clone())
	c.log.Info("project added", slog.String("project_id", p.ID), slog.String("title", p.Title))
	return nil
}

// RemoveProjectStep deletes step idx of project projectID. A missing project
// or an out-of-range index leaves everything unchanged.
func (c *Collections) RemoveProjectStep(projectID string, idx int) (oldLen int, removed bool) {
	i := c.projectIndex(projectID)
	if i < 0 {
		c.log.Debug("remove project step: project not found", slog.String("project_id", projectID))
		return 0, false
	}
	oldLen = len(c.projects[i].Steps)
	c.projects[i].Steps, removed = domain.RemoveStepAt(c.projects[i].Steps, idx)
	return oldLen, removed
}

// LikeProject increments the like counter and returns the new count.
func (c *Collections) LikeProject(id string) (int, error) {
	i := c.projectIndex(id)
	if i < 0 {
		return 0, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	c.projects[i].Likes++
	return c.projects[i].Likes, nil
}

// FilterProjects returns gallery projects passing f, in gallery order.
func (c *Collections) FilterProjects(f domain.ProjectFilter) []domain.Project {
	out := make([]domain.Project, 0, len(c.projects))
	for _, p := range c.projects {
		if f.Match(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// ProjectCategories lists distinct gallery categories in first-seen order.
func (c *Collections) ProjectCategories() []string {
	var out []string
	for _, p := range c.projects {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

func (c *Collections) projectIndex(id string) int {
	return slices.IndexFunc(c.projects, func(p domain.Project) bool { return p.ID == id })
}

// ---------------------------------------------------------------------------
// Materials
// ---------------------------------------------------------------------------

// Materials returns the full catalog in source order.
func (c *Collections) Materials() []domain.Material {
	return c.FilterMaterials(domain.MaterialFilter{})
}

// FilterMaterials returns catalog materials passing f, in source order.
func (c *Collections) FilterMaterials(f domain.MaterialFilter) []domain.Material {
	out := make([]domain.Material, 0, len(c.materials))
	for _, m := range c.materials {
		if f.Match(m) {
			m.CommonUses = slices.Clone(m.CommonUses)
			out = append(out, m)
		}
	}
	return out
}

// ToggleSavedMaterial adds or removes id from the saved-interest list and
// reports whether it is saved afterwards.
func (c *Collections) ToggleSavedMaterial(id string) (bool, error) {
	if !slices.ContainsFunc(c.materials, func(m domain.Material) bool { return m.ID == id }) {
		return false, fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
	}
	if i := slices.Index(c.saved, id); i >= 0 {
		c.saved = slices.Delete(c.saved, i, i+1)
		return false, nil
	}
	c.saved = append(c.saved, id)
	return true, nil
}

// SavedMaterials returns saved material ids in the order they were saved.
func (c *Collections) SavedMaterials() []string {
	return slices.Clone(c.saved)
}

// ---------------------------------------------------------------------------
// Schedule
// ---------------------------------------------------------------------------

// Schedule returns the weekly schedule in day order.
func (c *Collections) Schedule() []domain.DaySchedule {
	out := make([]domain.DaySchedule, len(c.schedule))
	for i, d := range c.schedule {
		out[i] = d.Clone()
	}
	return out
}

// ScheduleForDay returns the day whose name matches day, ignoring case.
func (c *Collections) ScheduleForDay(day string) (domain.DaySchedule, bool) {
	i := c.dayIndex(day)
	if i < 0 {
		return domain.DaySchedule{}, false
	}
	return c.schedule[i].Clone(), true
}

// AddScheduleItem appends item to the named day. An unknown day drops the
// item and reports false.
func (c *Collections) AddScheduleItem(day string, item domain.ScheduleItem) bool {
	i := c.dayIndex(day)
	if i < 0 {
		c.log.Warn("schedule item dropped: unknown day",
			slog.String("day", day), slog.String("title", item.Title))
		return false
	}
	c.schedule[i].Items = append(c.schedule[i].Items, item)
	return true
}

// LinkedLesson resolves the lesson an activity points to.
func (c *Collections) LinkedLesson(item domain.ScheduleItem) (domain.Lesson, bool) {
	if item.LessonID == "" {
		return domain.Lesson{}, false
	}
	return c.Lesson(item.LessonID)
}

func (c *Collections) dayIndex(day string) int {
	want := domain.NormalizeText(day)
	if want == "" {
		return -1
	}
	return slices.IndexFunc(c.schedule, func(d domain.DaySchedule) bool {
		return domain.NormalizeText(d.Day) == want
	})
}
