package domain

import "time"

// Creator defaults used when a lesson is published without a signed-in user.
const (
	DefaultCreatorName  = "Lab Student"
	DefaultCreatorLevel = "Lab Certified"
	PublishedAward      = "Course Completed"
)

// ProjectMaterial is one line of a project's hardware list.
type ProjectMaterial struct {
	Name     string
	Quantity string
	Icon     string
}

// Project is an entry of the project gallery.
type Project struct {
	ID              string
	Title           string
	CreatorName     string
	CreatorLevel    string
	Category        string
	Description     string
	FullDescription string
	Materials       []ProjectMaterial
	Steps           []Step
	Likes           int
	ImageURL        string
	Award           string
	CreatedAt       time.Time
}

// Clone returns a deep copy so callers can read it outside the owner's lock.
func (p Project) Clone() Project {
	p.Materials = append([]ProjectMaterial(nil), p.Materials...)
	p.Steps = CloneSteps(p.Steps)
	return p
}

// ProjectFromLesson synthesizes the gallery entry produced by publishing a
// completed lesson.
func ProjectFromLesson(id string, lesson Lesson, creator *Identity, now time.Time) Project {
	name := DefaultCreatorName
	if label := creator.Label(); label != "" {
		name = label
	}
	return Project{
		ID:              id,
		Title:           lesson.Title,
		CreatorName:     name,
		CreatorLevel:    DefaultCreatorLevel,
		Category:        lesson.Category,
		Description:     "Completed the " + lesson.Title + " mastery pathway.",
		FullDescription: lesson.Goal,
		Materials:       []ProjectMaterial{},
		Steps:           CloneSteps(lesson.Steps),
		ImageURL:        lesson.ImageURL,
		Award:           PublishedAward,
		CreatedAt:       now,
	}
}
