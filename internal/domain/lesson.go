package domain

// Lesson is one level of the guided lesson path.
type Lesson struct {
	ID            string
	Title         string
	Category      string
	Difficulty    Difficulty
	Duration      string
	Description   string
	Goal          string
	ImageURL      string
	Author        string
	PublishedDate string
	Tags          []string
	Steps         []Step
}

// Clone returns a deep copy so callers can read it outside the owner's lock.
func (l Lesson) Clone() Lesson {
	l.Tags = append([]string(nil), l.Tags...)
	l.Steps = CloneSteps(l.Steps)
	return l
}
