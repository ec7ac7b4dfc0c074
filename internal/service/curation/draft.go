// Package curation holds the uncommitted project draft of the submission
// form and turns it into a gallery Project.
package curation

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// Draft defaults.
const (
	DefaultCategory = "3D Printing Mastery"

	NewStepTitle = "New Step"
	NewStepBody  = "What did you do next?"
	NewStepIcon  = "fa-cube"

	MsgRequired = "Please enter a title and name."
)

// Editable draft fields.
const (
	FieldTitle           = "title"
	FieldCreator         = "creator"
	FieldCategory        = "category"
	FieldComplexity      = "complexity"
	FieldDescription     = "description"
	FieldFullDescription = "fullDescription"
	FieldImageURL        = "imageUrl"
)

// Editable step fields.
const (
	StepFieldTitle = "title"
	StepFieldBody  = "body"
	StepFieldIcon  = "icon"
)

// ErrNoDraft is returned when editing while the submission form is closed.
var ErrNoDraft = fmt.Errorf("project draft: %w", domain.ErrNotFound)

// Draft is the content of the submission form.
type Draft struct {
	Title           string
	CreatorName     string
	Category        string
	Complexity      domain.Difficulty
	Description     string
	FullDescription string
	ImageURL        string
	ImageValid      bool
	Steps           []domain.Step
}

func newDraft() *Draft {
	return &Draft{
		Category:   DefaultCategory,
		Complexity: domain.DifficultyBeginner,
		Steps: []domain.Step{
			{Title: "Planning", Body: "Describe how you planned your design.", Icon: "fa-pencil"},
		},
	}
}

func (d Draft) clone() Draft {
	d.Steps = domain.CloneSteps(d.Steps)
	return d
}

// Flow owns at most one open draft. Every Open starts a new generation so
// late results for a discarded draft can be recognized. Not safe for
// concurrent use.
type Flow struct {
	draft      *Draft
	generation uint64
}

// NewFlow returns a flow with the form closed.
func NewFlow() *Flow { return &Flow{} }

// Open discards any current draft and starts a fresh one.
func (f *Flow) Open() {
	f.draft = newDraft()
	f.generation++
}

// Close discards the draft.
func (f *Flow) Close() {
	f.draft = nil
	f.generation++
}

func (f *Flow) IsOpen() bool       { return f.draft != nil }
func (f *Flow) Generation() uint64 { return f.generation }

// Draft returns a copy of the open draft.
func (f *Flow) Draft() (Draft, bool) {
	if f.draft == nil {
		return Draft{}, false
	}
	return f.draft.clone(), true
}

// UpdateField sets one free-text field of the draft. Changing the image URL
// clears the validity flag until a probe reports back.
func (f *Flow) UpdateField(field, value string) error {
	if f.draft == nil {
		return ErrNoDraft
	}
	d := f.draft
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldCreator:
		d.CreatorName = value
	case FieldCategory:
		d.Category = value
	case FieldComplexity:
		level := domain.Difficulty(value)
		if !level.IsValid() {
			return domain.NewValidationError(FieldComplexity, fmt.Sprintf("unknown difficulty %q", value))
		}
		d.Complexity = level
	case FieldDescription:
		d.Description = value
	case FieldFullDescription:
		d.FullDescription = value
	case FieldImageURL:
		f.SetImageURL(value)
	default:
		return domain.NewValidationError("field", fmt.Sprintf("unknown field %q", field))
	}
	return nil
}

// AddStep appends the template step.
func (f *Flow) AddStep() error {
	if f.draft == nil {
		return ErrNoDraft
	}
	f.draft.Steps = append(f.draft.Steps, domain.Step{Title: NewStepTitle, Body: NewStepBody, Icon: NewStepIcon})
	return nil
}

// UpdateStep sets one field of step idx.
func (f *Flow) UpdateStep(idx int, field, value string) error {
	if f.draft == nil {
		return ErrNoDraft
	}
	if idx < 0 || idx >= len(f.draft.Steps) {
		return fmt.Errorf("draft step %d: %w", idx, domain.ErrNotFound)
	}
	step := &f.draft.Steps[idx]
	switch field {
	case StepFieldTitle:
		step.Title = value
	case StepFieldBody:
		step.Body = value
	case StepFieldIcon:
		step.Icon = value
	default:
		return domain.NewValidationError("field", fmt.Sprintf("unknown step field %q", field))
	}
	return nil
}

// RemoveStep deletes step idx.
func (f *Flow) RemoveStep(idx int) error {
	if f.draft == nil {
		return ErrNoDraft
	}
	steps, ok := domain.RemoveStepAt(f.draft.Steps, idx)
	if !ok {
		return fmt.Errorf("draft step %d: %w", idx, domain.ErrNotFound)
	}
	f.draft.Steps = steps
	return nil
}

// SetImageURL stores the preview URL and resets its validity. It reports
// whether a probe should be started.
func (f *Flow) SetImageURL(url string) bool {
	if f.draft == nil {
		return false
	}
	f.draft.ImageURL = url
	f.draft.ImageValid = false
	return strings.TrimSpace(url) != ""
}

// ApplyImageProbe records the probe outcome if url is still the draft's
// current image URL.
func (f *Flow) ApplyImageProbe(url string, valid bool) bool {
	if f.draft == nil || f.draft.ImageURL != url {
		return false
	}
	f.draft.ImageValid = valid
	return true
}

// Submit validates the draft and turns it into a gallery project. On failure
// the draft is left as is; on success it is closed.
func (f *Flow) Submit(id string, now time.Time) (domain.Project, error) {
	if f.draft == nil {
		return domain.Project{}, ErrNoDraft
	}
	d := f.draft
	var verr domain.ValidationError
	verr.Check(strings.TrimSpace(d.Title) != "", FieldTitle, MsgRequired)
	verr.Check(strings.TrimSpace(d.CreatorName) != "", FieldCreator, MsgRequired)
	if err := verr.Err(); err != nil {
		return domain.Project{}, err
	}

	p := domain.Project{
		ID:              id,
		Title:           strings.TrimSpace(d.Title),
		CreatorName:     strings.TrimSpace(d.CreatorName),
		CreatorLevel:    d.Complexity.String(),
		Category:        d.Category,
		Description:     d.Description,
		FullDescription: d.FullDescription,
		Materials:       []domain.ProjectMaterial{},
		Steps:           domain.CloneSteps(d.Steps),
		ImageURL:        d.ImageURL,
		CreatedAt:       now,
	}
	f.Close()
	return p, nil
}
