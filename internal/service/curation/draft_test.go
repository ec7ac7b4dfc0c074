package curation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

func openFlow(t *testing.T) *Flow {
	t.Helper()
	f := NewFlow()
	f.Open()
	return f
}

func TestOpen_Defaults(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	d, ok := f.Draft()
	require.True(t, ok)

	assert.Equal(t, DefaultCategory, d.Category)
	assert.Equal(t, domain.DifficultyBeginner, d.Complexity)
	want := []domain.Step{{Title: "Planning", Body: "Describe how you planned your design.", Icon: "fa-pencil"}}
	if diff := cmp.Diff(want, d.Steps); diff != "" {
		t.Fatalf("initial steps (-want +got):\n%s", diff)
	}
}

func TestClosed_RejectsEdits(t *testing.T) {
	t.Parallel()

	f := NewFlow()
	assert.ErrorIs(t, f.UpdateField(FieldTitle, "x"), ErrNoDraft)
	assert.ErrorIs(t, f.AddStep(), ErrNoDraft)
	assert.ErrorIs(t, f.RemoveStep(0), ErrNoDraft)
	assert.ErrorIs(t, f.UpdateStep(0, StepFieldTitle, "x"), ErrNoDraft)
	_, err := f.Submit("id", time.Now())
	assert.ErrorIs(t, err, ErrNoDraft)
	_, ok := f.Draft()
	assert.False(t, ok)
}

func TestUpdateField(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	require.NoError(t, f.UpdateField(FieldTitle, "Rover"))
	require.NoError(t, f.UpdateField(FieldCreator, "Kai"))
	require.NoError(t, f.UpdateField(FieldCategory, "Robotics"))
	require.NoError(t, f.UpdateField(FieldComplexity, "Hard"))
	require.NoError(t, f.UpdateField(FieldDescription, "short"))
	require.NoError(t, f.UpdateField(FieldFullDescription, "long"))

	d, _ := f.Draft()
	assert.Equal(t, "Rover", d.Title)
	assert.Equal(t, "Kai", d.CreatorName)
	assert.Equal(t, "Robotics", d.Category)
	assert.Equal(t, domain.DifficultyHard, d.Complexity)
	assert.Equal(t, "short", d.Description)
	assert.Equal(t, "long", d.FullDescription)
}

func TestUpdateField_Invalid(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	assert.ErrorIs(t, f.UpdateField(FieldComplexity, "Expert"), domain.ErrValidation)
	assert.ErrorIs(t, f.UpdateField("likes", "100"), domain.ErrValidation)

	d, _ := f.Draft()
	assert.Equal(t, domain.DifficultyBeginner, d.Complexity)
}

func TestSteps(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	require.NoError(t, f.AddStep())
	require.NoError(t, f.AddStep())
	require.NoError(t, f.UpdateStep(1, StepFieldBody, "Printed the chassis"))
	require.NoError(t, f.UpdateStep(2, StepFieldIcon, "fa-bolt"))
	require.NoError(t, f.RemoveStep(0))

	d, _ := f.Draft()
	want := []domain.Step{
		{Title: NewStepTitle, Body: "Printed the chassis", Icon: NewStepIcon},
		{Title: NewStepTitle, Body: NewStepBody, Icon: "fa-bolt"},
	}
	if diff := cmp.Diff(want, d.Steps); diff != "" {
		t.Fatalf("steps (-want +got):\n%s", diff)
	}

	assert.ErrorIs(t, f.RemoveStep(5), domain.ErrNotFound)
	assert.ErrorIs(t, f.UpdateStep(-1, StepFieldTitle, "x"), domain.ErrNotFound)
	assert.ErrorIs(t, f.UpdateStep(0, "colour", "x"), domain.ErrValidation)
}

func TestDraft_ReturnsCopy(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	d, _ := f.Draft()
	d.Steps[0].Title = "changed"

	again, _ := f.Draft()
	assert.Equal(t, "Planning", again.Steps[0].Title)
}

func TestSubmit_RequiresTitleAndCreator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		creator string
		fields  []string
	}{
		{"both missing", "", "", []string{FieldTitle, FieldCreator}},
		{"whitespace title", "   ", "Kai", []string{FieldTitle}},
		{"missing creator", "Rover", "", []string{FieldCreator}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := openFlow(t)
			require.NoError(t, f.UpdateField(FieldTitle, tt.title))
			require.NoError(t, f.UpdateField(FieldCreator, tt.creator))

			_, err := f.Submit("p-custom-1", time.Now())
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			var got []string
			for _, fe := range ve.Errors {
				got = append(got, fe.Field)
				assert.Equal(t, MsgRequired, fe.Message)
			}
			assert.Equal(t, tt.fields, got)
			assert.True(t, f.IsOpen(), "draft must survive a rejected submit")
		})
	}
}

func TestSubmit_BuildsProject(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 7, 29, 10, 0, 0, 0, time.UTC)
	f := openFlow(t)
	require.NoError(t, f.UpdateField(FieldTitle, " Rover "))
	require.NoError(t, f.UpdateField(FieldCreator, "Kai"))
	require.NoError(t, f.UpdateField(FieldComplexity, "Intermediate"))
	f.SetImageURL("https://img.example/rover.png")

	p, err := f.Submit("p-custom-42", now)
	require.NoError(t, err)

	assert.Equal(t, "p-custom-42", p.ID)
	assert.Equal(t, "Rover", p.Title)
	assert.Equal(t, "Kai", p.CreatorName)
	assert.Equal(t, "Intermediate", p.CreatorLevel)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, 0, p.Likes)
	assert.Empty(t, p.Materials)
	assert.NotNil(t, p.Materials)
	assert.Len(t, p.Steps, 1)
	assert.Equal(t, "https://img.example/rover.png", p.ImageURL)
	assert.Equal(t, now, p.CreatedAt)
	assert.False(t, f.IsOpen())
}

func TestImageProbe_OnlyCurrentURL(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	assert.True(t, f.SetImageURL("https://a"))
	assert.True(t, f.SetImageURL("https://b"))

	assert.False(t, f.ApplyImageProbe("https://a", true), "stale probe must be ignored")
	d, _ := f.Draft()
	assert.False(t, d.ImageValid)

	assert.True(t, f.ApplyImageProbe("https://b", true))
	d, _ = f.Draft()
	assert.True(t, d.ImageValid)

	assert.False(t, f.SetImageURL(""))
	d, _ = f.Draft()
	assert.False(t, d.ImageValid)
}

func TestUpdateField_ImageURLResetsValidity(t *testing.T) {
	t.Parallel()

	f := openFlow(t)
	f.SetImageURL("https://a")
	f.ApplyImageProbe("https://a", true)
	require.NoError(t, f.UpdateField(FieldImageURL, "https://c"))

	d, _ := f.Draft()
	assert.Equal(t, "https://c", d.ImageURL)
	assert.False(t, d.ImageValid)
}
