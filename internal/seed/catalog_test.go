package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	require.Len(t, c.Lessons, 3)
	assert.Equal(t, "l1", c.Lessons[0].ID)
	assert.Equal(t, domain.DifficultyHard, c.Lessons[2].Difficulty)
	for _, l := range c.Lessons {
		assert.Len(t, l.Steps, 4, "lesson %s", l.ID)
		assert.Equal(t, "CiferTech", l.Author)
	}

	require.Len(t, c.Projects, 6)
	assert.Equal(t, "p1", c.Projects[0].ID)
	assert.Equal(t, 42, c.Projects[0].Likes)
	assert.Equal(t, "Emma T.", c.Projects[0].CreatorName)
	assert.Empty(t, c.Projects[3].Award)

	require.Len(t, c.Materials, 8)
	assert.Equal(t, "micro:bit V2.2 Master Kit", c.Materials[6].Name)
	assert.Equal(t, domain.StockLow, c.Materials[1].Status)

	require.Len(t, c.Schedule, 3)
	assert.Equal(t, "Monday", c.Schedule[0].Day)
	assert.Equal(t, "l2", c.Schedule[0].Items[1].LessonID)
	assert.Equal(t, domain.ActivityWorkshop, c.Schedule[2].Items[0].Kind)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Lessons, 3)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
lessons:
  - id: x1
    title: Only Lesson
    difficulty: Beginner
    steps:
      - {title: One, body: first, icon: fa-1}
schedule:
  - day: Friday
    date: 2 August 2024
    items:
      - {kind: Exhibition, title: Show, lesson_id: x1}
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Lessons, 1)
	assert.Equal(t, "first", c.Lessons[0].Steps[0].Body)
	assert.Empty(t, c.Projects)
	assert.Equal(t, domain.ActivityExhibition, c.Schedule[0].Items[0].Kind)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"malformed", "lessons: [\n"},
		{"lesson without id", "lessons:\n  - {title: x, difficulty: Beginner}\n"},
		{"duplicate lesson", "lessons:\n  - {id: a, difficulty: Beginner}\n  - {id: a, difficulty: Hard}\n"},
		{"bad difficulty", "lessons:\n  - {id: a, difficulty: Expert}\n"},
		{"duplicate project", "projects:\n  - {id: p}\n  - {id: p}\n"},
		{"bad stock status", "materials:\n  - {id: m, status: Gone}\n"},
		{"bad activity", "schedule:\n  - day: Monday\n    items:\n      - {kind: Party}\n"},
		{"dangling lesson link", "schedule:\n  - day: Monday\n    items:\n      - {kind: CCA, lesson_id: zz}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	cp := c.Clone()
	cp.Lessons[0].Steps[0].Title = "changed"
	cp.Projects[0].Likes = 999
	cp.Schedule[0].Items[0].Title = "changed"

	assert.Equal(t, "Overview", c.Lessons[0].Steps[0].Title)
	assert.Equal(t, 42, c.Projects[0].Likes)
	assert.Equal(t, "Customer Onboarding", c.Schedule[0].Items[0].Title)
}
