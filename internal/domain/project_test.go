package domain

import (
	"testing"
	"time"
)

func TestProjectFromLesson_DefaultCreator(t *testing.T) {
	t.Parallel()

	lesson := Lesson{
		ID:       "l1",
		Title:    "Level 1: 3D Slicing Basics",
		Category: "3D Printing Mastery",
		Goal:     "Print a keychain",
		ImageURL: "https://example.com/l1.jpg",
		Steps:    threeSteps(),
	}
	now := time.Date(2024, 7, 29, 10, 0, 0, 0, time.UTC)

	p := ProjectFromLesson("p-lesson-1", lesson, nil, now)

	if p.CreatorName != DefaultCreatorName {
		t.Errorf("creator = %q, want %q", p.CreatorName, DefaultCreatorName)
	}
	if p.CreatorLevel != DefaultCreatorLevel {
		t.Errorf("level = %q", p.CreatorLevel)
	}
	if p.Description != "Completed the Level 1: 3D Slicing Basics mastery pathway." {
		t.Errorf("description = %q", p.Description)
	}
	if p.FullDescription != lesson.Goal || p.Award != PublishedAward || p.Likes != 0 {
		t.Errorf("unexpected project: %+v", p)
	}
	if len(p.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(p.Steps))
	}

	p.Steps[0].Title = "mutated"
	if lesson.Steps[0].Title != "Overview" {
		t.Error("project steps must not alias lesson steps")
	}
}

func TestProjectFromLesson_SignedInCreator(t *testing.T) {
	t.Parallel()

	who := &Identity{Email: "emma@example.com", DisplayName: "Emma T."}
	p := ProjectFromLesson("p-lesson-2", Lesson{Title: "x"}, who, time.Now())

	if p.CreatorName != "Emma T." {
		t.Errorf("creator = %q, want %q", p.CreatorName, "Emma T.")
	}
}

func TestIdentity_Label(t *testing.T) {
	t.Parallel()

	var none *Identity
	if none.Label() != "" {
		t.Error("nil identity should have empty label")
	}
	if (&Identity{Email: "a@b.c"}).Label() != "a@b.c" {
		t.Error("label should fall back to email")
	}
}
