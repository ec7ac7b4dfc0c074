package progression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

func TestAdvance_ClampsAtTerminal(t *testing.T) {
	t.Parallel()

	const n = 3
	e := New()
	e.Enter()

	assert.False(t, e.IsTerminal(n))
	assert.True(t, e.Advance(n))
	assert.True(t, e.Advance(n))
	assert.Equal(t, 2, e.Index())
	assert.True(t, e.IsTerminal(n))

	for range 5 {
		assert.False(t, e.Advance(n))
	}
	assert.Equal(t, 2, e.Index())
}

func TestAdvance_IndexStaysInRange(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 4; n++ {
		e := New()
		for range n + 3 {
			e.Advance(n)
			if e.Index() < 0 || e.Index() > n-1 {
				t.Fatalf("n=%d index=%d out of range", n, e.Index())
			}
		}
	}
}

func TestEnter_Resets(t *testing.T) {
	t.Parallel()

	e := New()
	e.Advance(3)
	e.SelectStep(2, 4)
	assert.Equal(t, 1, e.Index())

	e.Enter()
	assert.Equal(t, 0, e.Index())
	assert.Equal(t, 0, e.Step())
}

func TestAdvance_ResetsStep(t *testing.T) {
	t.Parallel()

	e := New()
	e.SelectStep(3, 4)
	e.Advance(3)
	assert.Equal(t, 0, e.Step())
}

func TestCheckPublish(t *testing.T) {
	t.Parallel()

	e := New()
	err := e.CheckPublish(3)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.ErrorIs(t, err, ErrNotTerminal)

	e.Advance(3)
	e.Advance(3)
	assert.NoError(t, e.CheckPublish(3))
}

func TestProgress(t *testing.T) {
	t.Parallel()

	e := New()
	assert.Equal(t, 33, e.Progress(3))
	e.Advance(3)
	e.Advance(3)
	assert.Equal(t, 100, e.Progress(3))
	assert.Equal(t, 0, New().Progress(0))
}

func TestStepCursor(t *testing.T) {
	t.Parallel()

	e := New()
	assert.False(t, e.SelectStep(4, 4))
	e.NextStep(4)
	e.NextStep(4)
	e.NextStep(4)
	e.NextStep(4)
	assert.Equal(t, 3, e.Step())
	e.PrevStep()
	assert.Equal(t, 2, e.Step())
}

func TestStepRemoved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		active   int
		removed  int
		oldLen   int
		expected int
	}{
		{"cursor on last step, last removed", 3, 3, 4, 2},
		{"cursor on last step, earlier removed", 3, 1, 4, 0},
		{"cursor before tail is kept", 1, 2, 4, 1},
		{"removing only step", 0, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New()
			e.SelectStep(tt.active, tt.oldLen)
			e.StepRemoved(tt.removed, tt.oldLen)
			assert.Equal(t, tt.expected, e.Step())
		})
	}
}
