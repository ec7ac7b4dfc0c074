// Package progression walks a learner through the ordered lesson path.
package progression

import (
	"fmt"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// ErrNotTerminal is returned when publishing before the final lesson.
var ErrNotTerminal = fmt.Errorf("%w: publishing is only available on the final lesson", domain.ErrValidation)

// Engine holds the index of the current lesson and the step shown inside it.
// It is not safe for concurrent use.
type Engine struct {
	index  int
	cursor domain.StepCursor
}

// New returns an engine at the first lesson.
func New() *Engine { return &Engine{} }

func (e *Engine) Index() int { return e.index }
func (e *Engine) Step() int  { return e.cursor.Active }

// Enter restarts the path at the first lesson. Leaving the path needs no
// call: the index is kept until the next Enter.
func (e *Engine) Enter() {
	e.index = 0
	e.cursor.Reset()
}

// Advance moves to the next of n lessons. At the terminal lesson it is a no-op
// and reports false.
func (e *Engine) Advance(n int) bool {
	if e.index >= n-1 {
		return false
	}
	e.index++
	e.cursor.Reset()
	return true
}

// IsTerminal reports whether the current lesson is the last of n.
func (e *Engine) IsTerminal(n int) bool {
	return e.index >= n-1
}

// CheckPublish returns ErrNotTerminal unless the engine sits on the last of n
// lessons.
func (e *Engine) CheckPublish(n int) error {
	if !e.IsTerminal(n) {
		return ErrNotTerminal
	}
	return nil
}

// Progress is the completion percentage shown in the lesson header.
func (e *Engine) Progress(n int) int {
	if n <= 0 {
		return 0
	}
	return (e.index + 1) * 100 / n
}

// SelectStep jumps to step i of a lesson with n steps.
func (e *Engine) SelectStep(i, n int) bool { return e.cursor.Select(i, n) }

// NextStep and PrevStep move the step cursor within a lesson with n steps.
func (e *Engine) NextStep(n int) { e.cursor.Next(n) }
func (e *Engine) PrevStep()      { e.cursor.Prev() }

// StepRemoved repositions the cursor after the step at idx was deleted from a
// lesson that held oldLen steps.
func (e *Engine) StepRemoved(idx, oldLen int) {
	e.cursor.AfterRemoval(idx, oldLen)
}
