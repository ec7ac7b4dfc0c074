package domain

// StepCursor tracks which step of an ordered list is displayed.
type StepCursor struct {
	Active int
}

// Reset moves the cursor back to the first step.
func (c *StepCursor) Reset() { c.Active = 0 }

// Select moves to step i if it exists in a list of n steps.
func (c *StepCursor) Select(i, n int) bool {
	if i < 0 || i >= n {
		return false
	}
	c.Active = i
	return true
}

// Next advances one step, stopping at the last of n steps.
func (c *StepCursor) Next(n int) {
	if c.Active < n-1 {
		c.Active++
	}
}

// Prev moves back one step, stopping at the first.
func (c *StepCursor) Prev() {
	if c.Active > 0 {
		c.Active--
	}
}

// AfterRemoval repositions the cursor once the step at removed has been
// deleted from a list that held oldLen steps. A cursor on the old tail would
// point past the end, so it falls back to the step before the removed one.
func (c *StepCursor) AfterRemoval(removed, oldLen int) {
	if c.Active >= oldLen-1 {
		c.Active = max(0, removed-1)
	}
}
