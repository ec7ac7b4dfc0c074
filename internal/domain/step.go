package domain

// Step is one ordered entry of a lesson's story or a project's build log.
type Step struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body"  yaml:"body"`
	Icon  string `json:"icon"  yaml:"icon"`
}

// CloneSteps returns a copy of steps that shares no backing array.
func CloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// RemoveStepAt returns a new slice without the element at idx. Elements after
// idx shift left by one. An out-of-range index returns steps unchanged and
// false.
func RemoveStepAt(steps []Step, idx int) ([]Step, bool) {
	if idx < 0 || idx >= len(steps) {
		return steps, false
	}
	out := make([]Step, 0, len(steps)-1)
	out = append(out, steps[:idx]...)
	out = append(out, steps[idx+1:]...)
	return out, true
}
