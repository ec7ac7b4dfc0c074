package curation

import "fmt"

const assistPrompt = "Write a creative and encouraging 2-sentence description for this project."

// AssistRequest is a description-writing request for a completion backend.
// Generation ties the reply to the draft it was asked for.
type AssistRequest struct {
	Generation uint64
	Prompt     string
	Context    string
}

// AssistRequest builds the request for the open draft. It reports false when
// the draft has no title yet.
func (f *Flow) AssistRequest() (AssistRequest, bool) {
	if f.draft == nil || f.draft.Title == "" {
		return AssistRequest{}, false
	}
	return AssistRequest{
		Generation: f.generation,
		Prompt:     assistPrompt,
		Context:    fmt.Sprintf(`A student project titled "%s" in the category "%s".`, f.draft.Title, f.draft.Category),
	}, true
}

// ApplyAssist overwrites the short description with text when the draft that
// asked for it is still open.
func (f *Flow) ApplyAssist(generation uint64, text string) bool {
	if f.draft == nil || f.generation != generation || text == "" {
		return false
	}
	f.draft.Description = text
	return true
}
