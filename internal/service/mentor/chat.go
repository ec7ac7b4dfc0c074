// Package mentor keeps the chat log with the lab's AI mentor and converts
// completion failures into friendly replies.
package mentor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

// Canned texts.
const (
	Greeting = "Hi! I'm your Maker Lab Mentor. Want help choosing a lesson plan based on your skills?"

	ReplyMissingKey = "I'm having trouble accessing my creative circuits (API key missing). " +
		"Please ensure your environment is set up correctly!"
	ReplyUnavailable = "I'm having trouble connecting to my creative circuits right now. Please try again in a moment!"
	ReplyEmpty       = "I missed that, could you repeat?"
)

// ErrPending is returned when a message is sent while a reply is outstanding.
var ErrPending = fmt.Errorf("mentor is still answering: %w", domain.ErrConflict)

// Request is one question to hand to a completion backend.
type Request struct {
	Prompt  string
	Context string
}

// Chat is the append-only message log plus the pending flag. Not safe for
// concurrent use.
type Chat struct {
	messages []domain.ChatMessage
	pending  bool
}

// NewChat starts a log holding the greeting.
func NewChat(now time.Time) *Chat {
	return &Chat{
		messages: []domain.ChatMessage{{Role: domain.ChatRoleAssistant, Text: Greeting, SentAt: now}},
	}
}

func (c *Chat) Pending() bool { return c.pending }

// Messages returns a copy of the log.
func (c *Chat) Messages() []domain.ChatMessage {
	return append([]domain.ChatMessage(nil), c.messages...)
}

// Begin appends the user's message as typed and marks the chat pending.
// Whitespace-only input is ignored and reports false.
func (c *Chat) Begin(text, context string, now time.Time) (Request, bool, error) {
	if strings.TrimSpace(text) == "" {
		return Request{}, false, nil
	}
	if c.pending {
		return Request{}, false, ErrPending
	}
	c.messages = append(c.messages, domain.ChatMessage{Role: domain.ChatRoleUser, Text: text, SentAt: now})
	c.pending = true
	return Request{Prompt: text, Context: context}, true, nil
}

// Finish appends the assistant's answer for the outstanding request and
// clears the pending flag.
func (c *Chat) Finish(reply string, err error, now time.Time) domain.ChatMessage {
	msg := domain.ChatMessage{Role: domain.ChatRoleAssistant, Text: Reply(reply, err), SentAt: now}
	c.messages = append(c.messages, msg)
	c.pending = false
	return msg
}

// Reply maps a completion outcome to the text shown to the learner.
func Reply(reply string, err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return ReplyMissingKey
	case err != nil:
		return ReplyUnavailable
	case strings.TrimSpace(reply) == "":
		return ReplyEmpty
	}
	return reply
}

// Context describes the lab for a chat completion.
func Context(lessonTitles []string, view domain.View) string {
	return fmt.Sprintf(
		"The Design Maker Lab offers lessons like: %s. Difficulty levels: Beginner, Intermediate, Hard. Currently viewing %s.",
		strings.Join(lessonTitles, ", "), describeView(view),
	)
}

func describeView(v domain.View) string {
	switch v {
	case domain.ViewMaterials:
		return "the materials catalog"
	case domain.ViewSchedule:
		return "the weekly schedule"
	case domain.ViewGallery:
		return "the project gallery"
	case domain.ViewLessonPath:
		return "the lesson path"
	case domain.ViewProjectDetail:
		return "a project detail page"
	default:
		return "home page"
	}
}
