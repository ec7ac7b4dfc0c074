package rest

import (
	"time"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/service/curation"
	"github.com/heartmarshall/makerlab-backend/internal/service/session"
	"github.com/heartmarshall/makerlab-backend/internal/service/workspace"
)

type lessonResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Difficulty    string        `json:"difficulty"`
	Duration      string        `json:"duration"`
	Description   string        `json:"description"`
	Goal          string        `json:"goal,omitempty"`
	ImageURL      string        `json:"imageUrl"`
	Author        string        `json:"author,omitempty"`
	PublishedDate string        `json:"publishedDate,omitempty"`
	Tags          []string      `json:"tags"`
	Steps         []domain.Step `json:"steps"`
}

func toLessonResponse(l domain.Lesson) lessonResponse {
	return lessonResponse{
		ID:            l.ID,
		Title:         l.Title,
		Category:      l.Category,
		Difficulty:    l.Difficulty.String(),
		Duration:      l.Duration,
		Description:   l.Description,
		Goal:          l.Goal,
		ImageURL:      l.ImageURL,
		Author:        l.Author,
		PublishedDate: l.PublishedDate,
		Tags:          nonNil(l.Tags),
		Steps:         nonNil(l.Steps),
	}
}

type projectMaterialResponse struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Icon     string `json:"icon"`
}

type projectResponse struct {
	ID              string                    `json:"id"`
	Title           string                    `json:"title"`
	CreatorName     string                    `json:"creatorName"`
	CreatorLevel    string                    `json:"creatorLevel"`
	Category        string                    `json:"category"`
	Description     string                    `json:"description"`
	FullDescription string                    `json:"fullDescription,omitempty"`
	Materials       []projectMaterialResponse `json:"materials"`
	Steps           []domain.Step             `json:"steps"`
	Likes           int                       `json:"likes"`
	ImageURL        string                    `json:"imageUrl"`
	Award           string                    `json:"award,omitempty"`
	CreatedAt       *time.Time                `json:"createdAt,omitempty"`
}

func toProjectResponse(p domain.Project) projectResponse {
	resp := projectResponse{
		ID:              p.ID,
		Title:           p.Title,
		CreatorName:     p.CreatorName,
		CreatorLevel:    p.CreatorLevel,
		Category:        p.Category,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Materials:       make([]projectMaterialResponse, 0, len(p.Materials)),
		Steps:           nonNil(p.Steps),
		Likes:           p.Likes,
		ImageURL:        p.ImageURL,
		Award:           p.Award,
	}
	for _, m := range p.Materials {
		resp.Materials = append(resp.Materials, projectMaterialResponse{Name: m.Name, Quantity: m.Quantity, Icon: m.Icon})
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		resp.CreatedAt = &t
	}
	return resp
}

func toProjectResponses(ps []domain.Project) []projectResponse {
	out := make([]projectResponse, len(ps))
	for i, p := range ps {
		out[i] = toProjectResponse(p)
	}
	return out
}

type materialResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Quantity    string   `json:"quantity"`
	Status      string   `json:"status"`
	PriceRange  string   `json:"priceRange,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	ExternalURL string   `json:"externalUrl,omitempty"`
	Description string   `json:"description"`
	CommonUses  []string `json:"commonUses"`
	Saved       bool     `json:"saved"`
}

type scheduleItemResponse struct {
	Kind        string `json:"type"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Audience    string `json:"audience"`
	Description string `json:"description"`
	Instructor  string `json:"instructor,omitempty"`
	LessonID    string `json:"lessonId,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type dayScheduleResponse struct {
	Day   string                 `json:"day"`
	Date  string                 `json:"date"`
	Items []scheduleItemResponse `json:"items"`
}

func toScheduleResponse(days []domain.DaySchedule) []dayScheduleResponse {
	out := make([]dayScheduleResponse, len(days))
	for i, d := range days {
		items := make([]scheduleItemResponse, len(d.Items))
		for j, it := range d.Items {
			items[j] = scheduleItemResponse{
				Kind:        it.Kind.String(),
				Title:       it.Title,
				Time:        it.Time,
				Audience:    it.Audience,
				Description: it.Description,
				Instructor:  it.Instructor,
				LessonID:    it.LessonID,
				ImageURL:    it.ImageURL,
			}
		}
		out[i] = dayScheduleResponse{Day: d.Day, Date: d.Date, Items: items}
	}
	return out
}

type draftResponse struct {
	Title           string        `json:"title"`
	CreatorName     string        `json:"creatorName"`
	Category        string        `json:"category"`
	Complexity      string        `json:"complexity"`
	Description     string        `json:"description"`
	FullDescription string        `json:"fullDescription"`
	ImageURL        string        `json:"imageUrl"`
	ImageValid      bool          `json:"imageValid"`
	Steps           []domain.Step `json:"steps"`
}

func toDraftResponse(d curation.Draft) draftResponse {
	return draftResponse{
		Title:           d.Title,
		CreatorName:     d.CreatorName,
		Category:        d.Category,
		Complexity:      d.Complexity.String(),
		Description:     d.Description,
		FullDescription: d.FullDescription,
		ImageURL:        d.ImageURL,
		ImageValid:      d.ImageValid,
		Steps:           nonNil(d.Steps),
	}
}

type chatMessageResponse struct {
	Role   string    `json:"role"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

func toChatResponses(msgs []domain.ChatMessage) []chatMessageResponse {
	out := make([]chatMessageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = chatMessageResponse{Role: m.Role.String(), Text: m.Text, SentAt: m.SentAt}
	}
	return out
}

type identityResponse struct {
	Subject     string `json:"subject"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

type sessionResponse struct {
	Status   string            `json:"status"`
	Identity *identityResponse `json:"identity,omitempty"`
	Error    string            `json:"error,omitempty"`
	At       time.Time         `json:"at"`
}

func toSessionResponse(ev session.Event) sessionResponse {
	resp := sessionResponse{Status: string(ev.Status), Error: ev.Error, At: ev.At}
	if ev.Identity != nil {
		resp.Identity = &identityResponse{
			Subject:     ev.Identity.Subject,
			Email:       ev.Identity.Email,
			DisplayName: ev.Identity.DisplayName,
			AvatarURL:   ev.Identity.AvatarURL,
		}
	}
	return resp
}

type lessonProgressResponse struct {
	Index    int            `json:"index"`
	Count    int            `json:"count"`
	Step     int            `json:"step"`
	Terminal bool           `json:"terminal"`
	Percent  int            `json:"percent"`
	Lesson   lessonResponse `json:"lesson"`
}

type snapshotResponse struct {
	WorkspaceID    string                  `json:"workspaceId"`
	Tab            string                  `json:"tab"`
	Focus          string                  `json:"focus"`
	View           string                  `json:"view"`
	FocusedProject *projectResponse        `json:"focusedProject,omitempty"`
	ProjectStep    int                     `json:"projectStep"`
	Lesson         *lessonProgressResponse `json:"lesson,omitempty"`
	Publishing     bool                    `json:"publishing"`
	DraftOpen      bool                    `json:"draftOpen"`
	ChatPending    bool                    `json:"chatPending"`
	Session        sessionResponse         `json:"session"`
}

func toSnapshotResponse(s workspace.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		WorkspaceID: s.ID.String(),
		Tab:         s.Tab.String(),
		Focus:       s.Focus.String(),
		View:        string(s.View),
		ProjectStep: s.ProjectStep,
		Publishing:  s.Publishing,
		DraftOpen:   s.DraftOpen,
		ChatPending: s.ChatPending,
		Session:     toSessionResponse(s.Session),
	}
	if s.FocusedProject != nil {
		p := toProjectResponse(*s.FocusedProject)
		resp.FocusedProject = &p
	}
	if s.Lesson != nil {
		resp.Lesson = &lessonProgressResponse{
			Index:    s.Lesson.Index,
			Count:    s.Lesson.Count,
			Step:     s.Lesson.Step,
			Terminal: s.Lesson.Terminal,
			Percent:  s.Lesson.Percent,
			Lesson:   toLessonResponse(s.Lesson.Lesson),
		}
	}
	return resp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
