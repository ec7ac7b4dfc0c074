package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/heartmarshall/makerlab-backend/internal/config"
	"github.com/heartmarshall/makerlab-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateWorkspaceToken(token string) (uuid.UUID, error)
}

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Logger     *slog.Logger
	Workspaces *WorkspaceHandler
	Health     *HealthHandler
	Tokens     tokenValidator
	CORS       config.CORSConfig
	RateLimit  config.RateLimitConfig
	// Limiter may be nil when rate limiting is disabled.
	Limiter *middleware.RateLimiter
}

// NewRouter builds the HTTP handler for the lab API.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))

	limit := func(scope string, perMinute int) func(http.Handler) http.Handler {
		if d.Limiter == nil || !d.RateLimit.Enabled {
			return func(next http.Handler) http.Handler { return next }
		}
		return d.Limiter.Limit(scope, perMinute)
	}

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(limit("create", d.RateLimit.CreatePerMinute)).Post("/workspaces", d.Workspaces.Create)

		r.Route("/workspace", func(r chi.Router) {
			r.Use(middleware.WorkspaceAuth(d.Tokens))
			r.Use(d.Workspaces.Resolve)

			// Session endpoints stay reachable while signed out.
			r.Route("/session", func(r chi.Router) {
				r.Get("/", d.Workspaces.Session)
				r.Get("/events", d.Workspaces.SessionEvents)
				r.With(limit("api", d.RateLimit.PerMinute)).Post("/google", d.Workspaces.SignInGoogle)
				r.With(limit("api", d.RateLimit.PerMinute)).Post("/signout", d.Workspaces.SignOut)
			})

			r.Group(func(r chi.Router) {
				r.Use(limit("api", d.RateLimit.PerMinute))
				r.Use(d.Workspaces.RequireSignIn)

				r.Get("/", d.Workspaces.Snapshot)
				r.Delete("/", d.Workspaces.Close)

				r.Post("/tab", d.Workspaces.SelectTab)
				r.Post("/focus/lesson", d.Workspaces.EnterLessonFocus)
				r.Post("/focus/project", d.Workspaces.EnterProjectFocus)
				r.Post("/focus/exit", d.Workspaces.ExitFocus)

				r.Post("/lesson/advance", d.Workspaces.AdvanceLesson)
				r.Post("/lesson/step", d.Workspaces.MoveLessonStep)
				r.Post("/lesson/publish", d.Workspaces.PublishLesson)
				r.Post("/project/step", d.Workspaces.MoveProjectStep)

				r.Get("/lessons", d.Workspaces.Lessons)
				r.Delete("/lessons/{lessonId}/steps/{index}", d.Workspaces.RemoveLessonStep)

				r.Get("/projects", d.Workspaces.Projects)
				r.Get("/projects/{projectId}", d.Workspaces.Project)
				r.Post("/projects/{projectId}/like", d.Workspaces.LikeProject)
				r.Delete("/projects/{projectId}/steps/{index}", d.Workspaces.RemoveProjectStep)

				r.Get("/materials", d.Workspaces.Materials)
				r.Post("/materials/{materialId}/save", d.Workspaces.ToggleSavedMaterial)

				r.Get("/schedule", d.Workspaces.Schedule)
				r.Post("/schedule/{day}/items", d.Workspaces.AddScheduleItem)

				r.Route("/draft", func(r chi.Router) {
					r.Post("/", d.Workspaces.OpenDraft)
					r.Get("/", d.Workspaces.Draft)
					r.Patch("/", d.Workspaces.UpdateDraftField)
					r.Delete("/", d.Workspaces.CloseDraft)
					r.Post("/image", d.Workspaces.SetDraftImage)
					r.Post("/assist", d.Workspaces.RequestDescriptionAssist)
					r.Post("/submit", d.Workspaces.SubmitDraft)
					r.Post("/steps", d.Workspaces.AddDraftStep)
					r.Patch("/steps/{index}", d.Workspaces.UpdateDraftStep)
					r.Delete("/steps/{index}", d.Workspaces.RemoveDraftStep)
				})

				r.Get("/chat", d.Workspaces.ChatMessages)
				r.Post("/chat", d.Workspaces.SendChat)
			})
		})
	})

	return r
}
