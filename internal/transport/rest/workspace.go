package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/service/workspace"
	"github.com/heartmarshall/makerlab-backend/pkg/ctxutil"
)

type registry interface {
	Create() (*workspace.Workspace, error)
	Get(id uuid.UUID) (*workspace.Workspace, error)
	Remove(id uuid.UUID) bool
}

type tokenIssuer interface {
	GenerateWorkspaceToken(workspaceID uuid.UUID) (string, error)
	TTL() time.Duration
}

type workspaceCtxKey struct{}

// WorkspaceHandler serves the workspace REST endpoints.
type WorkspaceHandler struct {
	reg           registry
	tokens        tokenIssuer
	requireSignIn bool
	log           *slog.Logger
}

// NewWorkspaceHandler creates a WorkspaceHandler. When requireSignIn is set,
// everything except the session endpoints answers 401 until the workspace
// has a signed-in identity.
func NewWorkspaceHandler(reg registry, tokens tokenIssuer, requireSignIn bool, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		reg:           reg,
		tokens:        tokens,
		requireSignIn: requireSignIn,
		log:           logger.With("handler", "workspace"),
	}
}

// ---------------------------------------------------------------------------
// Lifecycle and middleware
// ---------------------------------------------------------------------------

type createWorkspaceResponse struct {
	WorkspaceID string    `json:"workspaceId"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Create handles POST /workspaces.
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ws, err := h.reg.Create()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	token, err := h.tokens.GenerateWorkspaceToken(ws.ID())
	if err != nil {
		h.reg.Remove(ws.ID())
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, createWorkspaceResponse{
		WorkspaceID: ws.ID().String(),
		Token:       token,
		ExpiresAt:   time.Now().Add(h.tokens.TTL()),
	})
}

// Resolve loads the workspace named by the authenticated token.
func (h *WorkspaceHandler) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := ctxutil.WorkspaceIDFromCtx(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing workspace token")
			return
		}
		ws, err := h.reg.Get(id)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		ctx := context.WithValue(r.Context(), workspaceCtxKey{}, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSignIn is the optional login gate.
func (h *WorkspaceHandler) RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.requireSignIn && !workspaceFrom(r).Session().SignedIn() {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func workspaceFrom(r *http.Request) *workspace.Workspace {
	ws, _ := r.Context().Value(workspaceCtxKey{}).(*workspace.Workspace)
	return ws
}

// Close handles DELETE /workspace.
func (h *WorkspaceHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.reg.Remove(workspaceFrom(r).ID())
	w.WriteHeader(http.StatusNoContent)
}

// Snapshot handles GET /workspace.
func (h *WorkspaceHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r, http.StatusOK)
}

func (h *WorkspaceHandler) snapshot(r *http.Request) (snapshotResponse, error) {
	s, err := workspaceFrom(r).Snapshot()
	if err != nil {
		return snapshotResponse{}, err
	}
	return toSnapshotResponse(s), nil
}

func (h *WorkspaceHandler) writeSnapshot(w http.ResponseWriter, r *http.Request, status int) {
	s, err := h.snapshot(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, s)
}

// ---------------------------------------------------------------------------
// Navigation and lesson path
// ---------------------------------------------------------------------------

type selectTabRequest struct {
	Tab string `json:"tab"`
}

type changeResponse struct {
	Changed   bool             `json:"changed"`
	Workspace snapshotResponse `json:"workspace"`
}

// SelectTab handles POST /workspace/tab.
func (h *WorkspaceHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	var req selectTabRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	changed, err := workspaceFrom(r).SelectTab(domain.Tab(req.Tab))
	h.respondChange(w, r, changed, err)
}

func (h *WorkspaceHandler) respondChange(w http.ResponseWriter, r *http.Request, changed bool, err error) {
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	s, err := h.snapshot(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, changeResponse{Changed: changed, Workspace: s})
}

// EnterLessonFocus handles POST /workspace/focus/lesson.
func (h *WorkspaceHandler) EnterLessonFocus(w http.ResponseWriter, r *http.Request) {
	h.respondChange(w, r, true, workspaceFrom(r).EnterLessonFocus())
}

type projectFocusRequest struct {
	ProjectID string `json:"projectId"`
}

// EnterProjectFocus handles POST /workspace/focus/project.
func (h *WorkspaceHandler) EnterProjectFocus(w http.ResponseWriter, r *http.Request) {
	var req projectFocusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respondChange(w, r, true, workspaceFrom(r).EnterProjectFocus(req.ProjectID))
}

// ExitFocus handles POST /workspace/focus/exit.
func (h *WorkspaceHandler) ExitFocus(w http.ResponseWriter, r *http.Request) {
	h.respondChange(w, r, true, workspaceFrom(r).ExitFocus())
}

// AdvanceLesson handles POST /workspace/lesson/advance.
func (h *WorkspaceHandler) AdvanceLesson(w http.ResponseWriter, r *http.Request) {
	moved, err := workspaceFrom(r).AdvanceLesson()
	h.respondChange(w, r, moved, err)
}

type stepMoveRequest struct {
	Move  string `json:"move"`
	Index int    `json:"index"`
}

func (req stepMoveRequest) parse() (workspace.StepMove, error) {
	switch req.Move {
	case "", "select":
		return workspace.StepSelect, nil
	case "next":
		return workspace.StepNext, nil
	case "prev":
		return workspace.StepPrev, nil
	}
	return 0, domain.NewValidationError("move", "must be select, next or prev")
}

// MoveLessonStep handles POST /workspace/lesson/step.
func (h *WorkspaceHandler) MoveLessonStep(w http.ResponseWriter, r *http.Request) {
	var req stepMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	move, err := req.parse()
	if err == nil {
		err = workspaceFrom(r).MoveLessonStep(move, req.Index)
	}
	h.respondChange(w, r, err == nil, err)
}

// MoveProjectStep handles POST /workspace/project/step.
func (h *WorkspaceHandler) MoveProjectStep(w http.ResponseWriter, r *http.Request) {
	var req stepMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	move, err := req.parse()
	if err == nil {
		err = workspaceFrom(r).MoveProjectStep(move, req.Index)
	}
	h.respondChange(w, r, err == nil, err)
}

type publishResponse struct {
	Published bool             `json:"published"`
	Project   *projectResponse `json:"project,omitempty"`
	Workspace snapshotResponse `json:"workspace"`
}

// PublishLesson handles POST /workspace/lesson/publish. It returns once the
// publish delay has elapsed.
func (h *WorkspaceHandler) PublishLesson(w http.ResponseWriter, r *http.Request) {
	res, err := workspaceFrom(r).PublishLesson(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	s, err := h.snapshot(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	resp := publishResponse{Published: res.Published, Workspace: s}
	if res.Published {
		p := toProjectResponse(res.Project)
		resp.Project = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

type removedResponse struct {
	Removed bool `json:"removed"`
}

// RemoveLessonStep handles DELETE /workspace/lessons/{lessonId}/steps/{index}.
func (h *WorkspaceHandler) RemoveLessonStep(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	removed, err := workspaceFrom(r).RemoveLessonStep(chi.URLParam(r, "lessonId"), idx)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, removedResponse{Removed: removed})
}

// RemoveProjectStep handles DELETE /workspace/projects/{projectId}/steps/{index}.
func (h *WorkspaceHandler) RemoveProjectStep(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	removed, err := workspaceFrom(r).RemoveProjectStep(chi.URLParam(r, "projectId"), idx)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, removedResponse{Removed: removed})
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "step index must be an integer")
		return 0, false
	}
	return idx, true
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// Lessons handles GET /workspace/lessons.
func (h *WorkspaceHandler) Lessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := workspaceFrom(r).Lessons()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]lessonResponse, len(lessons))
	for i, l := range lessons {
		out[i] = toLessonResponse(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{"lessons": out})
}

type projectsResponse struct {
	Projects   []projectResponse `json:"projects"`
	Categories []string          `json:"categories"`
}

// Projects handles GET /workspace/projects?category=&q=.
func (h *WorkspaceHandler) Projects(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	q := r.URL.Query()
	projects, err := ws.Projects(domain.ProjectFilter{Category: q.Get("category"), Query: q.Get("q")})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	categories, err := ws.ProjectCategories()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, projectsResponse{Projects: toProjectResponses(projects), Categories: categories})
}

// Project handles GET /workspace/projects/{projectId}.
func (h *WorkspaceHandler) Project(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")
	p, ok, err := workspaceFrom(r).Project(id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "project "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// LikeProject handles POST /workspace/projects/{projectId}/like.
func (h *WorkspaceHandler) LikeProject(w http.ResponseWriter, r *http.Request) {
	likes, err := workspaceFrom(r).LikeProject(chi.URLParam(r, "projectId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"likes": likes})
}

// Materials handles GET /workspace/materials?category=&q=.
func (h *WorkspaceHandler) Materials(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	q := r.URL.Query()
	materials, err := ws.Materials(domain.MaterialFilter{Category: q.Get("category"), Query: q.Get("q")})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	saved, err := ws.SavedMaterials()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	isSaved := make(map[string]bool, len(saved))
	for _, id := range saved {
		isSaved[id] = true
	}

	out := make([]materialResponse, len(materials))
	for i, m := range materials {
		out[i] = materialResponse{
			ID:          m.ID,
			Name:        m.Name,
			Category:    m.Category,
			Quantity:    m.Quantity,
			Status:      m.Status.String(),
			PriceRange:  m.PriceRange,
			ImageURL:    m.ImageURL,
			ExternalURL: m.ExternalURL,
			Description: m.Description,
			CommonUses:  nonNil(m.CommonUses),
			Saved:       isSaved[m.ID],
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"materials": out, "saved": nonNil(saved)})
}

// ToggleSavedMaterial handles POST /workspace/materials/{materialId}/save.
func (h *WorkspaceHandler) ToggleSavedMaterial(w http.ResponseWriter, r *http.Request) {
	saved, err := workspaceFrom(r).ToggleSavedMaterial(chi.URLParam(r, "materialId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// Schedule handles GET /workspace/schedule.
func (h *WorkspaceHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	days, err := workspaceFrom(r).Schedule()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": toScheduleResponse(days)})
}

// AddScheduleItem handles POST /workspace/schedule/{day}/items.
func (h *WorkspaceHandler) AddScheduleItem(w http.ResponseWriter, r *http.Request) {
	var req scheduleItemResponse
	if !decodeJSON(w, r, &req) {
		return
	}
	added, err := workspaceFrom(r).AddScheduleItem(chi.URLParam(r, "day"), domain.ScheduleItem{
		Kind:        domain.ActivityKind(req.Kind),
		Title:       req.Title,
		Time:        req.Time,
		Audience:    req.Audience,
		Description: req.Description,
		Instructor:  req.Instructor,
		LessonID:    req.LessonID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}
