package rest

import (
	"net/http"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/service/curation"
)

type draftFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type draftImageRequest struct {
	URL string `json:"url"`
}

type assistResponse struct {
	Applied     bool          `json:"applied"`
	Description string        `json:"description,omitempty"`
	Notice      string        `json:"notice,omitempty"`
	Draft       draftResponse `json:"draft"`
}

func (h *WorkspaceHandler) respondDraft(w http.ResponseWriter, r *http.Request, status int, d curation.Draft, err error) {
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, toDraftResponse(d))
}

// OpenDraft handles POST /workspace/draft.
func (h *WorkspaceHandler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	d, err := workspaceFrom(r).OpenDraft()
	h.respondDraft(w, r, http.StatusCreated, d, err)
}

// CloseDraft handles DELETE /workspace/draft.
func (h *WorkspaceHandler) CloseDraft(w http.ResponseWriter, r *http.Request) {
	if err := workspaceFrom(r).CloseDraft(); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Draft handles GET /workspace/draft.
func (h *WorkspaceHandler) Draft(w http.ResponseWriter, r *http.Request) {
	d, err := workspaceFrom(r).Draft()
	h.respondDraft(w, r, http.StatusOK, d, err)
}

// UpdateDraftField handles PATCH /workspace/draft.
func (h *WorkspaceHandler) UpdateDraftField(w http.ResponseWriter, r *http.Request) {
	var req draftFieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := workspaceFrom(r).UpdateDraftField(req.Field, req.Value)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

// SetDraftImage handles POST /workspace/draft/image. The image is probed in
// the background; imageValid flips once the probe completes.
func (h *WorkspaceHandler) SetDraftImage(w http.ResponseWriter, r *http.Request) {
	var req draftImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := workspaceFrom(r).SetDraftImage(req.URL)
	h.respondDraft(w, r, http.StatusAccepted, d, err)
}

// AddDraftStep handles POST /workspace/draft/steps.
func (h *WorkspaceHandler) AddDraftStep(w http.ResponseWriter, r *http.Request) {
	d, err := workspaceFrom(r).AddDraftStep()
	h.respondDraft(w, r, http.StatusOK, d, err)
}

// UpdateDraftStep handles PATCH /workspace/draft/steps/{index}.
func (h *WorkspaceHandler) UpdateDraftStep(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req draftFieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := workspaceFrom(r).UpdateDraftStep(idx, req.Field, req.Value)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

// RemoveDraftStep handles DELETE /workspace/draft/steps/{index}.
func (h *WorkspaceHandler) RemoveDraftStep(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	d, err := workspaceFrom(r).RemoveDraftStep(idx)
	h.respondDraft(w, r, http.StatusOK, d, err)
}

// RequestDescriptionAssist handles POST /workspace/draft/assist.
func (h *WorkspaceHandler) RequestDescriptionAssist(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	out, err := ws.RequestDescriptionAssist(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	d, err := ws.Draft()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, assistResponse{
		Applied:     out.Applied,
		Description: out.Description,
		Notice:      out.Notice,
		Draft:       toDraftResponse(d),
	})
}

type submitResponse struct {
	Project   projectResponse  `json:"project"`
	Workspace snapshotResponse `json:"workspace"`
}

// SubmitDraft handles POST /workspace/draft/submit.
func (h *WorkspaceHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	p, err := workspaceFrom(r).SubmitDraft()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	s, err := h.snapshot(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{Project: toProjectResponse(p), Workspace: s})
}

// ---------------------------------------------------------------------------
// Mentor chat
// ---------------------------------------------------------------------------

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Sent     bool                  `json:"sent"`
	Reply    *chatMessageResponse  `json:"reply,omitempty"`
	Messages []chatMessageResponse `json:"messages"`
}

// ChatMessages handles GET /workspace/chat.
func (h *WorkspaceHandler) ChatMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := workspaceFrom(r).ChatMessages()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Sent: false, Messages: toChatResponses(msgs)})
}

// SendChat handles POST /workspace/chat. Blank input is accepted and ignored.
func (h *WorkspaceHandler) SendChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ws := workspaceFrom(r)
	reply, sent, err := ws.SendChat(r.Context(), req.Text)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	msgs, err := ws.ChatMessages()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	resp := chatResponse{Sent: sent, Messages: toChatResponses(msgs)}
	if sent {
		m := toChatResponses([]domain.ChatMessage{reply})[0]
		resp.Reply = &m
	}
	writeJSON(w, http.StatusOK, resp)
}
