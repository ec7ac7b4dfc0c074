package workspace

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/service/curation"
	"github.com/heartmarshall/makerlab-backend/internal/service/mentor"
)

// OpenDraft starts a fresh project draft, discarding any current one.
func (w *Workspace) OpenDraft() (curation.Draft, error) {
	if err := w.lock(); err != nil {
		return curation.Draft{}, err
	}
	defer w.mu.Unlock()
	w.draft.Open()
	d, _ := w.draft.Draft()
	return d, nil
}

// CloseDraft discards the draft.
func (w *Workspace) CloseDraft() error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	w.draft.Close()
	return nil
}

// Draft returns the open draft.
func (w *Workspace) Draft() (curation.Draft, error) {
	if err := w.lock(); err != nil {
		return curation.Draft{}, err
	}
	defer w.mu.Unlock()
	d, ok := w.draft.Draft()
	if !ok {
		return curation.Draft{}, curation.ErrNoDraft
	}
	return d, nil
}

// UpdateDraftField sets one draft field. Setting the image URL starts a
// background probe of the new URL.
func (w *Workspace) UpdateDraftField(field, value string) (curation.Draft, error) {
	if field == curation.FieldImageURL {
		return w.SetDraftImage(value)
	}
	return w.editDraft(func(f *curation.Flow) error { return f.UpdateField(field, value) })
}

// AddDraftStep appends the template step.
func (w *Workspace) AddDraftStep() (curation.Draft, error) {
	return w.editDraft(func(f *curation.Flow) error { return f.AddStep() })
}

// UpdateDraftStep sets one field of a draft step.
func (w *Workspace) UpdateDraftStep(idx int, field, value string) (curation.Draft, error) {
	return w.editDraft(func(f *curation.Flow) error { return f.UpdateStep(idx, field, value) })
}

// RemoveDraftStep deletes a draft step.
func (w *Workspace) RemoveDraftStep(idx int) (curation.Draft, error) {
	return w.editDraft(func(f *curation.Flow) error { return f.RemoveStep(idx) })
}

func (w *Workspace) editDraft(fn func(*curation.Flow) error) (curation.Draft, error) {
	if err := w.lock(); err != nil {
		return curation.Draft{}, err
	}
	defer w.mu.Unlock()
	if err := fn(w.draft); err != nil {
		return curation.Draft{}, err
	}
	d, _ := w.draft.Draft()
	return d, nil
}

// SetDraftImage stores the preview URL and probes it in the background. The
// validity flag is only updated if the URL is still current when the probe
// returns.
func (w *Workspace) SetDraftImage(url string) (curation.Draft, error) {
	if err := w.lock(); err != nil {
		return curation.Draft{}, err
	}
	defer w.mu.Unlock()
	if !w.draft.IsOpen() {
		return curation.Draft{}, curation.ErrNoDraft
	}
	if w.draft.SetImageURL(url) && w.deps.Images != nil {
		w.bg.Add(1)
		go w.probeImage(url)
	}
	d, _ := w.draft.Draft()
	return d, nil
}

func (w *Workspace) probeImage(url string) {
	defer w.bg.Done()

	valid, err := w.deps.Images.Probe(w.ctx, url)
	if err != nil {
		w.log.Debug("image probe rejected url", slog.String("error", err.Error()))
		valid = false
	}

	if w.lock() != nil {
		return
	}
	defer w.mu.Unlock()
	w.draft.ApplyImageProbe(url, valid)
}

// AssistOutcome reports what a description-assist request did.
type AssistOutcome struct {
	Applied     bool
	Description string
	// Notice is shown instead when no description could be generated.
	Notice string
}

// RequestDescriptionAssist asks the mentor backend for a short project
// description. It does nothing until the draft has a title. On failure the
// description is left unchanged and a notice is returned.
func (w *Workspace) RequestDescriptionAssist(ctx context.Context) (AssistOutcome, error) {
	if err := w.lock(); err != nil {
		return AssistOutcome{}, err
	}
	if !w.draft.IsOpen() {
		w.mu.Unlock()
		return AssistOutcome{}, curation.ErrNoDraft
	}
	req, ok := w.draft.AssistRequest()
	w.mu.Unlock()
	if !ok {
		return AssistOutcome{}, nil
	}

	text, err := w.complete(ctx, req.Prompt, req.Context)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			w.log.WarnContext(ctx, "description assist failed", slog.String("error", err.Error()))
		}
		return AssistOutcome{Notice: mentor.Reply(text, err)}, nil
	}
	text = strings.TrimSpace(text)

	if err := w.lock(); err != nil {
		return AssistOutcome{}, err
	}
	defer w.mu.Unlock()
	applied := w.draft.ApplyAssist(req.Generation, text)
	return AssistOutcome{Applied: applied, Description: text}, nil
}

// SubmitDraft publishes the draft to the gallery and shows the gallery.
// Nothing changes when validation fails.
func (w *Workspace) SubmitDraft() (domain.Project, error) {
	if err := w.lock(); err != nil {
		return domain.Project{}, err
	}
	defer w.mu.Unlock()

	if !w.draft.IsOpen() {
		return domain.Project{}, curation.ErrNoDraft
	}
	p, err := w.draft.Submit(w.nextProjectID("p-custom"), w.deps.Now())
	if err != nil {
		return domain.Project{}, err
	}
	if err := w.content.AddProject(p); err != nil {
		return domain.Project{}, err
	}
	w.nav.Show(domain.TabProjectGallery)

	w.log.Info("project submitted", slog.String("project_id", p.ID), slog.String("title", p.Title))
	return p, nil
}
