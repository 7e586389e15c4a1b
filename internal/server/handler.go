package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/goliatone/go-formbuilder/internal/slogx"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

const emptyLabelNotice = "Please provide a title for the new field"

var errBadRequest = errors.New("bad request")

// widgetInput is the body every widget form posts: the current field values
// and the new field title when the add field input is open.
type widgetInput struct {
	Values map[string]string `form:"values"`
	Label  *string           `form:"label"`
}

type actionFunc func(ctx context.Context, r *http.Request, instance *Instance) error

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	instance, err := s.store.Create()
	if err != nil {
		s.fail(ctx, w, err)
		return
	}
	s.metrics.instancesCreated.Inc()
	s.opts.Logger.InfoContext(ctx, "instance created", slog.String("instance", instance.ID))

	http.Redirect(w, r, s.instanceURL(instance.ID), http.StatusSeeOther)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	s.withInstance(w, r, func(ctx context.Context, instance *Instance) error {
		options := render.RenderOptions{
			Action: s.instanceURL(instance.ID),
			Notice: instance.TakeNotice(),
			Theme:  s.opts.Theme,
		}

		output, err := s.opts.Renderer.Render(ctx, instance.Widget.Snapshot(), options)
		if err != nil {
			return errors.WithStack(err)
		}

		w.Header().Set("Content-Type", s.opts.Renderer.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		_, err = w.Write(output)
		return errors.WithStack(err)
	})
}

type dataResponse struct {
	ID        string          `json:"id"`
	State     model.ViewState `json:"state"`
	Fields    []model.Field   `json:"fields"`
	Values    model.FormData  `json:"values"`
	Errors    model.ErrorMap  `json:"errors"`
	Submitted bool            `json:"submitted"`
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	s.withInstance(w, r, func(ctx context.Context, instance *Instance) error {
		snapshot := instance.Widget.Snapshot()
		payload := dataResponse{
			ID:        instance.ID,
			State:     snapshot.State,
			Fields:    snapshot.Fields,
			Values:    snapshot.Values,
			Errors:    snapshot.Errors,
			Submitted: instance.Recorder.Count() > 0,
		}

		w.Header().Set("Content-Type", "application/json")
		return errors.WithStack(json.NewEncoder(w).Encode(payload))
	})
}

// action decodes the posted widget input, applies it while the widget is
// editing, runs fn and redirects back to the instance page.
func (s *Server) action(fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withInstance(w, r, func(ctx context.Context, instance *Instance) error {
			if err := r.ParseForm(); err != nil {
				return errors.Wrap(errBadRequest, err.Error())
			}

			var input widgetInput
			if err := s.decoder.Decode(&input, r.PostForm); err != nil {
				return errors.Wrap(errBadRequest, err.Error())
			}

			if err := applyInput(instance.Widget, input); err != nil {
				return err
			}
			if err := fn(ctx, r, instance); err != nil {
				return err
			}

			http.Redirect(w, r, s.instanceURL(instance.ID), http.StatusSeeOther)
			return nil
		})
	}
}

// applyInput records posted values for fields that still exist. Inputs are
// only rendered while editing so anything posted from another view is ignored.
func applyInput(w *widget.Widget, input widgetInput) error {
	if w.State() != model.ViewEditing {
		return nil
	}

	known := make(map[string]struct{})
	for _, field := range w.Fields() {
		known[field.ID] = struct{}{}
	}
	for id, value := range input.Values {
		if _, ok := known[id]; !ok {
			continue
		}
		if err := w.SetValue(id, value); err != nil {
			return errors.WithStack(err)
		}
	}
	if input.Label != nil {
		if err := w.SetPendingLabel(*input.Label); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func (s *Server) saveValues(context.Context, *http.Request, *Instance) error {
	return nil
}

func (s *Server) addField(ctx context.Context, _ *http.Request, instance *Instance) error {
	_, err := instance.Widget.ConfirmAddField(ctx)
	if errors.Is(err, widget.ErrEmptyLabel) {
		instance.SetNotice(emptyLabelNotice)
		return nil
	}
	if err != nil {
		return errors.WithStack(err)
	}
	s.metrics.fieldsAdded.Inc()
	return nil
}

func (s *Server) removeField(ctx context.Context, r *http.Request, instance *Instance) error {
	removed, err := instance.Widget.RemoveField(ctx, r.PathValue("field"))
	if err != nil {
		return errors.WithStack(err)
	}
	if removed {
		s.metrics.fieldsRemoved.Inc()
	}
	return nil
}

func (s *Server) openAddField(_ context.Context, _ *http.Request, instance *Instance) error {
	return errors.WithStack(instance.Widget.OpenAddField())
}

func (s *Server) cancelAddField(_ context.Context, _ *http.Request, instance *Instance) error {
	return errors.WithStack(instance.Widget.CancelAddField())
}

func (s *Server) togglePreview(ctx context.Context, _ *http.Request, instance *Instance) error {
	return errors.WithStack(instance.Widget.TogglePreview(ctx))
}

func (s *Server) submit(ctx context.Context, _ *http.Request, instance *Instance) error {
	errs, err := instance.Widget.Submit(ctx)
	switch {
	case errors.Is(err, widget.ErrSubmitted), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errors.WithStack(err)
	case err != nil:
		s.metrics.submissions.WithLabelValues(outcomeDisplayError).Inc()
		return errors.WithStack(err)
	case errs.Empty():
		s.metrics.submissions.WithLabelValues(outcomeValid).Inc()
	default:
		s.metrics.submissions.WithLabelValues(outcomeInvalid).Inc()
	}
	return nil
}

func (s *Server) withInstance(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, instance *Instance) error) {
	id := r.PathValue("id")
	ctx := slogx.WithAttrs(r.Context(), slog.String("instance", id))

	instance, ok := s.store.Get(id)
	if !ok {
		http.Error(w, "form not found", http.StatusNotFound)
		return
	}

	instance.Lock()
	defer instance.Unlock()

	if err := fn(ctx, instance); err != nil {
		s.fail(ctx, w, err)
	}
}

func (s *Server) fail(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, widget.ErrSubmitted), errors.Is(err, widget.ErrNotEditing):
		http.Error(w, errors.Cause(err).Error(), http.StatusConflict)
	case errors.Is(err, ErrTooManyInstances):
		http.Error(w, "too many open forms, try again later", http.StatusServiceUnavailable)
	default:
		s.opts.Logger.ErrorContext(ctx, "request failed", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
