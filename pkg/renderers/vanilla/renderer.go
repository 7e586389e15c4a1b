package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	stylesheet       string
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet. A theme asset for
// StylesheetName takes precedence.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// Renderer renders widget snapshots as full HTML documents. Every control
// posts back to RenderOptions.Action so the page works without scripts.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	styles    string
	link      string
	title     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		title:      "Form Builder",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	out := &Renderer{
		templates: renderer,
		policy:    bluemonday.UGCPolicy(),
		link:      cfg.stylesheet,
		title:     cfg.title,
	}
	if cfg.inlineStyles {
		out.styles = defaultStylesheet()
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render picks the view template from the snapshot state and wraps it in the
// page layout.
func (r *Renderer) Render(_ context.Context, snapshot widget.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	view := r.buildView(snapshot, options)

	var name string
	switch snapshot.State {
	case model.ViewEditing:
		name = "templates/editing.tmpl"
	case model.ViewPreviewing:
		name = "templates/preview.tmpl"
	case model.ViewSubmitted:
		name = "templates/details.tmpl"
	default:
		return nil, fmt.Errorf("vanilla renderer: unsupported view state %v", snapshot.State)
	}

	body, err := r.templates.RenderTemplate(name, view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", snapshot.State, err)
	}
	view.Body = body

	page, err := r.templates.RenderTemplate("templates/page.tmpl", view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(page), nil
}

type pageView struct {
	Title        string            `json:"title"`
	State        string            `json:"state"`
	Action       string            `json:"action"`
	Notice       string            `json:"notice,omitempty"`
	Fields       []fieldView       `json:"fields"`
	Entries      []details.Entry   `json:"entries,omitempty"`
	Hidden       []hiddenView      `json:"hidden,omitempty"`
	HasErrors    bool              `json:"has_errors"`
	AddFieldOpen bool              `json:"add_field_open"`
	PendingLabel string            `json:"pending_label"`
	Classes      map[string]string `json:"classes"`
	Theme        themeView         `json:"theme"`
	Styles       string            `json:"styles,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
	Body         string            `json:"body,omitempty"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Label       string       `json:"label"`
	ControlID   string       `json:"control_id"`
	ErrorID     string       `json:"error_id"`
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	Error       string       `json:"error,omitempty"`
	Required    bool         `json:"required"`
	Placeholder string       `json:"placeholder,omitempty"`
	Help        string       `json:"help,omitempty"`
	MaxLength   int          `json:"max_length,omitempty"`
	Options     []optionView `json:"options,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *Renderer) buildView(snapshot widget.Snapshot, options render.RenderOptions) pageView {
	view := pageView{
		Title:        r.title,
		State:        snapshot.State.String(),
		Action:       strings.TrimRight(options.Action, "/"),
		Notice:       options.Notice,
		Fields:       make([]fieldView, 0, len(snapshot.Fields)),
		HasErrors:    !snapshot.Errors.Empty(),
		AddFieldOpen: snapshot.AddFieldOpen,
		PendingLabel: snapshot.PendingLabel,
		Classes:      chromeClasses(),
		Theme:        buildThemeView(options.Theme),
		Styles:       r.styles,
		Stylesheet:   r.link,
	}
	if view.Theme.Stylesheet != "" {
		view.Stylesheet = view.Theme.Stylesheet
	}

	for _, field := range snapshot.Fields {
		view.Fields = append(view.Fields, r.buildField(field, snapshot))
	}
	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		view.Hidden = append(view.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}
	if snapshot.State == model.ViewSubmitted {
		view.Entries = details.Submission{Fields: snapshot.Fields, Data: snapshot.Values}.Entries()
	}
	return view
}

func (r *Renderer) buildField(field model.Field, snapshot widget.Snapshot) fieldView {
	value := snapshot.Values.Get(field.ID)
	out := fieldView{
		ID:          field.ID,
		Kind:        string(field.Kind),
		Label:       field.Label,
		ControlID:   controlID(field.ID),
		ErrorID:     errorID(field.ID),
		Name:        inputName(field.ID),
		Value:       value,
		Error:       snapshot.Errors[field.ID],
		Required:    field.Required,
		Placeholder: field.Placeholder,
		MaxLength:   field.MaxLength,
	}
	if help := strings.TrimSpace(field.Help); help != "" {
		out.Help = r.policy.Sanitize(help)
	}

	switch variant := field.Variant().(type) {
	case model.TextVariant:
	case model.SelectVariant:
		out.Options = make([]optionView, 0, len(variant.Options))
		for _, option := range variant.Options {
			out.Options = append(out.Options, optionView{Value: option, Selected: option == value})
		}
	}
	return out
}
