package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/form"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloghttp "github.com/samber/slog-http"

	"github.com/goliatone/go-formbuilder/internal/slogx"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

type Server struct {
	opts    *Options
	store   *Store
	metrics *Metrics
	decoder *form.Decoder

	once    sync.Once
	handler http.Handler
	err     error
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	store := NewStore(opts.Factory, opts.Display, opts.TTL, opts.Max)
	return &Server{
		opts:    opts,
		store:   store,
		metrics: NewMetrics(opts.Registry, func() float64 { return float64(store.Len()) }),
		decoder: form.NewDecoder(),
	}
}

// Store exposes the instance store.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the HTTP handler with logging and recovery middleware.
func (s *Server) Handler() (http.Handler, error) {
	s.once.Do(func() {
		if s.opts.Renderer == nil {
			renderer, err := vanilla.New()
			if err != nil {
				s.err = errors.WithStack(err)
				return
			}
			s.opts.Renderer = renderer
		}

		mux := &http.ServeMux{}
		mount(mux, s.basePath()+"/", s.routes())

		var handler http.Handler = mux
		handler = sloghttp.Recovery(handler)
		handler = sloghttp.New(s.opts.Logger)(handler)
		s.handler = handler
	})
	return s.handler, s.err
}

func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	server := http.Server{
		Addr:    s.opts.Address,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		if err := server.Close(); err != nil {
			s.opts.Logger.ErrorContext(ctx, "could not close server", slogx.Error(errors.WithStack(err)))
		}
	}()

	if s.opts.TTL > 0 {
		go s.sweep(ctx, s.opts.TTL/2)
	}

	s.opts.Logger.InfoContext(ctx, "listening", slog.String("address", s.opts.Address), slog.String("base_url", s.basePath()+"/"))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.store.Sweep(); removed > 0 {
				s.opts.Logger.DebugContext(ctx, "expired instances evicted", slog.Int("count", removed))
			}
		}
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleCreate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	if s.opts.Assets != nil {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(s.opts.Assets)))
	}

	mux.HandleFunc("GET /w/{id}", s.handleShow)
	mux.HandleFunc("GET /w/{id}/data.json", s.handleData)
	mux.HandleFunc("POST /w/{id}/values", s.action(s.saveValues))
	mux.HandleFunc("POST /w/{id}/fields", s.action(s.addField))
	mux.HandleFunc("POST /w/{id}/fields/{field}/delete", s.action(s.removeField))
	mux.HandleFunc("POST /w/{id}/add-field/open", s.action(s.openAddField))
	mux.HandleFunc("POST /w/{id}/add-field/cancel", s.action(s.cancelAddField))
	mux.HandleFunc("POST /w/{id}/preview", s.action(s.togglePreview))
	mux.HandleFunc("POST /w/{id}/submit", s.action(s.submit))

	return mux
}

func (s *Server) basePath() string {
	return strings.TrimRight(s.opts.BaseURL, "/")
}

func (s *Server) instanceURL(id string) string {
	return s.basePath() + "/w/" + id
}

func mount(mux *http.ServeMux, prefix string, handler http.Handler) {
	trimmed := strings.TrimSuffix(prefix, "/")

	if len(trimmed) > 0 {
		mux.Handle(prefix, http.StripPrefix(trimmed, handler))
	} else {
		mux.Handle(prefix, handler)
	}
}
