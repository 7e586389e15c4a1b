package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultRequestTimeout caps remote fetches when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// LoaderOption mutates a Loader prior to use.
type LoaderOption func(*Loader)

// WithFileSystem injects an fs.FS used for SourceKindFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithRequestTimeout caps remote fetch durations.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// Loader fetches raw seed documents from files, an fs.FS or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader builds a Loader. HTTP sources use http.DefaultClient unless a
// client is injected.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{
		http:    http.DefaultClient,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load returns the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("seed loader: unsupported source kind")
	}
	if err != nil {
		return nil, fmt.Errorf("seed loader: load %s: %w", src, err)
	}
	return data, nil
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("seed loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("seed loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("seed loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(filesystem, name)
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("seed loader: http client is not configured")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
