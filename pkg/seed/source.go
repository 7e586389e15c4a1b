package seed

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies where a seed document lives.
type Source struct {
	kind     SourceKind
	location string
}

func (s Source) Kind() SourceKind {
	return s.kind
}

func (s Source) Location() string {
	return s.location
}

func (s Source) String() string {
	return string(s.kind) + ":" + s.location
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return Source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source identifying a resource inside the loader's
// fs.FS.
func SourceFromFS(name string) Source {
	return Source{kind: SourceKindFS, location: name}
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	src, err := parseURLSource(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}

// ParseSource maps configuration strings onto a Source: http(s) URLs become
// URL sources, everything else a file path.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("seed: empty source")
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return parseURLSource(raw)
	}
	return SourceFromFile(raw), nil
}

func parseURLSource(raw string) (Source, error) {
	if raw == "" {
		return Source{}, fmt.Errorf("seed: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return Source{}, fmt.Errorf("seed: invalid URL %q: %w", raw, err)
	}
	return Source{kind: SourceKindURL, location: raw}, nil
}
