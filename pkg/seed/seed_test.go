package seed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/seed"
)

func TestParseYAML_MatchesDefaultFields(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "fields.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	fields, err := seed.ParseYAML(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(model.DefaultFields(), fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML_TopLevelList(t *testing.T) {
	fields, err := seed.ParseYAML([]byte(`
- id: email
  label: Email
  maxLength: 120
- id: plan
  type: select
  label: Plan
  options: [free, pro]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []model.Field{
		{ID: "email", Kind: model.FieldKindText, Label: "Email", MaxLength: 120},
		{ID: "plan", Kind: model.FieldKindSelect, Label: "Plan", Options: []string{"free", "pro"}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"scalar":        `hello`,
		"no fields":     `fields: []`,
		"missing id":    `[{label: Name}]`,
		"duplicate id":  "- {id: a, label: A}\n- {id: a, label: B}",
		"unknown type":  `[{id: a, type: checkbox}]`,
		"empty options": `[{id: a, type: select}]`,
		"bad yaml":      `fields: [`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := seed.ParseYAML([]byte(input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseOpenAPI_Operation(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "signup.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	fields, err := seed.ParseOpenAPI(context.Background(), data, "createSignup")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []model.Field{
		{ID: "age", Kind: model.FieldKindText, Label: "Age"},
		{ID: "country", Kind: model.FieldKindSelect, Label: "Country", Options: []string{"USA", "India", "Nepal"}, Required: true, Help: "Country of residence"},
		{ID: "fullName", Kind: model.FieldKindText, Label: "Full Name", Required: true, MaxLength: 80},
		{ID: "marketing_opt_in", Kind: model.FieldKindSelect, Label: "Marketing Opt In", Options: []string{"true", "false"}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOpenAPI_MethodPathKey(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "signup.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	fields, err := seed.ParseOpenAPI(context.Background(), data, "post:/newsletter")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []model.Field{{ID: "email", Kind: model.FieldKindText, Label: "Email"}}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOpenAPI_Errors(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "signup.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	t.Run("ambiguous", func(t *testing.T) {
		_, err := seed.ParseOpenAPI(context.Background(), data, "")
		if err == nil || !strings.Contains(err.Error(), "createSignup") {
			t.Fatalf("expected ambiguity error listing candidates, got %v", err)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		if _, err := seed.ParseOpenAPI(context.Background(), data, "deleteSignup"); err == nil {
			t.Fatalf("expected not found error")
		}
	})
	t.Run("no body", func(t *testing.T) {
		if _, err := seed.ParseOpenAPI(context.Background(), data, "listSignups"); err == nil {
			t.Fatalf("expected missing body error")
		}
	})
	t.Run("empty", func(t *testing.T) {
		if _, err := seed.ParseOpenAPI(context.Background(), nil, "createSignup"); err == nil {
			t.Fatalf("expected empty document error")
		}
	})
}

func TestParseOpenAPI_CustomLabeler(t *testing.T) {
	doc := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /x:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                nickName: {type: string}
      responses:
        '200': {description: ok}
`
	fields, err := seed.ParseOpenAPI(context.Background(), []byte(doc), "", seed.WithLabeler(strings.ToUpper))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(fields) != 1 || fields[0].Label != "NICKNAME" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"fullName":         "Full Name",
		"full_name":        "Full Name",
		"marketing-opt-in": "Marketing Opt In",
		"address2":         "Address 2",
		"EMAIL":            "Email",
		"":                 "",
	}
	for input, want := range cases {
		if got := seed.DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLoader_Sources(t *testing.T) {
	payload := "- {id: a, label: A}\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seed.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := seed.NewLoader(
		seed.WithFileSystem(fstest.MapFS{"seed.yaml": {Data: []byte(payload)}}),
		seed.WithHTTPClient(server.Client()),
	)
	sources := map[string]seed.Source{
		"file": seed.SourceFromFile(path),
		"fs":   seed.SourceFromFS("seed.yaml"),
		"url":  seed.SourceFromURL(server.URL + "/seed.yaml"),
	}
	want := []model.Field{{ID: "a", Kind: model.FieldKindText, Label: "A"}}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			fields, err := seed.LoadYAML(context.Background(), loader, src)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("http status", func(t *testing.T) {
		_, err := loader.Load(context.Background(), seed.SourceFromURL(server.URL+"/missing"))
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Fatalf("expected status error, got %v", err)
		}
	})
	t.Run("fs not configured", func(t *testing.T) {
		if _, err := seed.NewLoader().Load(context.Background(), seed.SourceFromFS("seed.yaml")); err == nil {
			t.Fatalf("expected error without filesystem")
		}
	})
}

func TestParseSource(t *testing.T) {
	src, err := seed.ParseSource("https://example.com/openapi.yaml")
	if err != nil || src.Kind() != seed.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = seed.ParseSource("./fields.yaml")
	if err != nil || src.Kind() != seed.SourceKindFile || src.Location() != "fields.yaml" {
		t.Fatalf("expected file source, got %v %v", src, err)
	}
	if _, err := seed.ParseSource("  "); err == nil {
		t.Fatalf("expected error for blank source")
	}
}
