package themes_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/themes"
)

const manifestsYAML = `
themes:
  - name: acme
    version: 1.0.0
    tokens:
      brand: "#123456"
      text: "#111111"
    templates:
      forms.input: themes/acme/input.tmpl
    assets:
      prefix: /assets/themes/acme
      files:
        formbuilder-vanilla.css: theme.css
    variants:
      dark:
        tokens:
          brand: "#654321"
        assets:
          files:
            formbuilder-vanilla.css: theme.dark.css
  - name: plain
    version: 0.1.0
`

func TestParseManifests(t *testing.T) {
	manifests, err := themes.ParseManifests([]byte(manifestsYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
	if manifests[0].Name != "acme" || manifests[0].Tokens["brand"] != "#123456" {
		t.Fatalf("unexpected manifest %+v", manifests[0])
	}
	if manifests[0].Variants["dark"].Tokens["brand"] != "#654321" {
		t.Fatalf("variant tokens not decoded")
	}
}

func TestParseManifests_Single(t *testing.T) {
	manifests, err := themes.ParseManifests([]byte("name: solo\ntokens:\n  brand: red\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Name != "solo" {
		t.Fatalf("unexpected manifests %+v", manifests)
	}
}

func TestParseManifests_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":    "",
		"nameless": "themes:\n  - version: 1.0.0\n",
		"invalid":  "themes: [",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := themes.ParseManifests([]byte(input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	if err := os.WriteFile(path, []byte(manifestsYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	manifests, err := themes.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
}

func newSelector(t *testing.T, defaultTheme, defaultVariant string) *themes.Selector {
	t.Helper()
	manifests, err := themes.ParseManifests([]byte(manifestsYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	selector, err := themes.NewSelector(manifests, defaultTheme, defaultVariant)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return selector
}

func TestSelector_Select(t *testing.T) {
	selector := newSelector(t, "", "dark")

	if diff := cmp.Diff([]string{"acme", "plain"}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if selector.Provider() == nil {
		t.Fatalf("expected provider")
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select defaults: %v", err)
	}
	if selection.Theme != "acme" || selection.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}

	selection, err = selector.Select("plain", "")
	if err != nil {
		t.Fatalf("select plain: %v", err)
	}
	if selection.Variant != "" {
		t.Fatalf("default variant must only apply to the default theme, got %q", selection.Variant)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, themes.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select("acme", "neon"); !errors.Is(err, themes.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestNewSelector_Errors(t *testing.T) {
	if _, err := themes.NewSelector(nil, "", ""); err == nil {
		t.Fatalf("expected error without manifests")
	}
	manifests, err := themes.ParseManifests([]byte(manifestsYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := themes.NewSelector(manifests, "missing", ""); !errors.Is(err, themes.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestRendererConfig_MergesVariant(t *testing.T) {
	selection, err := newSelector(t, "acme", "").Select("acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := themes.RendererConfig(selection)
	if cfg == nil {
		t.Fatalf("expected renderer config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme %s/%s", cfg.Theme, cfg.Variant)
	}

	wantVars := map[string]string{"--brand": "#654321", "--text": "#111111"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("partials not carried over: %v", cfg.Partials)
	}
	if got := cfg.AssetURL("formbuilder-vanilla.css"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("unknown"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestRendererConfig_BaseVariant(t *testing.T) {
	selection, err := newSelector(t, "acme", "").Select("acme", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := themes.RendererConfig(selection)
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("expected base token, got %q", cfg.CSSVars["--brand"])
	}
	if got := cfg.AssetURL("formbuilder-vanilla.css"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if themes.RendererConfig(nil) != nil {
		t.Fatalf("nil selection must yield nil config")
	}
}
