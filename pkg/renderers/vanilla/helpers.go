package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func controlID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return "fb-" + trimmed
}

func errorID(id string) string {
	control := controlID(id)
	if control == "" {
		return ""
	}
	return control + "-error"
}

// inputName is the form key a field value posts under, decoded by the HTTP
// host into a map keyed by field id.
func inputName(id string) string {
	return "values[" + id + "]"
}

type themeView struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		Tokens:       copyStringMap(cfg.Tokens),
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(StylesheetName)
	}
	return view
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
