package themes

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base manifest, every token becomes a "--<token>" CSS
// custom property, and AssetURL joins the effective prefix with the file
// registered for a key.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant, hasVariant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	var cssVars map[string]string
	if len(tokens) > 0 {
		cssVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cssVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		Partials: partials,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
