package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseEnvironment_Defaults(t *testing.T) {
	conf, err := ParseEnvironment(map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := &Config{
		Logger:    Logger{Level: slog.LevelInfo},
		HTTP:      HTTP{BaseURL: "/", Address: ":3003"},
		Instances: Instances{TTL: 30 * time.Minute, Max: 1000},
	}
	if diff := cmp.Diff(want, conf); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnvironment_Overrides(t *testing.T) {
	conf, err := ParseEnvironment(map[string]string{
		"FORMBUILDER_LOGGER_LEVEL":         "debug",
		"FORMBUILDER_HTTP_ADDRESS":         "127.0.0.1:8080",
		"FORMBUILDER_INSTANCES_TTL":        "5m",
		"FORMBUILDER_INSTANCES_MAX":        "10",
		"FORMBUILDER_SEED_OPENAPI":         "https://example.com/openapi.yaml",
		"FORMBUILDER_SEED_OPERATION":       "createSignup",
		"FORMBUILDER_THEME_NAME":           "acme",
		"FORMBUILDER_THEME_VARIANT":        "dark",
		"FORMBUILDER_REQUIRE_ADDED_FIELDS": "true",
		"UNPREFIXED_HTTP_ADDRESS":          ":1",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if conf.Logger.Level != slog.LevelDebug {
		t.Errorf("unexpected level %v", conf.Logger.Level)
	}
	if conf.HTTP.Address != "127.0.0.1:8080" {
		t.Errorf("unexpected address %q", conf.HTTP.Address)
	}
	if conf.Instances.TTL != 5*time.Minute || conf.Instances.Max != 10 {
		t.Errorf("unexpected instances %+v", conf.Instances)
	}
	if conf.Seed.OpenAPI != "https://example.com/openapi.yaml" || conf.Seed.Operation != "createSignup" {
		t.Errorf("unexpected seed %+v", conf.Seed)
	}
	if conf.Theme.Name != "acme" || conf.Theme.Variant != "dark" {
		t.Errorf("unexpected theme %+v", conf.Theme)
	}
	if !conf.RequireAddedFields {
		t.Errorf("expected require added fields")
	}
}

func TestParseEnvironment_Invalid(t *testing.T) {
	if _, err := ParseEnvironment(map[string]string{"FORMBUILDER_INSTANCES_MAX": "lots"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
