package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RecipesURL != DefaultRecipesURL {
		t.Fatalf("unexpected recipes url %s", cfg.RecipesURL)
	}
	if cfg.WatchInterval != 300*time.Second {
		t.Fatalf("unexpected watch interval %v", cfg.WatchInterval)
	}
	if cfg.ListenAddr != ":8080" || cfg.PreviewBurst != 1 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("RECIPES_URL", "https://example.com/recipes-malformed.json")
	t.Setenv("WATCH_INTERVAL", "60")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RecipesURL != "https://example.com/recipes-malformed.json" {
		t.Fatalf("env override ignored: %s", cfg.RecipesURL)
	}
	if cfg.WatchInterval != time.Minute {
		t.Fatalf("unexpected watch interval %v", cfg.WatchInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"non-positive interval": {"WATCH_INTERVAL", "0"},
		"relative url":          {"RECIPES_URL", "recipes.json"},
		"unknown level":         {"LOG_LEVEL", "chatty"},
		"zero preview rate":     {"PREVIEW_RATE_PER_SECOND", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := load(viper.New()); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
