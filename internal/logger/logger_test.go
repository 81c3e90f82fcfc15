package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/samvad-hq/samvad-recipes/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := initWithSink(&config.Config{AppName: "recipes", LogLevel: "debug"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatalf("initWithSink: %v", err)
	}
	t.Cleanup(func() { S = nil })

	log.InfoObj("cache populated", "cache_meta", map[string]any{"records": 3})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "cache populated" || entry["app"] != "recipes" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	meta, ok := entry["cache_meta"].(map[string]any)
	if !ok || meta["records"] != float64(3) {
		t.Fatalf("unexpected cache_meta %v", entry["cache_meta"])
	}
}

func TestInitRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := initWithSink(&config.Config{LogLevel: "warn"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatalf("initWithSink: %v", err)
	}
	t.Cleanup(func() { S = nil })

	log.InfoObj("dropped", "k", 1)
	log.DebugObj("dropped", "k", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected info/debug to be filtered, got %q", buf.String())
	}
	WarnObj("kept", "k", 1)
	if buf.Len() == 0 {
		t.Fatal("expected package helper to log at warn")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if parseLevel("verbose") != zapcore.InfoLevel {
		t.Fatal("unknown levels should fall back to info")
	}
	if parseLevel("warning") != zapcore.WarnLevel {
		t.Fatal("warning should map to warn")
	}
}

func TestEnsureReturnsNop(t *testing.T) {
	log := Ensure(nil)
	if _, ok := log.(*NopLogger); !ok {
		t.Fatalf("expected NopLogger, got %T", log)
	}
	log.ErrorObj("ignored", "k", nil)
}
