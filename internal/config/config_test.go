package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Setenv("DRAWING_TEST_PORT", "9090")
	path := writeConfig(t, `
mode: http
http:
  port: ${DRAWING_TEST_PORT}
logging:
  level: ${DRAWING_TEST_LEVEL:-warn}
render:
  width: 1024
ocr:
  language: kor
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Mode != ModeHTTP {
		t.Errorf("Mode: got %q", cfg.Mode)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port: got %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level: got %q, want warn", cfg.Logging.Level)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 600 {
		t.Errorf("Render: got %+v", cfg.Render)
	}
	if cfg.OCR.Language != "kor" {
		t.Errorf("OCR language: got %q", cfg.OCR.Language)
	}
	if cfg.Cache.MaxEntries != 64 {
		t.Errorf("Cache default: got %d", cfg.Cache.MaxEntries)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(PathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(LogLevelEnvVar, "debug")

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != ModeMCP {
		t.Errorf("Mode: got %q, want mcp", cfg.Mode)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level override: got %q", cfg.Logging.Level)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Setenv(PathEnvVar, writeConfig(t, "mode: grpc\n"))

	if _, err := Load("local"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad mode", func(c *Config) { c.Mode = "grpc" }, true},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }, true},
		{"margin too large", func(c *Config) { c.Render.Margin = 400 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv: got %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv: got %q, want prod", got)
	}
}
