package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Socket != "/tmp/window-controls.sock" {
		t.Errorf("Socket = %q, want /tmp/window-controls.sock", cfg.Server.Socket)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Server.TimeoutSeconds)
	}
	if cfg.UnknownAppLabel != "Unknown App" {
		t.Errorf("UnknownAppLabel = %q, want Unknown App", cfg.UnknownAppLabel)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadConfigFromBytesYAML(t *testing.T) {
	data := []byte(`
server:
  socket: /tmp/custom.sock
  timeoutSeconds: 10
displays:
  builtinId: "1"
  externalId: "2"
unknownAppLabel: Mystery
`)

	cfg, err := LoadConfigFromBytes(data, "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes: %v", err)
	}

	if cfg.Server.Socket != "/tmp/custom.sock" {
		t.Errorf("Socket = %q, want /tmp/custom.sock", cfg.Server.Socket)
	}
	if cfg.Server.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.Server.TimeoutSeconds)
	}
	if cfg.Displays.BuiltInID != "1" || cfg.Displays.ExternalID != "2" {
		t.Errorf("Displays = %+v, want builtin 1 external 2", cfg.Displays)
	}
	if cfg.UnknownAppLabel != "Mystery" {
		t.Errorf("UnknownAppLabel = %q, want Mystery", cfg.UnknownAppLabel)
	}
}

func TestLoadConfigFromBytesJSON(t *testing.T) {
	data := []byte(`{"server": {"socket": "/tmp/j.sock", "timeoutSeconds": 5}}`)

	cfg, err := LoadConfigFromBytes(data, "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes: %v", err)
	}
	if cfg.Server.Socket != "/tmp/j.sock" {
		t.Errorf("Socket = %q, want /tmp/j.sock", cfg.Server.Socket)
	}
	if cfg.Server.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.Server.TimeoutSeconds)
	}
	// Unset fields keep their defaults.
	if cfg.UnknownAppLabel != "Unknown App" {
		t.Errorf("UnknownAppLabel = %q, want default", cfg.UnknownAppLabel)
	}
}

func TestLoadConfigFromBytesErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"bad yaml", "server: [", "yaml"},
		{"bad json", "{", "json"},
		{"unsupported format", "{}", "toml"},
		{"empty socket", `{"server": {"socket": ""}}`, "json"},
		{"negative timeout", `{"server": {"socket": "/tmp/s", "timeoutSeconds": -1}}`, "json"},
		{"empty unknown label", `{"unknownAppLabel": ""}`, "json"},
		{"identical role pins", `{"displays": {"builtinId": "1", "externalId": "1"}}`, "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfigFromBytes([]byte(tt.data), tt.format); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(yamlPath, []byte("server:\n  socket: /tmp/f.sock\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(yamlPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Socket != "/tmp/f.sock" {
		t.Errorf("Socket = %q, want /tmp/f.sock", cfg.Server.Socket)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing path")
	}

	badExt := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(badExt, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(badExt); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestGetConfigPath(t *testing.T) {
	p := GetConfigPath()
	if p == "" {
		t.Fatal("GetConfigPath returned empty path")
	}
	want := filepath.Join(DefaultConfigDir, DefaultConfigFile)
	if !strings.HasSuffix(p, want) {
		t.Errorf("GetConfigPath() = %q, want suffix %q", p, want)
	}
}

func TestValidateEmptyExternalPinAllowed(t *testing.T) {
	cfg := Default()
	cfg.Displays.BuiltInID = "3"
	if err := cfg.Validate(); err != nil {
		t.Errorf("single pinned role failed validation: %v", err)
	}
}
