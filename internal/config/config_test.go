package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mbdiscid/internal/config"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("MBDISCID_PROVIDER", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "mbdiscid", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.DiscID.Provider != config.ProviderAuto {
		t.Fatalf("expected auto provider, got %q", cfg.DiscID.Provider)
	}
	if cfg.DiscID.CDDiscIDBinary != "cd-discid" {
		t.Fatalf("unexpected cd-discid binary %q", cfg.DiscID.CDDiscIDBinary)
	}
	if want := filepath.Join(tempHome, ".local", "state", "mbdiscid"); cfg.Watch.LockDir != want {
		t.Fatalf("lock dir = %q, want %q", cfg.Watch.LockDir, want)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "auto" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mbdiscid.toml")

	type payload struct {
		DiscID struct {
			Provider       string `toml:"provider"`
			CDDiscIDBinary string `toml:"cd_discid_binary"`
		} `toml:"discid"`
		Watch struct {
			LockDir         string `toml:"lock_dir"`
			DebounceSeconds int    `toml:"debounce_seconds"`
		} `toml:"watch"`
	}
	custom := payload{}
	custom.DiscID.Provider = "CD-DiscID"
	custom.DiscID.CDDiscIDBinary = "/opt/bin/cd-discid"
	custom.Watch.LockDir = filepath.Join(tempDir, "locks")
	custom.Watch.DebounceSeconds = 5

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MBDISCID_PROVIDER", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected to read %s, got %s (exists=%v)", configPath, resolved, exists)
	}
	if cfg.DiscID.Provider != config.ProviderCDDiscID {
		t.Fatalf("expected provider to be normalized, got %q", cfg.DiscID.Provider)
	}
	if cfg.DiscID.CDDiscIDBinary != "/opt/bin/cd-discid" {
		t.Fatalf("unexpected binary %q", cfg.DiscID.CDDiscIDBinary)
	}
	if cfg.Watch.DebounceSeconds != 5 {
		t.Fatalf("unexpected debounce %d", cfg.Watch.DebounceSeconds)
	}
	if err := cfg.EnsureLockDir(); err != nil {
		t.Fatalf("EnsureLockDir failed: %v", err)
	}
	if info, err := os.Stat(cfg.Watch.LockDir); err != nil || !info.IsDir() {
		t.Fatalf("expected lock dir to exist: %v", err)
	}
}

func TestLoadEnvOverridesProvider(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MBDISCID_PROVIDER", " Linux ")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DiscID.Provider != config.ProviderLinux {
		t.Fatalf("expected env provider, got %q", cfg.DiscID.Provider)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown provider", "[discid]\nprovider = \"magic\"\n", "discid.provider"},
		{"negative debounce", "[watch]\ndebounce_seconds = -1\n", "watch.debounce_seconds"},
		{"bad log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown key", "[discid]\ndevice = \"/dev/sr0\"\n", "parse config"},
		{"malformed toml", "[discid\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MBDISCID_PROVIDER", "")
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected Load to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("MBDISCID_PROVIDER", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.DiscID.Provider != config.ProviderAuto {
		t.Fatalf("unexpected sample provider %q", cfg.DiscID.Provider)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/locks")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "locks") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
