package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func isolate(t *testing.T) {
	t.Helper()
	prev := EnvFile
	EnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { EnvFile = prev })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBase != "https://dev.to/api" || cfg.Username != "phenixzain" || cfg.PerPage != 100 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.HTTPTimeout)
	}
	if cfg.BodyPolicy != "trusted" {
		t.Fatalf("expected trusted body policy, got %q", cfg.BodyPolicy)
	}
	if cfg.PublishersFile != "" {
		t.Fatalf("expected delivery disabled by default, got %q", cfg.PublishersFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DEVTO_USERNAME", "someone")
	t.Setenv("DEVTO_PER_PAGE", "25")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "7")
	t.Setenv("BODY_POLICY", "sanitize")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Username != "someone" || cfg.PerPage != 25 || cfg.BodyPolicy != "sanitize" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.HTTPTimeout != 7*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DEVTO_USERNAME=fromfile\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	EnvFile = path
	t.Cleanup(func() { os.Unsetenv("DEVTO_USERNAME") })

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Username != "fromfile" {
		t.Fatalf("expected username from env file, got %q", cfg.Username)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DEVTO_USERNAME", "fromenv")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--devto-username=fromflag", "--devto-per-page=5", "--publishers-file=configs/publishers.yaml"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Username != "fromflag" || cfg.PerPage != 5 || cfg.PublishersFile != "configs/publishers.yaml" {
		t.Fatalf("flags must win: %+v", cfg)
	}
}

func TestUnchangedFlagsKeepDefaults(t *testing.T) {
	isolate(t)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PerPage != 100 || cfg.Username != "phenixzain" {
		t.Fatalf("unset flags must not clobber defaults: %+v", cfg)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"per page":    {"DEVTO_PER_PAGE": "0"},
		"timeout":     {"HTTP_TIMEOUT_SECONDS": "-1"},
		"base url":    {"DEVTO_API_BASE": "not a url"},
		"body policy": {"BODY_POLICY": "yolo"},
		"username":    {"DEVTO_USERNAME": "   "},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(nil); err == nil {
				t.Fatalf("expected validation error for %v", env)
			}
		})
	}
}
