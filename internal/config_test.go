package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestGitConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		edit func(*GitConfig)
	}{
		{"empty binary", func(c *GitConfig) { c.Binary = "" }},
		{"zero depth", func(c *GitConfig) { c.Depth = 0 }},
		{"short timeout", func(c *GitConfig) { c.Timeout = time.Millisecond }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig().Git
			tt.edit(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTemplatesConfig_Dir(t *testing.T) {
	if err := (&TemplatesConfig{}).Validate(); err != nil {
		t.Errorf("empty dir should pass: %v", err)
	}
	if err := (&TemplatesConfig{Dir: t.TempDir()}).Validate(); err != nil {
		t.Errorf("existing dir should pass: %v", err)
	}
	if err := (&TemplatesConfig{Dir: filepath.Join(t.TempDir(), "missing")}).Validate(); err == nil {
		t.Error("missing dir should fail")
	}
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (&TemplatesConfig{Dir: file}).Validate(); err == nil {
		t.Error("regular file should fail")
	}
}

func TestVaultConfig_RequiresParent(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Vault.DefaultParent = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty default parent should fail")
	}
}

func TestGitConfig_Options(t *testing.T) {
	cfg := GitConfig{Binary: "/usr/bin/git", Depth: 3, Timeout: time.Minute}
	opts := cfg.Options()
	if opts.Binary != "/usr/bin/git" || opts.Depth != 3 || opts.Timeout != time.Minute {
		t.Errorf("options = %+v", opts)
	}
}

func TestHistoryConfig_Enabled(t *testing.T) {
	if (&HistoryConfig{}).Enabled() {
		t.Error("empty path should disable history")
	}
	if !(&HistoryConfig{Path: "x.db"}).Enabled() {
		t.Error("non-empty path should enable history")
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	tests := []struct {
		host     string
		want     string
		loopback bool
	}{
		{"127.0.0.1", "127.0.0.1:8080", true},
		{"localhost", "localhost:8080", true},
		{"::1", "[::1]:8080", true},
		{"", ":8080", false},
		{"0.0.0.0", "0.0.0.0:8080", false},
		{"192.168.1.10", "192.168.1.10:8080", false},
	}
	for _, tt := range tests {
		cfg := HTTPConfig{Host: tt.host, Port: 8080}
		if got := cfg.Address(); got != tt.want {
			t.Errorf("Address(%q) = %q, want %q", tt.host, got, tt.want)
		}
		if got := cfg.Loopback(); got != tt.loopback {
			t.Errorf("Loopback(%q) = %v, want %v", tt.host, got, tt.loopback)
		}
	}
}

func TestConfig_CheckServe(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.CheckServe(); err != nil {
		t.Fatalf("default loopback config should serve: %v", err)
	}

	cfg.App.HTTP.Host = "0.0.0.0"
	if err := cfg.CheckServe(); err == nil {
		t.Error("public bind without auth should be refused")
	}

	cfg.Auth = AuthConfig{Mode: AuthModeToken, Token: "s3cret"}
	if err := cfg.CheckServe(); err != nil {
		t.Errorf("public bind with token auth should serve: %v", err)
	}
}
