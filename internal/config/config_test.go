package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseTTL(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{" 2h ", 2 * time.Hour, false},
		{"0d", 0, true},
		{"-1h", 0, true},
		{"xd", 0, true},
		{"soon", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTTL(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("ttl: got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("bcrypt cost: got %d", cfg.Auth.BcryptCost)
	}
	if !cfg.InsecureSigningKey() {
		t.Errorf("expected dev signing key fallback")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yml := "port: \"9090\"\ndb:\n  path: votes.db\nauth:\n  signing_key: from-file\n  token_ttl: 2h\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PASSWORD_HASHER", "argon2id")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.DBPath != "votes.db" {
		t.Errorf("unexpected file values: %+v", cfg)
	}
	if cfg.Auth.SigningKey != "from-env" {
		t.Errorf("env must override file, got %q", cfg.Auth.SigningKey)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("ttl: got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.Hasher != "argon2id" {
		t.Errorf("hasher: got %q", cfg.Auth.Hasher)
	}
	if cfg.InsecureSigningKey() {
		t.Errorf("configured key reported as insecure")
	}
}

func TestLoad_RejectsUnknownHasher(t *testing.T) {
	t.Setenv("PASSWORD_HASHER", "md5")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown hasher")
	}
}
