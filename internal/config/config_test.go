package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCredentials(t *testing.T, dir, username, password string) {
	t.Helper()
	if username != "" {
		if err := os.WriteFile(filepath.Join(dir, "username"), []byte(username+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if password != "" {
		if err := os.WriteFile(filepath.Join(dir, "password"), []byte(password+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolveDBCredentials_EnvOverrideWins(t *testing.T) {
	dir := t.TempDir()
	writeCredentials(t, dir, "file-user", "file-pass")

	cfg := &Config{
		Environment:    "development",
		CredentialsDir: dir,
		DBUser:         "env-user",
		DBPassword:     "env-pass",
	}
	if err := cfg.resolveDBCredentials(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.DBUser != "env-user" || cfg.DBPassword != "env-pass" {
		t.Errorf("Explicit override must win, got %s/%s", cfg.DBUser, cfg.DBPassword)
	}
}

func TestResolveDBCredentials_FileFallback(t *testing.T) {
	dir := t.TempDir()
	writeCredentials(t, dir, "file-user", "file-pass")

	cfg := &Config{Environment: "development", CredentialsDir: dir}
	if err := cfg.resolveDBCredentials(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// File contents are trimmed of the trailing newline
	if cfg.DBUser != "file-user" || cfg.DBPassword != "file-pass" {
		t.Errorf("Expected file credentials, got %s/%s", cfg.DBUser, cfg.DBPassword)
	}
}

func TestResolveDBCredentials_DevelopmentFallback(t *testing.T) {
	cfg := &Config{Environment: "development", CredentialsDir: t.TempDir()}
	if err := cfg.resolveDBCredentials(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.DBUser != fallbackDBUser || cfg.DBPassword != fallbackDBPassword {
		t.Errorf("Expected development fallback, got %s/%s", cfg.DBUser, cfg.DBPassword)
	}
}

func TestResolveDBCredentials_ProductionRefusesFallback(t *testing.T) {
	cfg := &Config{Environment: "production", CredentialsDir: t.TempDir()}
	err := cfg.resolveDBCredentials()
	if err == nil {
		t.Fatal("Production must refuse the hardcoded fallback")
	}
	if strings.Contains(err.Error(), fallbackDBPassword) {
		t.Error("Error text must not contain a password value")
	}
}

func TestResolveDBCredentials_PartialFile(t *testing.T) {
	dir := t.TempDir()
	writeCredentials(t, dir, "file-user", "")

	cfg := &Config{Environment: "production", CredentialsDir: dir}
	if err := cfg.resolveDBCredentials(); err == nil {
		t.Fatal("Production must refuse a missing password file")
	}
}

func TestCORSAllowCredentials(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		want    bool
	}{
		{"empty origin list", nil, false},
		{"wildcard only", []string{"*"}, false},
		{"wildcard among explicit origins", []string{"https://dash.example.com", "*"}, false},
		{"explicit origins", []string{"https://dash.example.com", "https://admin.example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AllowedOrigins: tt.origins}
			if got := cfg.CORSAllowCredentials(); got != tt.want {
				t.Errorf("CORSAllowCredentials() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db.internal", DBPort: 5432, DBName: "dashboard",
		DBUser: "svc", DBPassword: "pw",
	}
	dsn := cfg.DSN()
	for _, part := range []string{"host=db.internal", "port=5432", "dbname=dashboard", "user=svc", "password=pw"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}
