package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
jwt:
  secret: dev-secret
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.JWT.ExpireTime != 24*time.Hour {
		t.Errorf("jwt expiry = %v", cfg.JWT.ExpireTime)
	}
	if cfg.Session.Backend != SessionBackendRedis {
		t.Errorf("session backend = %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL() != 30*time.Minute {
		t.Errorf("session ttl = %v", cfg.Session.TTL())
	}
	if cfg.Session.KeyPrefix != "profile_view:session:" {
		t.Errorf("key prefix = %q", cfg.Session.KeyPrefix)
	}
}

func TestLoadConfigSessionSettings(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  type: minio
session:
  backend: memory
  ttl_minutes: 5
seed:
  fixture: fixtures/teachers.yaml
cors:
  allowed_origins:
    - http://localhost:19006
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Session.Backend != SessionBackendMemory || cfg.Session.TTL() != 5*time.Minute {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Seed.Fixture != "fixtures/teachers.yaml" {
		t.Errorf("seed fixture = %q", cfg.Seed.Fixture)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Errorf("cors = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  type: minio
session:
  backend: redis
`)
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SESSION_TTL_MINUTES", "12")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Session.Backend != SessionBackendMemory {
		t.Errorf("backend = %q, want memory", cfg.Session.Backend)
	}
	if cfg.Session.TTL() != 12*time.Minute {
		t.Errorf("ttl = %v", cfg.Session.TTL())
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"short secret in release": `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`,
		"unknown session backend": `
server:
  mode: debug
storage:
  type: minio
session:
  backend: memcached
`,
	}
	for name, body := range cases {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	if err == nil || !strings.Contains(strings.ToLower(err.Error()), "not found") {
		t.Fatalf("err = %v, want config not found", err)
	}
}
