package config

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeFS struct {
	files map[string]bool
}

func (f fakeFS) Exists(path string) bool { return f.files[path] }
func (f fakeFS) LoadEnv(string) error    { return nil }

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load(WithFileSystem(fakeFS{}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != ServiceName {
		t.Errorf("Name = %q, want %q", cfg.Name, ServiceName)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default to true in development")
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Auth.JWT.Secret != "test-secret" {
		t.Error("jwt secret not picked up from environment")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DATABASE_PATH", ":memory:")

	cfg, err := Load(WithFileSystem(fakeFS{}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
name: authd
environment: staging
server:
  port: 9000
database:
  path: /tmp/test.db
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	if _, err := Load(WithFileSystem(fakeFS{})); err == nil {
		t.Fatal("expected error without a JWT secret")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("ENVIRONMENT", "sandbox")

	if _, err := Load(WithFileSystem(fakeFS{})); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("AUTH_JWT_SECRET")
	for _, want := range []string{"auth_jwt_secret", "auth.jwt.secret", "auth.jwt_secret"} {
		found := false
		for _, v := range got {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
}
