// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-env", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("expected default database URL, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("CORS_ORIGIN", "http://localhost:3000")
	os.Setenv("SEED", "demo")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-env", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.CORSOrigin != "http://localhost:3000" {
		t.Errorf("expected CORS origin from env, got %s", cfg.CORSOrigin)
	}
	if cfg.Seed != "demo" {
		t.Errorf("expected seed 'demo', got %s", cfg.Seed)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-env", "", "-p", "8080", "-d", "file:test.db", "-seed", "fixtures.yaml"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %s", cfg.DatabaseURL)
	}
	if cfg.Seed != "fixtures.yaml" {
		t.Errorf("expected fixtures.yaml, got %s", cfg.Seed)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad PORT env", map[string]string{"PORT": "abc"}, nil},
		{"unknown database type", nil, []string{"-t", "mysql"}},
		{"postgres without URL", nil, []string{"-t", "postgres"}},
		{"port out of range", nil, []string{"-p", "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			if _, err := ParseFlags(append([]string{"-env", ""}, tt.args...)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=7777\nDATABASE_URL=file:from-env-file.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 7777 {
		t.Errorf("expected port from env file, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:from-env-file.db" {
		t.Errorf("expected database URL from env file, got %s", cfg.DatabaseURL)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
