package config

import (
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Path != "./blog.db" {
		t.Errorf("Expected default DB path, got %s", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 1 {
		t.Errorf("Expected a single writer connection by default, got %d", cfg.Database.MaxOpenConns)
	}
	want := []string{"http://localhost:5173", "http://localhost:3000"}
	if diff := cmp.Diff(want, cfg.CORS.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test-blog.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://blog.example.com, https://admin.example.com,")
	t.Setenv("LOG_FORMAT", "pretty")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test-blog.db" {
		t.Errorf("Expected DB path from env, got %s", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 4 {
		t.Errorf("Expected 4 open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Server.RequestTimeout != 2*time.Second {
		t.Errorf("Expected 2s request timeout, got %s", cfg.Server.RequestTimeout)
	}
	want := []string{"https://blog.example.com", "https://admin.example.com"}
	if diff := cmp.Diff(want, cfg.CORS.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Database.MaxIdleConns != 1 {
		t.Errorf("Expected default idle conns, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Expected default read timeout, got %s", cfg.Server.ReadTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8000", Mode: "release"},
			Database: DatabaseConfig{Path: "blog.db", MaxOpenConns: 1},
			Log:      LogConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "DB_PATH"},
		{name: "zero conns", mutate: func(c *Config) { c.Database.MaxOpenConns = 0 }, wantErr: "DB_MAX_OPEN_CONNS"},
		{name: "bad gin mode", mutate: func(c *Config) { c.Server.Mode = "prod" }, wantErr: "GIN_MODE"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{Path: "data/blog.db", BusyTimeout: 2 * time.Second}
	dsn := cfg.GetDSN()

	if !strings.HasPrefix(dsn, "file:data/blog.db?") {
		t.Fatalf("Unexpected DSN prefix: %s", dsn)
	}

	q, err := url.ParseQuery(dsn[strings.Index(dsn, "?")+1:])
	if err != nil {
		t.Fatalf("DSN query does not parse: %v", err)
	}
	want := []string{"foreign_keys(1)", "busy_timeout(2000)"}
	if diff := cmp.Diff(want, q["_pragma"]); diff != "" {
		t.Errorf("pragmas mismatch (-want +got):\n%s", diff)
	}
	if q.Get("_time_format") != "sqlite" {
		t.Errorf("Expected sqlite time format, got %q", q.Get("_time_format"))
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore Chdir(%q): %v", prev, err)
		}
	})
}
