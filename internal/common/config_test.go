package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_DefaultSolver(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Solver.Guess != 0.1 {
		t.Errorf("Solver.Guess default = %v, want 0.1", cfg.Solver.Guess)
	}
	if cfg.Solver.MaxIterations != 100 {
		t.Errorf("Solver.MaxIterations default = %d, want 100", cfg.Solver.MaxIterations)
	}
	if cfg.Solver.Tolerance != 1e-10 {
		t.Errorf("Solver.Tolerance default = %v, want 1e-10", cfg.Solver.Tolerance)
	}
	if cfg.Solver.DayCount != "ACT/365F" {
		t.Errorf("Solver.DayCount default = %q, want ACT/365F", cfg.Solver.DayCount)
	}
	if cfg.Solver.BisectionFallback {
		t.Error("Solver.BisectionFallback should default to false")
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("XIRR_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("XIRR_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080 when env is invalid", cfg.Server.Port)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("XIRR_ENV", "production")
	t.Setenv("XIRR_HOST", "127.0.0.1")
	t.Setenv("XIRR_LOG_LEVEL", "debug")
	t.Setenv("XIRR_DATA_PATH", "/tmp/xirr")
	t.Setenv("XIRR_RATE_LIMIT", "2.5")
	t.Setenv("XIRR_DAY_COUNT", "act/360")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if !cfg.IsProduction() {
		t.Errorf("IsProduction() = false for environment %q", cfg.Environment)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Storage.Path != "/tmp/xirr" {
		t.Errorf("Storage.Path = %q, want /tmp/xirr", cfg.Storage.Path)
	}
	if cfg.Server.RateLimit != 2.5 {
		t.Errorf("Server.RateLimit = %v, want 2.5", cfg.Server.RateLimit)
	}
	if cfg.Solver.DayCount != "ACT/360" {
		t.Errorf("Solver.DayCount = %q, want ACT/360", cfg.Solver.DayCount)
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xirr.toml")
	content := `
environment = "staging"

[server]
port = 7000

[solver]
max_iterations = 50
bisection_fallback = true

[logging]
level = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("XIRR_LOG_LEVEL", "error")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default to survive partial file", cfg.Server.Host)
	}
	if cfg.Solver.MaxIterations != 50 || !cfg.Solver.BisectionFallback {
		t.Errorf("Solver = %+v, want max_iterations 50 with fallback", cfg.Solver)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, env should win over file", cfg.Logging.Level)
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default", cfg.Server.Port)
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := map[string]bool{
		"production":  true,
		" Prod ":      true,
		"development": false,
		"":            false,
	}
	for env, want := range tests {
		cfg := &Config{Environment: env}
		if got := cfg.IsProduction(); got != want {
			t.Errorf("IsProduction(%q) = %v, want %v", env, got, want)
		}
	}
}

func TestLoadVersionFile(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = origVersion, origBuild, origCommit })
	Version, Build, GitCommit = "dev", "unknown", "unknown"

	path := filepath.Join(t.TempDir(), ".version")
	content := "# build info\nversion: 1.2.3\nbuild: 2026-01-02\ncommit: abc1234\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write version: %v", err)
	}

	loadVersionFile(path)

	if GetFullVersion() != "1.2.3 (build: 2026-01-02, commit: abc1234)" {
		t.Errorf("GetFullVersion() = %q", GetFullVersion())
	}
}
