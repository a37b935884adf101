// Package common provides shared test infrastructure
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/xirr/internal/app"
	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/server"
)

// TestEnvironment runs the full app behind an httptest server backed by a
// temporary schedule store.
type TestEnvironment struct {
	t       *testing.T
	App     *app.App
	Config  *common.Config
	Logger  *common.Logger
	DataDir string
	URL     string
	http    *httptest.Server
	cleanup []func()
}

// NewEnv creates a new test environment. Set XIRR_TEST_API=false to skip.
func NewEnv(t *testing.T) *TestEnvironment {
	t.Helper()

	if os.Getenv("XIRR_TEST_API") == "false" {
		t.Skip("API tests disabled (XIRR_TEST_API=false)")
		return nil
	}

	config := common.NewDefaultConfig()
	config.Environment = "test"
	config.Storage.Path = filepath.Join(t.TempDir(), "schedules")
	config.Server.RateLimit = 0

	env := &TestEnvironment{
		t:       t,
		Config:  config,
		Logger:  common.NewSilentLogger(),
		DataDir: config.Storage.Path,
	}
	env.start()
	return env
}

func (e *TestEnvironment) start() {
	e.t.Helper()

	a, err := app.New(e.Config, e.Logger)
	if err != nil {
		e.t.Fatalf("Failed to initialize app: %v", err)
	}
	e.App = a
	e.http = httptest.NewServer(server.NewServer(a).Handler())
	e.URL = e.http.URL
}

func (e *TestEnvironment) stop() {
	if e.http != nil {
		e.http.Close()
		e.http = nil
	}
	if e.App != nil {
		e.App.Close()
		e.App = nil
	}
}

// Restart stops the app and starts a new one over the same data directory.
func (e *TestEnvironment) Restart() {
	e.t.Helper()
	e.stop()
	e.start()
}

// Cleanup releases all test resources
func (e *TestEnvironment) Cleanup() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.stop()
}

// AddCleanup registers a cleanup function
func (e *TestEnvironment) AddCleanup(fn func()) {
	e.cleanup = append(e.cleanup, fn)
}

// Context returns a test context with timeout
func (e *TestEnvironment) Context() context.Context {
	timeout := 30 * time.Second
	if envTimeout := os.Getenv("XIRR_TEST_TIMEOUT"); envTimeout != "" {
		if d, err := time.ParseDuration(envTimeout); err == nil {
			timeout = d
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	e.AddCleanup(cancel)
	return ctx
}

// Get issues a GET against the environment.
func (e *TestEnvironment) Get(path string) (*http.Response, []byte, error) {
	return e.Do(http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body.
func (e *TestEnvironment) Post(path string, body interface{}) (*http.Response, []byte, error) {
	return e.Do(http.MethodPost, path, body)
}

// Delete issues a DELETE against the environment.
func (e *TestEnvironment) Delete(path string) (*http.Response, []byte, error) {
	return e.Do(http.MethodDelete, path, nil)
}

// Do sends a request, JSON-encoding body when it is not nil, and returns the
// response with its body already read.
func (e *TestEnvironment) Do(method, path string, body interface{}) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(e.Context(), method, e.URL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return resp, data, err
}

// TestOutputGuard validates test outputs
type TestOutputGuard struct {
	t *testing.T
}

// NewTestOutputGuard creates a new output guard
func NewTestOutputGuard(t *testing.T) *TestOutputGuard {
	return &TestOutputGuard{t: t}
}

// AssertContains checks if output contains expected text
func (g *TestOutputGuard) AssertContains(output, expected string) {
	g.t.Helper()
	if !strings.Contains(output, expected) {
		g.t.Errorf("Expected output to contain %q, but it didn't.\nOutput: %s", expected, truncate(output, 500))
	}
}

// AssertNotContains checks if output does not contain text
func (g *TestOutputGuard) AssertNotContains(output, unexpected string) {
	g.t.Helper()
	if strings.Contains(output, unexpected) {
		g.t.Errorf("Expected output NOT to contain %q, but it did.\nOutput: %s", unexpected, truncate(output, 500))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
