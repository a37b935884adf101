package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewApp_InitializesAllServices verifies that NewApp creates an App with
// storage, the returns service, and the MCP server initialized.
func TestNewApp_InitializesAllServices(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Config)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.Storage)
	assert.NotNil(t, a.XIRRService)
	assert.NotNil(t, a.MCPServer)
	assert.False(t, a.StartupTime.IsZero())
	assert.Equal(t, "ACT/360", a.Config.Solver.DayCount)
}

// TestNewApp_RegistersAllTools verifies that NewApp registers all expected MCP tools.
func TestNewApp_RegistersAllTools(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	c := newInProcessClient(t, a.MCPServer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	toolsResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	toolNames := make(map[string]bool)
	for _, tool := range toolsResult.Tools {
		toolNames[tool.Name] = true
	}
	for _, name := range []string{"get_version", "xirr", "xnpv"} {
		assert.True(t, toolNames[name], "expected tool %q", name)
	}
	assert.Len(t, toolsResult.Tools, 3)
}

func TestNewApp_GetVersionToolWorks(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	text, isErr := callTool(t, a.MCPServer, "get_version", nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "XIRR MCP Server")
}

func TestXIRRTool(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	args := map[string]any{
		"payments": map[string]any{
			"2020-01-01": -1000,
			"2020-04-01": 200,
			"2020-10-01": 300,
			"2021-01-01": 600,
		},
		"day_count": "ACT/365F",
	}
	text, isErr := callTool(t, a.MCPServer, "xirr", args)
	require.False(t, isErr, text)
	assert.Contains(t, text, "12.7839%")
	assert.Contains(t, text, "2020-01-01 to 2021-01-01")
	assert.Contains(t, text, "**Invested:** 1000.00")
	assert.Contains(t, text, "ACT/365F")
}

func TestXIRRTool_ConfiguredDayCount(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	args := map[string]any{
		"dates":   []any{"2020-01-01", "2020-04-01", "2020-10-01", "2021-01-01"},
		"amounts": []any{-1000, 200, 300, 600},
	}
	text, isErr := callTool(t, a.MCPServer, "xirr", args)
	require.False(t, isErr, text)
	assert.Contains(t, text, "12.5982%")
	assert.Contains(t, text, "ACT/360")
}

func TestXIRRTool_Errors(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no schedule", map[string]any{}, "no payments supplied"},
		{"one sign", map[string]any{"payments": map[string]any{"2020-01-01": 5, "2021-01-01": 6}}, "negative and positive"},
		{"bad date", map[string]any{"payments": map[string]any{"Jan 1": -5, "2021-01-01": 6}}, "unable to parse date"},
		{"text amount", map[string]any{"dates": []any{"2020-01-01", "2021-01-01"}, "amounts": []any{"-5", "6"}}, "cannot convert"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, a.MCPServer, "xirr", tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestXNPVTool(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	args := map[string]any{
		"rate":     0,
		"payments": []any{[]any{"2020-01-01", -1000}, []any{"2021-01-01", 1100}},
	}
	text, isErr := callTool(t, a.MCPServer, "xnpv", args)
	require.False(t, isErr, text)
	assert.Contains(t, text, "**NPV:** 100.00")

	delete(args, "rate")
	text, isErr = callTool(t, a.MCPServer, "xnpv", args)
	assert.True(t, isErr)
	assert.Contains(t, text, "rate parameter is required")
}

// TestNewApp_CloseIsIdempotent verifies that calling Close multiple times
// does not panic.
func TestNewApp_CloseIsIdempotent(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)

	a.Close()
	a.Close()
}

// TestNewApp_InvalidConfigReturnsError verifies that an invalid config file
// returns a meaningful error.
func TestNewApp_InvalidConfigReturnsError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("{{{{invalid toml"), 0644))

	_, err := NewApp(configPath)
	assert.Error(t, err)
}

// --- test helpers ---

// writeTestConfig creates a minimal xirr.toml in a temp directory for testing.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	config := `
[storage]
path = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"

[solver]
day_count = "ACT/360"

[logging]
level = "error"
`
	configPath := filepath.Join(dir, "xirr.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))
	return configPath
}

// newInProcessClient creates an mcp-go in-process client connected to the given
// MCP server. Handles initialization handshake.
func newInProcessClient(t *testing.T, mcpServer *server.MCPServer) *client.Client {
	t.Helper()

	c, err := client.NewInProcessClient(mcpServer)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	return c
}

// callTool invokes a tool and returns its first text block and error flag.
func callTool(t *testing.T, mcpServer *server.MCPServer, name string, args map[string]any) (string, bool) {
	t.Helper()
	c := newInProcessClient(t, mcpServer)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	if args != nil {
		req.Params.Arguments = args
	}
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return strings.TrimSpace(tc.Text), result.IsError
}
