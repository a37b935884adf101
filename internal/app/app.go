// Package app wires configuration, storage, services and the MCP server
// into the shared core used by the xirr server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/services/returns"
	"github.com/bobmcallan/xirr/internal/storage"
)

// App holds all initialized services and the MCP server.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	XIRRService interfaces.XIRRService
	MCPServer   *server.MCPServer
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes the App.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, XIRR_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("XIRR_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "xirr.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/xirr.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	return New(config, common.NewLoggerFromConfig(config.Logging))
}

// New initializes storage, services and the MCP server from a loaded config.
func New(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"xirr",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		XIRRService: returns.NewService(storageManager, config.Solver, logger),
		MCPServer:   mcpServer,
		StartupTime: startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App. Safe to call more than once.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
		a.Storage = nil
	}
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createXIRRTool(), handleXIRR(a.XIRRService, logger))
	s.AddTool(createXNPVTool(), handleXNPV(a.XIRRService, logger))
}
