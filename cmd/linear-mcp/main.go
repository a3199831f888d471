package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/config"
	"github.com/tidewater-labs/linear-mcp/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Stdout is the MCP transport, so
// all log output goes to stderr.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// serve loads config, wires the collaborators, and blocks on the stdio
// transport until the client disconnects.
func serve() error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.KeyLooksNonPersonal() {
		log.Warn("API key does not look like a personal key; expected a lin_api_ prefix")
	}

	deps := buildDeps(cfg, log)

	log.Info("starting MCP server",
		zap.String("version", Version),
		zap.Int("request_limit", cfg.RequestLimit),
		zap.Strings("disabled_tools", cfg.DisabledTools))

	return mcp.Run(deps, cfg, log, Version)
}
