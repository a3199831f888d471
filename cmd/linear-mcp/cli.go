package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/config"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/mcp"
	"github.com/tidewater-labs/linear-mcp/internal/ops"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

// newCLIApp creates the CLI application. The default action serves MCP
// over stdio; subcommands cover inspection from a shell.
func newCLIApp() *cli.App {
	return &cli.App{
		Name:    "linear-mcp",
		Usage:   "MCP server exposing Linear issue tracking as agent tools",
		Version: Version,
		Action: func(_ *cli.Context) error {
			return serve()
		},
		Commands: []*cli.Command{
			toolsCmd(),
			whoamiCmd(),
		},
	}
}

// toolsCmd lists the registered tool names, one per line. Handy for
// composing LINEAR_MCP_DISABLED_TOOLS.
func toolsCmd() *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "List available MCP tool names",
		Action: func(_ *cli.Context) error {
			for _, name := range mcp.AllToolNames() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// whoamiCmd verifies the configured credential by fetching the viewer.
func whoamiCmd() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Verify the API key by fetching the authenticated user",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			deps := buildDeps(cfg, zap.NewNop())
			out, err := ops.GetViewer(c.Context, deps)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

// buildDeps wires the API client, rate governor, caches, and resolver
// from config.
func buildDeps(cfg *config.Config, log *zap.Logger) *ops.Deps {
	var opts []linear.Option
	if cfg.Endpoint != "" {
		opts = append(opts, linear.WithEndpoint(cfg.Endpoint))
	}
	client := linear.NewClient(cfg.APIKey, log, opts...)

	deps := ops.NewDeps(client,
		ratelimit.New(cfg.RequestLimit, time.Minute),
		cache.New(cfg.CacheTTL),
		cache.New(cfg.CacheTTL),
		log)
	deps.MaxPages = cfg.MaxPages
	return deps
}
