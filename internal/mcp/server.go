package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/config"
	"github.com/tidewater-labs/linear-mcp/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"linear_create_issue": {
		def:     createIssueToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreateIssue },
	},
	"linear_update_issue": {
		def:     updateIssueToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdateIssue },
	},
	"linear_get_issue": {
		def:     getIssueToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetIssue },
	},
	"linear_search_issues": {
		def:     searchIssuesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchIssues },
	},
	"linear_list_issues": {
		def:     listIssuesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListIssues },
	},
	"linear_add_comment": {
		def:     addCommentToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddComment },
	},
	"linear_list_teams": {
		def:     listTeamsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListTeams },
	},
	"linear_list_projects": {
		def:     listProjectsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListProjects },
	},
	"linear_list_states": {
		def:     listStatesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListStates },
	},
	"linear_list_labels": {
		def:     listLabelsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListLabels },
	},
	"linear_list_users": {
		def:     listUsersToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListUsers },
	},
	"linear_get_viewer": {
		def:     getViewerToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetViewer },
	},
	"linear_get_workspace": {
		def:     getWorkspaceToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetWorkspace },
	},
}

// AllToolNames returns a sorted list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the Linear tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(deps *ops.Deps, cfg *config.Config, log *zap.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"linear-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(deps, log)

	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn("ignoring unknown disabled tool names", zap.Strings("names", unknown))
	}
	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(deps *ops.Deps, cfg *config.Config, log *zap.Logger, version string) error {
	s := NewServer(deps, cfg, log, version)
	return server.ServeStdio(s)
}
