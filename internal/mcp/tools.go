package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Every entity-scoping parameter comes in an id and a
// name flavor; the id wins when both are supplied.

var createIssueToolDef = mcp.NewTool("linear_create_issue",
	mcp.WithDescription("Create a new Linear issue. The team may be given by id, name, or key."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Issue title")),
	mcp.WithString("description", mcp.Description("Issue description (markdown)")),
	mcp.WithString("team_id", mcp.Description("Team UUID")),
	mcp.WithString("team", mcp.Description("Team name or key, resolved case-insensitively")),
	mcp.WithString("project_id", mcp.Description("Project UUID")),
	mcp.WithString("project", mcp.Description("Project name")),
	mcp.WithString("state_id", mcp.Description("Workflow state UUID")),
	mcp.WithString("state", mcp.Description("Workflow state name, resolved within the team")),
	mcp.WithString("assignee_id", mcp.Description("Assignee user UUID")),
	mcp.WithNumber("priority", mcp.Description("Priority 0 (none) to 4 (low)")),
	mcp.WithArray("label_ids", mcp.Description("Label UUIDs to attach"),
		mcp.Items(map[string]any{"type": "string"})),
)

var updateIssueToolDef = mcp.NewTool("linear_update_issue",
	mcp.WithDescription("Update an existing Linear issue. Only the supplied fields change."),
	mcp.WithString("issue", mcp.Required(), mcp.Description("Issue UUID or ticket key like ENG-123")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("description", mcp.Description("New description")),
	mcp.WithString("team_id", mcp.Description("Team UUID scoping state-name resolution")),
	mcp.WithString("team", mcp.Description("Team name or key scoping state-name resolution")),
	mcp.WithString("state_id", mcp.Description("New workflow state UUID")),
	mcp.WithString("state", mcp.Description("New workflow state name")),
	mcp.WithString("project_id", mcp.Description("New project UUID")),
	mcp.WithString("project", mcp.Description("New project name")),
	mcp.WithString("assignee_id", mcp.Description("New assignee user UUID")),
	mcp.WithNumber("priority", mcp.Description("New priority 0-4")),
)

var getIssueToolDef = mcp.NewTool("linear_get_issue",
	mcp.WithDescription("Fetch one Linear issue by UUID or ticket key."),
	mcp.WithString("issue", mcp.Required(), mcp.Description("Issue UUID or ticket key like ENG-123")),
)

var searchIssuesToolDef = mcp.NewTool("linear_search_issues",
	mcp.WithDescription("Search Linear issues. All filters are optional and combine additively."),
	mcp.WithString("query", mcp.Description("Free-text match on title or description")),
	mcp.WithString("team_id", mcp.Description("Team UUID")),
	mcp.WithString("team", mcp.Description("Team name or key")),
	mcp.WithString("project_id", mcp.Description("Project UUID")),
	mcp.WithString("project", mcp.Description("Project name")),
	mcp.WithString("assignee_id", mcp.Description("Assignee user UUID")),
	mcp.WithString("state", mcp.Description("Workflow state name; matches across teams unless a team narrows it")),
	mcp.WithNumber("limit", mcp.Description("Page size per fetch (default 50)")),
)

var listIssuesToolDef = mcp.NewTool("linear_list_issues",
	mcp.WithDescription("List Linear issues one page at a time; pass end_cursor back to continue."),
	mcp.WithString("team_id", mcp.Description("Team UUID")),
	mcp.WithString("team", mcp.Description("Team name or key")),
	mcp.WithString("project_id", mcp.Description("Project UUID")),
	mcp.WithString("project", mcp.Description("Project name")),
	mcp.WithString("assignee_id", mcp.Description("Assignee user UUID")),
	mcp.WithString("state", mcp.Description("Workflow state name")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 50)")),
	mcp.WithString("cursor", mcp.Description("end_cursor from the previous call")),
)

var addCommentToolDef = mcp.NewTool("linear_add_comment",
	mcp.WithDescription("Add a comment to a Linear issue."),
	mcp.WithString("issue", mcp.Required(), mcp.Description("Issue UUID or ticket key like ENG-123")),
	mcp.WithString("body", mcp.Required(), mcp.Description("Comment body (markdown)")),
)

var listTeamsToolDef = mcp.NewTool("linear_list_teams",
	mcp.WithDescription("List the workspace's teams."),
)

var listProjectsToolDef = mcp.NewTool("linear_list_projects",
	mcp.WithDescription("List projects, optionally scoped to one team."),
	mcp.WithString("team_id", mcp.Description("Team UUID")),
	mcp.WithString("team", mcp.Description("Team name or key")),
)

var listStatesToolDef = mcp.NewTool("linear_list_states",
	mcp.WithDescription("List workflow states, optionally scoped to one team."),
	mcp.WithString("team_id", mcp.Description("Team UUID")),
	mcp.WithString("team", mcp.Description("Team name or key")),
)

var listLabelsToolDef = mcp.NewTool("linear_list_labels",
	mcp.WithDescription("List issue labels. With a team, unions team labels with workspace-level ones."),
	mcp.WithString("team_id", mcp.Description("Team UUID")),
	mcp.WithString("team", mcp.Description("Team name or key")),
)

var listUsersToolDef = mcp.NewTool("linear_list_users",
	mcp.WithDescription("List the workspace's members."),
)

var getViewerToolDef = mcp.NewTool("linear_get_viewer",
	mcp.WithDescription("Get the user profile behind the configured API key."),
)

var getWorkspaceToolDef = mcp.NewTool("linear_get_workspace",
	mcp.WithDescription("Get aggregated workspace metadata: teams with their workflow states, projects with owning teams, and labels. Cached for five minutes."),
)
