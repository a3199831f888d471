package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/ops"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	deps *ops.Deps
	log  *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *ops.Deps, log *zap.Logger) *Handlers {
	return &Handlers{deps: deps, log: log}
}

// Request types for each tool

// CreateIssueRequest represents the arguments for create_issue.
type CreateIssueRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	TeamID      string   `json:"team_id,omitempty"`
	Team        string   `json:"team,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	Project     string   `json:"project,omitempty"`
	StateID     string   `json:"state_id,omitempty"`
	State       string   `json:"state,omitempty"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	LabelIDs    []string `json:"label_ids,omitempty"`
}

// UpdateIssueRequest represents the arguments for update_issue.
type UpdateIssueRequest struct {
	Issue       string  `json:"issue"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TeamID      string  `json:"team_id,omitempty"`
	Team        string  `json:"team,omitempty"`
	StateID     string  `json:"state_id,omitempty"`
	State       string  `json:"state,omitempty"`
	ProjectID   string  `json:"project_id,omitempty"`
	Project     string  `json:"project,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// GetIssueRequest represents the arguments for get_issue.
type GetIssueRequest struct {
	Issue string `json:"issue"`
}

// SearchIssuesRequest represents the arguments for search_issues.
type SearchIssuesRequest struct {
	Query      string `json:"query,omitempty"`
	TeamID     string `json:"team_id,omitempty"`
	Team       string `json:"team,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	Project    string `json:"project,omitempty"`
	AssigneeID string `json:"assignee_id,omitempty"`
	State      string `json:"state,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ListIssuesRequest represents the arguments for list_issues.
type ListIssuesRequest struct {
	TeamID     string `json:"team_id,omitempty"`
	Team       string `json:"team,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	Project    string `json:"project,omitempty"`
	AssigneeID string `json:"assignee_id,omitempty"`
	State      string `json:"state,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
}

// AddCommentRequest represents the arguments for add_comment.
type AddCommentRequest struct {
	Issue string `json:"issue"`
	Body  string `json:"body"`
}

// TeamScopedRequest represents the arguments of the team-scoped listings.
type TeamScopedRequest struct {
	TeamID string `json:"team_id,omitempty"`
	Team   string `json:"team,omitempty"`
}

// Handler implementations

// HandleCreateIssue handles the create_issue tool call.
func (h *Handlers) HandleCreateIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateIssueRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.CreateIssue(ctx, h.deps, ops.CreateIssueInput{
		Team:        resolve.RefOf(input.TeamID, input.Team),
		Project:     resolve.RefOf(input.ProjectID, input.Project),
		State:       resolve.RefOf(input.StateID, input.State),
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		Priority:    input.Priority,
		LabelIDs:    input.LabelIDs,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdateIssue handles the update_issue tool call.
func (h *Handlers) HandleUpdateIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateIssueRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.UpdateIssue(ctx, h.deps, ops.UpdateIssueInput{
		Issue:       input.Issue,
		Team:        resolve.RefOf(input.TeamID, input.Team),
		Project:     resolve.RefOf(input.ProjectID, input.Project),
		State:       resolve.RefOf(input.StateID, input.State),
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		Priority:    input.Priority,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleGetIssue handles the get_issue tool call.
func (h *Handlers) HandleGetIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetIssueRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.GetIssue(ctx, h.deps, ops.GetIssueInput{Issue: input.Issue})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearchIssues handles the search_issues tool call.
func (h *Handlers) HandleSearchIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchIssuesRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.SearchIssues(ctx, h.deps, ops.SearchIssuesInput{
		Query:      input.Query,
		Team:       resolve.RefOf(input.TeamID, input.Team),
		Project:    resolve.RefOf(input.ProjectID, input.Project),
		AssigneeID: input.AssigneeID,
		StateName:  input.State,
		Limit:      input.Limit,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleListIssues handles the list_issues tool call.
func (h *Handlers) HandleListIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListIssuesRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.ListIssues(ctx, h.deps, ops.ListIssuesInput{
		Team:       resolve.RefOf(input.TeamID, input.Team),
		Project:    resolve.RefOf(input.ProjectID, input.Project),
		AssigneeID: input.AssigneeID,
		StateName:  input.State,
		Limit:      input.Limit,
		Cursor:     input.Cursor,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleAddComment handles the add_comment tool call.
func (h *Handlers) HandleAddComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddCommentRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.AddComment(ctx, h.deps, ops.AddCommentInput{
		Issue: input.Issue,
		Body:  input.Body,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleListTeams handles the list_teams tool call.
func (h *Handlers) HandleListTeams(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListTeams(ctx, h.deps)
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// HandleListProjects handles the list_projects tool call.
func (h *Handlers) HandleListProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TeamScopedRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.ListProjects(ctx, h.deps, ops.ListProjectsInput{
		Team: resolve.RefOf(input.TeamID, input.Team),
	})
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// HandleListStates handles the list_states tool call.
func (h *Handlers) HandleListStates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TeamScopedRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.ListStates(ctx, h.deps, ops.ListStatesInput{
		Team: resolve.RefOf(input.TeamID, input.Team),
	})
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// HandleListLabels handles the list_labels tool call.
func (h *Handlers) HandleListLabels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TeamScopedRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.ListLabels(ctx, h.deps, ops.ListLabelsInput{
		Team: resolve.RefOf(input.TeamID, input.Team),
	})
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// HandleListUsers handles the list_users tool call.
func (h *Handlers) HandleListUsers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListUsers(ctx, h.deps)
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// HandleGetViewer handles the get_viewer tool call.
func (h *Handlers) HandleGetViewer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetViewer(ctx, h.deps)
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// HandleGetWorkspace handles the get_workspace tool call.
func (h *Handlers) HandleGetWorkspace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetWorkspace(ctx, h.deps)
	if err != nil {
		return h.errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult converts any failure into the uniform text-envelope error
// form. Classification attaches a recovery hint where one is known; no
// fault crosses the tool boundary unformatted.
func (h *Handlers) errorResult(err error) *mcp.CallToolResult {
	e := errors.Classify(err)
	h.log.Debug("tool call failed",
		zap.String("code", string(e.Code)),
		zap.String("message", e.Message))
	return mcp.NewToolResultError(e.Format())
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
