package linear

import (
	"context"
	"time"

	"github.com/tidewater-labs/linear-mcp/internal/paginate"
)

// Flat read-only projections of remote API objects, carrying only the
// fields the tools need.

// Team is an issue-owning group with its own workflow.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Project groups issues across one or more teams.
type Project struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	State   string   `json:"state,omitempty"`
	TeamIDs []string `json:"team_ids,omitempty"`
}

// WorkflowState is one lifecycle stage of a team's issues.
type WorkflowState struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Color  string `json:"color,omitempty"`
	TeamID string `json:"team_id,omitempty"`
}

// Label tags issues; TeamID is empty for workspace-level labels.
type Label struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	TeamID string `json:"team_id,omitempty"`
}

// User is a workspace member.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Active      bool   `json:"active"`
}

// Issue is a single tracked work item.
type Issue struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    int       `json:"priority"`
	URL         string    `json:"url,omitempty"`
	TeamID      string    `json:"team_id,omitempty"`
	TeamKey     string    `json:"team_key,omitempty"`
	StateID     string    `json:"state_id,omitempty"`
	StateName   string    `json:"state_name,omitempty"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Comment is a note attached to an issue.
type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	URL       string    `json:"url,omitempty"`
	IssueID   string    `json:"issue_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// IssueCreate carries the fields of an issue-creation mutation. IDs must
// already be resolved.
type IssueCreate struct {
	TeamID      string
	Title       string
	Description string
	StateID     string
	ProjectID   string
	AssigneeID  string
	Priority    *int
	LabelIDs    []string
}

// IssueUpdate carries the changed fields of an issue update. Nil means
// leave the field untouched.
type IssueUpdate struct {
	Title       *string
	Description *string
	StateID     *string
	ProjectID   *string
	AssigneeID  *string
	Priority    *int
}

// IssueFilter is the additive filter for issue listings. Zero-valued
// fields are omitted from the remote query.
type IssueFilter struct {
	Query      string   // free-text match on title or description
	TeamID     string
	ProjectID  string
	AssigneeID string
	StateIDs   []string // any-of; may span teams when unscoped
}

// LabelScope selects which labels a listing returns.
type LabelScope struct {
	TeamID        string // non-empty: labels of this team
	WorkspaceOnly bool   // true: labels attached to no team
}

// MutationResult is the remote API's write outcome: a success flag plus
// the written entity, which the remote may fail to hand back even on
// success.
type MutationResult[T any] struct {
	Success bool
	Entity  *T
}

// API is the capability surface of the remote issue tracker consumed by
// the resolver and the tool operations. The GraphQL client implements it;
// tests substitute fakes.
type API interface {
	Viewer(ctx context.Context) (User, error)
	Teams(ctx context.Context, cursor string) (paginate.Page[Team], error)
	Projects(ctx context.Context, teamID, cursor string) (paginate.Page[Project], error)
	WorkflowStates(ctx context.Context, cursor string) (paginate.Page[WorkflowState], error)
	Labels(ctx context.Context, scope LabelScope, cursor string) (paginate.Page[Label], error)
	Users(ctx context.Context, cursor string) (paginate.Page[User], error)

	Issue(ctx context.Context, id string) (Issue, error)
	SearchIssues(ctx context.Context, term string, limit int) ([]Issue, error)
	Issues(ctx context.Context, filter IssueFilter, limit int, cursor string) (paginate.Page[Issue], error)

	CreateIssue(ctx context.Context, in IssueCreate) (MutationResult[Issue], error)
	UpdateIssue(ctx context.Context, id string, in IssueUpdate) (MutationResult[Issue], error)
	CreateComment(ctx context.Context, issueID, body string) (MutationResult[Comment], error)
}
