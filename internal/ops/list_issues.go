package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// ListIssuesInput contains parameters for the ListIssues operation.
type ListIssuesInput struct {
	Team       resolve.Ref
	Project    resolve.Ref
	AssigneeID string
	StateName  string
	Limit      int
	Cursor     string // end cursor of the previous call; empty for the first page
}

// ListIssuesOutput contains one page of issues. The cursor and
// hasNextPage flag are handed back so the caller can continue the
// traversal across tool calls.
type ListIssuesOutput struct {
	Issues      []linear.Issue `json:"issues"`
	HasNextPage bool           `json:"has_next_page"`
	EndCursor   string         `json:"end_cursor,omitempty"`
}

// ListIssues fetches a single page of the filtered issue listing.
// Pagination is caller-driven, not page-ceiling-bounded: each call
// returns one page and the cursor for the next.
func ListIssues(ctx context.Context, d *Deps, in ListIssuesInput) (*ListIssuesOutput, error) {
	filter, err := buildFilter(ctx, d, "", in.Team, in.Project, in.AssigneeID, in.StateName)
	if err != nil {
		return nil, err
	}

	page, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (paginate.Page[linear.Issue], error) {
		return d.API.Issues(ctx, filter, in.Limit, in.Cursor)
	})
	if err != nil {
		return nil, err
	}

	issues := page.Items
	if issues == nil {
		issues = []linear.Issue{}
	}
	return &ListIssuesOutput{
		Issues:      issues,
		HasNextPage: page.HasNextPage,
		EndCursor:   page.EndCursor,
	}, nil
}
