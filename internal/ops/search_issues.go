package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// SearchIssuesInput contains parameters for the SearchIssues operation.
// Every scoping parameter is optional; whatever is supplied narrows the
// filter additively.
type SearchIssuesInput struct {
	Query      string
	Team       resolve.Ref
	Project    resolve.Ref
	AssigneeID string
	StateName  string
	Limit      int
}

// SearchIssuesOutput contains the result of the SearchIssues operation.
type SearchIssuesOutput struct {
	Issues []linear.Issue `json:"issues"`
	Count  int            `json:"count"`
}

// SearchIssues collects issues matching the additive filter, bounded by
// the page ceiling. A state-name filter resolves to the set of matching
// state ids: without a team scope the same name may exist per team, and
// all of them are admitted into the filter.
func SearchIssues(ctx context.Context, d *Deps, in SearchIssuesInput) (*SearchIssuesOutput, error) {
	filter, err := buildFilter(ctx, d, in.Query, in.Team, in.Project, in.AssigneeID, in.StateName)
	if err != nil {
		return nil, err
	}

	issues, err := paginate.CollectAll(ctx, func(ctx context.Context, cursor string) (paginate.Page[linear.Issue], error) {
		return ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (paginate.Page[linear.Issue], error) {
			return d.API.Issues(ctx, filter, in.Limit, cursor)
		})
	}, d.MaxPages)
	if err != nil {
		return nil, err
	}

	if issues == nil {
		issues = []linear.Issue{}
	}
	return &SearchIssuesOutput{Issues: issues, Count: len(issues)}, nil
}

// buildFilter resolves whichever scoping parameters were supplied into
// the remote filter shape.
func buildFilter(ctx context.Context, d *Deps, query string, team, project resolve.Ref, assigneeID, stateName string) (linear.IssueFilter, error) {
	teamID, err := d.Resolver.TeamID(ctx, team)
	if err != nil {
		return linear.IssueFilter{}, err
	}
	projectID, err := d.Resolver.ProjectID(ctx, project, teamID)
	if err != nil {
		return linear.IssueFilter{}, err
	}

	var stateIDs []string
	if stateName != "" {
		stateIDs, err = d.Resolver.StateIDs(ctx, stateName, teamID)
		if err != nil {
			return linear.IssueFilter{}, err
		}
	}

	return linear.IssueFilter{
		Query:      query,
		TeamID:     teamID,
		ProjectID:  projectID,
		AssigneeID: assigneeID,
		StateIDs:   stateIDs,
	}, nil
}
