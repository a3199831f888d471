package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// CreateIssueInput contains parameters for the CreateIssue operation.
type CreateIssueInput struct {
	Team        resolve.Ref
	Project     resolve.Ref
	State       resolve.Ref
	Title       string
	Description string
	AssigneeID  string
	Priority    *int
	LabelIDs    []string
}

// CreateIssueOutput contains the result of the CreateIssue operation.
type CreateIssueOutput struct {
	Issue linear.Issue `json:"issue"`
}

// CreateIssue resolves the scoping refs and issues the creation mutation.
// A remote-reported non-success and a missing post-write entity are
// distinct failures: the latter means the issue exists but could not be
// confirmed.
func CreateIssue(ctx context.Context, d *Deps, in CreateIssueInput) (*CreateIssueOutput, error) {
	if in.Title == "" {
		return nil, errors.NewValidation("title is required")
	}
	if in.Team.Unspecified() {
		return nil, errors.NewValidation("team is required (by id or name)")
	}

	teamID, err := d.Resolver.TeamID(ctx, in.Team)
	if err != nil {
		return nil, err
	}
	projectID, err := d.Resolver.ProjectID(ctx, in.Project, teamID)
	if err != nil {
		return nil, err
	}
	stateID, err := d.Resolver.StateID(ctx, in.State, teamID)
	if err != nil {
		return nil, err
	}

	res, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (linear.MutationResult[linear.Issue], error) {
		return d.API.CreateIssue(ctx, linear.IssueCreate{
			TeamID:      teamID,
			Title:       in.Title,
			Description: in.Description,
			StateID:     stateID,
			ProjectID:   projectID,
			AssigneeID:  in.AssigneeID,
			Priority:    in.Priority,
			LabelIDs:    in.LabelIDs,
		})
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.NewMutationFailed("issue create")
	}
	if res.Entity == nil {
		return nil, errors.NewConfirmationFailed("issue create")
	}

	d.Log.Info("issue created", logIssue(res.Entity)...)
	return &CreateIssueOutput{Issue: *res.Entity}, nil
}
