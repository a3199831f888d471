package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// UpdateIssueInput contains parameters for the UpdateIssue operation.
// Nil field pointers leave the remote value untouched.
type UpdateIssueInput struct {
	Issue       string // UUID or ticket key
	Team        resolve.Ref
	Project     resolve.Ref
	State       resolve.Ref
	Title       *string
	Description *string
	AssigneeID  *string
	Priority    *int
}

// UpdateIssueOutput contains the result of the UpdateIssue operation.
type UpdateIssueOutput struct {
	Issue linear.Issue `json:"issue"`
}

// UpdateIssue resolves the issue and any scoping refs, then issues the
// update mutation with the same mutation/confirmation failure split as
// CreateIssue.
func UpdateIssue(ctx context.Context, d *Deps, in UpdateIssueInput) (*UpdateIssueOutput, error) {
	if in.Issue == "" {
		return nil, errors.NewValidation("issue id or ticket key is required")
	}

	id, err := d.Resolver.IssueID(ctx, in.Issue)
	if err != nil {
		return nil, err
	}

	teamID, err := d.Resolver.TeamID(ctx, in.Team)
	if err != nil {
		return nil, err
	}
	// State names are team-scoped; when no team was supplied, borrow the
	// issue's own team so the name resolves deterministically.
	if teamID == "" && in.State.Named() {
		issue, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (linear.Issue, error) {
			return d.API.Issue(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		teamID = issue.TeamID
	}

	stateID, err := d.Resolver.StateID(ctx, in.State, teamID)
	if err != nil {
		return nil, err
	}
	projectID, err := d.Resolver.ProjectID(ctx, in.Project, teamID)
	if err != nil {
		return nil, err
	}

	update := linear.IssueUpdate{
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		Priority:    in.Priority,
	}
	if stateID != "" {
		update.StateID = &stateID
	}
	if projectID != "" {
		update.ProjectID = &projectID
	}

	res, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (linear.MutationResult[linear.Issue], error) {
		return d.API.UpdateIssue(ctx, id, update)
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.NewMutationFailed("issue update")
	}
	if res.Entity == nil {
		return nil, errors.NewConfirmationFailed("issue update")
	}

	d.Log.Info("issue updated", logIssue(res.Entity)...)
	return &UpdateIssueOutput{Issue: *res.Entity}, nil
}
