package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

// GetIssueInput contains parameters for the GetIssue operation.
type GetIssueInput struct {
	Issue string // UUID or ticket key
}

// GetIssueOutput contains the result of the GetIssue operation.
type GetIssueOutput struct {
	Issue linear.Issue `json:"issue"`
}

// GetIssue fetches one issue, accepting either a UUID or a human ticket
// key like ENG-123.
func GetIssue(ctx context.Context, d *Deps, in GetIssueInput) (*GetIssueOutput, error) {
	if in.Issue == "" {
		return nil, errors.NewValidation("issue id or ticket key is required")
	}

	id, err := d.Resolver.IssueID(ctx, in.Issue)
	if err != nil {
		return nil, err
	}

	issue, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (linear.Issue, error) {
		return d.API.Issue(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &GetIssueOutput{Issue: issue}, nil
}
