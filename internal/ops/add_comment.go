package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

// AddCommentInput contains parameters for the AddComment operation.
type AddCommentInput struct {
	Issue string // UUID or ticket key
	Body  string
}

// AddCommentOutput contains the result of the AddComment operation.
type AddCommentOutput struct {
	Comment linear.Comment `json:"comment"`
}

// AddComment attaches a comment to an issue, with the same
// mutation/confirmation failure split as the issue mutations.
func AddComment(ctx context.Context, d *Deps, in AddCommentInput) (*AddCommentOutput, error) {
	if in.Issue == "" {
		return nil, errors.NewValidation("issue id or ticket key is required")
	}
	if in.Body == "" {
		return nil, errors.NewValidation("comment body is required")
	}

	id, err := d.Resolver.IssueID(ctx, in.Issue)
	if err != nil {
		return nil, err
	}

	res, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (linear.MutationResult[linear.Comment], error) {
		return d.API.CreateComment(ctx, id, in.Body)
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.NewMutationFailed("comment create")
	}
	if res.Entity == nil {
		return nil, errors.NewConfirmationFailed("comment create")
	}
	return &AddCommentOutput{Comment: *res.Entity}, nil
}
