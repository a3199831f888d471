package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// ListLabelsInput contains parameters for the ListLabels operation.
type ListLabelsInput struct {
	Team resolve.Ref
}

// ListLabelsOutput contains the result of the ListLabels operation.
type ListLabelsOutput struct {
	Labels []linear.Label `json:"labels"`
}

// ListLabels returns issue labels. With a team scope it unions the
// team's labels with workspace-level (no-team) ones, deduplicated by id;
// without a scope it returns the unscoped query's raw result.
func ListLabels(ctx context.Context, d *Deps, in ListLabelsInput) (*ListLabelsOutput, error) {
	teamID, err := d.Resolver.TeamID(ctx, in.Team)
	if err != nil {
		return nil, err
	}

	if teamID == "" {
		labels, err := collectLabels(ctx, d, linear.LabelScope{})
		if err != nil {
			return nil, err
		}
		if labels == nil {
			labels = []linear.Label{}
		}
		return &ListLabelsOutput{Labels: labels}, nil
	}

	teamLabels, err := collectLabels(ctx, d, linear.LabelScope{TeamID: teamID})
	if err != nil {
		return nil, err
	}
	workspaceLabels, err := collectLabels(ctx, d, linear.LabelScope{WorkspaceOnly: true})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(teamLabels)+len(workspaceLabels))
	merged := make([]linear.Label, 0, len(teamLabels)+len(workspaceLabels))
	for _, l := range append(teamLabels, workspaceLabels...) {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		merged = append(merged, l)
	}
	return &ListLabelsOutput{Labels: merged}, nil
}

func collectLabels(ctx context.Context, d *Deps, scope linear.LabelScope) ([]linear.Label, error) {
	return paginate.CollectAll(ctx, func(ctx context.Context, cursor string) (paginate.Page[linear.Label], error) {
		return ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (paginate.Page[linear.Label], error) {
			return d.API.Labels(ctx, scope, cursor)
		})
	}, d.MaxPages)
}
