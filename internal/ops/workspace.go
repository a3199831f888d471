package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
)

// metaKey is the single slot of the workspace snapshot cache; there is
// one workspace per process, so the key carries no parameters.
const metaKey = "workspace"

// TeamMetadata is a team together with its workflow states.
type TeamMetadata struct {
	linear.Team
	States []linear.WorkflowState `json:"states"`
}

// GetWorkspaceOutput is the aggregated workspace metadata document.
type GetWorkspaceOutput struct {
	Teams    []TeamMetadata   `json:"teams"`
	Projects []linear.Project `json:"projects"`
	Labels   []linear.Label   `json:"labels"`
}

// GetWorkspace aggregates teams, per-team workflow states, all projects
// with their owning teams, and labels into one document. The whole
// snapshot is cached so repeated calls skip the teams-by-projects
// fan-out.
func GetWorkspace(ctx context.Context, d *Deps) (*GetWorkspaceOutput, error) {
	if snap, ok := cache.GetAs[*GetWorkspaceOutput](d.Meta, metaKey); ok {
		return snap, nil
	}

	teams, err := d.Resolver.Teams(ctx)
	if err != nil {
		return nil, err
	}
	states, err := d.Resolver.WorkflowStates(ctx, "")
	if err != nil {
		return nil, err
	}
	projects, err := d.Resolver.Projects(ctx, "")
	if err != nil {
		return nil, err
	}
	labels, err := collectLabels(ctx, d, linear.LabelScope{})
	if err != nil {
		return nil, err
	}

	statesByTeam := make(map[string][]linear.WorkflowState, len(teams))
	for _, st := range states {
		statesByTeam[st.TeamID] = append(statesByTeam[st.TeamID], st)
	}

	out := &GetWorkspaceOutput{
		Projects: projects,
		Labels:   labels,
	}
	for _, t := range teams {
		out.Teams = append(out.Teams, TeamMetadata{Team: t, States: statesByTeam[t.ID]})
	}
	if out.Projects == nil {
		out.Projects = []linear.Project{}
	}
	if out.Labels == nil {
		out.Labels = []linear.Label{}
	}

	d.Meta.Set(metaKey, out)
	return out, nil
}
