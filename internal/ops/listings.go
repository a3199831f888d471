package ops

import (
	"context"

	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// ListTeamsOutput contains the result of the ListTeams operation.
type ListTeamsOutput struct {
	Teams []linear.Team `json:"teams"`
}

// ListTeams returns the workspace's teams from the resolution cache.
func ListTeams(ctx context.Context, d *Deps) (*ListTeamsOutput, error) {
	teams, err := d.Resolver.Teams(ctx)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []linear.Team{}
	}
	return &ListTeamsOutput{Teams: teams}, nil
}

// ListProjectsInput contains parameters for the ListProjects operation.
type ListProjectsInput struct {
	Team resolve.Ref
}

// ListProjectsOutput contains the result of the ListProjects operation.
type ListProjectsOutput struct {
	Projects []linear.Project `json:"projects"`
}

// ListProjects returns projects, optionally scoped to one team.
func ListProjects(ctx context.Context, d *Deps, in ListProjectsInput) (*ListProjectsOutput, error) {
	teamID, err := d.Resolver.TeamID(ctx, in.Team)
	if err != nil {
		return nil, err
	}
	projects, err := d.Resolver.Projects(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []linear.Project{}
	}
	return &ListProjectsOutput{Projects: projects}, nil
}

// ListStatesInput contains parameters for the ListStates operation.
type ListStatesInput struct {
	Team resolve.Ref
}

// ListStatesOutput contains the result of the ListStates operation.
type ListStatesOutput struct {
	States []linear.WorkflowState `json:"states"`
}

// ListStates returns workflow states, optionally scoped to one team.
func ListStates(ctx context.Context, d *Deps, in ListStatesInput) (*ListStatesOutput, error) {
	teamID, err := d.Resolver.TeamID(ctx, in.Team)
	if err != nil {
		return nil, err
	}
	states, err := d.Resolver.WorkflowStates(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if states == nil {
		states = []linear.WorkflowState{}
	}
	return &ListStatesOutput{States: states}, nil
}

// ListUsersOutput contains the result of the ListUsers operation.
type ListUsersOutput struct {
	Users []linear.User `json:"users"`
}

// ListUsers returns the workspace's members.
func ListUsers(ctx context.Context, d *Deps) (*ListUsersOutput, error) {
	users, err := paginate.CollectAll(ctx, func(ctx context.Context, cursor string) (paginate.Page[linear.User], error) {
		return ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (paginate.Page[linear.User], error) {
			return d.API.Users(ctx, cursor)
		})
	}, d.MaxPages)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []linear.User{}
	}
	return &ListUsersOutput{Users: users}, nil
}

// GetViewerOutput contains the result of the GetViewer operation.
type GetViewerOutput struct {
	User linear.User `json:"user"`
}

// GetViewer returns the profile behind the configured credential.
func GetViewer(ctx context.Context, d *Deps) (*GetViewerOutput, error) {
	user, err := ratelimit.Do(ctx, d.Governor, func(ctx context.Context) (linear.User, error) {
		return d.API.Viewer(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &GetViewerOutput{User: user}, nil
}
