// Package resolve maps human-readable names (team, project, workflow
// state) and issue identifiers to the remote API's opaque ids, backed by
// a time-bounded cache.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

// Cache keys are namespaced by entity kind and scoping parameter; a
// projects listing scoped to one team is a distinct entry from the
// all-teams listing.
const (
	keyTeams       = "teams"
	keyStates      = "workflow_states"
	keyProjectsPfx = "projects:"
	scopeAllTeams  = "all"
)

// Resolver centralizes name-to-id resolution so fuzzy matching and
// alternative-enumeration logic is not duplicated across tool handlers.
type Resolver struct {
	api      linear.API
	gov      *ratelimit.Governor
	cache    *cache.Cache
	maxPages int
}

// New creates a Resolver over the given collaborators.
func New(api linear.API, gov *ratelimit.Governor, c *cache.Cache) *Resolver {
	return &Resolver{api: api, gov: gov, cache: c, maxPages: paginate.DefaultMaxPages}
}

// TeamID resolves a team Ref. Ids pass through without an existence
// check; names match case-insensitively against team display name or
// short key. Unspecified resolves to the empty id.
func (r *Resolver) TeamID(ctx context.Context, ref Ref) (string, error) {
	switch ref.kind {
	case refUnspecified:
		return "", nil
	case refID:
		return ref.value, nil
	}

	teams, err := r.Teams(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range teams {
		if strings.EqualFold(t.Name, ref.value) || strings.EqualFold(t.Key, ref.value) {
			return t.ID, nil
		}
	}

	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return "", errors.NewNotFound(fmt.Sprintf(
		"team %q not found; known teams: %s", ref.value, strings.Join(names, ", ")))
}

// ProjectID resolves a project Ref, matching names within the optional
// team scope.
func (r *Resolver) ProjectID(ctx context.Context, ref Ref, teamScope string) (string, error) {
	switch ref.kind {
	case refUnspecified:
		return "", nil
	case refID:
		return ref.value, nil
	}

	projects, err := r.projects(ctx, teamScope)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref.value) {
			return p.ID, nil
		}
	}

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return "", errors.NewNotFound(fmt.Sprintf(
		"project %q not found; known projects: %s", ref.value, strings.Join(names, ", ")))
}

// StateID resolves a workflow-state Ref. A state name may be ambiguous
// across teams, so a name match additionally requires either no team
// scope or membership in the scoped team; callers needing determinism
// must supply the scope.
func (r *Resolver) StateID(ctx context.Context, ref Ref, teamScope string) (string, error) {
	switch ref.kind {
	case refUnspecified:
		return "", nil
	case refID:
		return ref.value, nil
	}

	states, err := r.WorkflowStates(ctx, teamScope)
	if err != nil {
		return "", err
	}
	for _, st := range states {
		if strings.EqualFold(st.Name, ref.value) {
			return st.ID, nil
		}
	}
	return "", errors.NewNotFound(fmt.Sprintf(
		"workflow state %q not found; known states: %s",
		ref.value, strings.Join(dedupedStateNames(states), ", ")))
}

// StateIDs collects every state id whose name matches, across all teams
// when no scope narrows it. The same name may exist per team, so a
// name-based filter resolves to a set rather than a single id.
func (r *Resolver) StateIDs(ctx context.Context, name, teamScope string) ([]string, error) {
	states, err := r.WorkflowStates(ctx, teamScope)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, st := range states {
		if strings.EqualFold(st.Name, name) {
			ids = append(ids, st.ID)
		}
	}
	if len(ids) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf(
			"workflow state %q not found; known states: %s",
			name, strings.Join(dedupedStateNames(states), ", ")))
	}
	return ids, nil
}

// IssueID resolves an issue identifier: canonical UUIDs pass through with
// no network call, anything else is treated as a human-facing ticket key
// and resolved via a single-result search.
func (r *Resolver) IssueID(ctx context.Context, identifier string) (string, error) {
	if isUUID(identifier) {
		return identifier, nil
	}

	issues, err := ratelimit.Do(ctx, r.gov, func(ctx context.Context) ([]linear.Issue, error) {
		return r.api.SearchIssues(ctx, identifier, 1)
	})
	if err != nil {
		return "", err
	}
	if len(issues) == 0 {
		return "", errors.NewNotFound(fmt.Sprintf("issue %q not found", identifier))
	}
	return issues[0].ID, nil
}

// Teams returns the cached full team listing, fetching it once per TTL.
func (r *Resolver) Teams(ctx context.Context) ([]linear.Team, error) {
	if teams, ok := cache.GetAs[[]linear.Team](r.cache, keyTeams); ok {
		return teams, nil
	}

	teams, err := paginate.CollectAll(ctx, func(ctx context.Context, cursor string) (paginate.Page[linear.Team], error) {
		return ratelimit.Do(ctx, r.gov, func(ctx context.Context) (paginate.Page[linear.Team], error) {
			return r.api.Teams(ctx, cursor)
		})
	}, r.maxPages)
	if err != nil {
		return nil, err
	}

	r.cache.Set(keyTeams, teams)
	return teams, nil
}

// WorkflowStates returns the workflow states visible in teamScope (all
// teams when empty). States whose owning team cannot be resolved are
// dropped before caching.
func (r *Resolver) WorkflowStates(ctx context.Context, teamScope string) ([]linear.WorkflowState, error) {
	all, ok := cache.GetAs[[]linear.WorkflowState](r.cache, keyStates)
	if !ok {
		fetched, err := paginate.CollectAll(ctx, func(ctx context.Context, cursor string) (paginate.Page[linear.WorkflowState], error) {
			return ratelimit.Do(ctx, r.gov, func(ctx context.Context) (paginate.Page[linear.WorkflowState], error) {
				return r.api.WorkflowStates(ctx, cursor)
			})
		}, r.maxPages)
		if err != nil {
			return nil, err
		}

		all = make([]linear.WorkflowState, 0, len(fetched))
		for _, st := range fetched {
			if st.TeamID == "" {
				continue
			}
			all = append(all, st)
		}
		r.cache.Set(keyStates, all)
	}

	if teamScope == "" {
		return all, nil
	}
	var scoped []linear.WorkflowState
	for _, st := range all {
		if st.TeamID == teamScope {
			scoped = append(scoped, st)
		}
	}
	return scoped, nil
}

// projects returns the cached project listing for teamScope, keyed per
// scope so a team-scoped listing never shadows the all-teams one.
func (r *Resolver) projects(ctx context.Context, teamScope string) ([]linear.Project, error) {
	scope := teamScope
	if scope == "" {
		scope = scopeAllTeams
	}
	key := keyProjectsPfx + scope

	if projects, ok := cache.GetAs[[]linear.Project](r.cache, key); ok {
		return projects, nil
	}

	projects, err := paginate.CollectAll(ctx, func(ctx context.Context, cursor string) (paginate.Page[linear.Project], error) {
		return ratelimit.Do(ctx, r.gov, func(ctx context.Context) (paginate.Page[linear.Project], error) {
			return r.api.Projects(ctx, teamScope, cursor)
		})
	}, r.maxPages)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, projects)
	return projects, nil
}

// Projects exposes the scoped project listing to tool operations.
func (r *Resolver) Projects(ctx context.Context, teamScope string) ([]linear.Project, error) {
	return r.projects(ctx, teamScope)
}

func dedupedStateNames(states []linear.WorkflowState) []string {
	seen := make(map[string]bool, len(states))
	names := make([]string, 0, len(states))
	for _, st := range states {
		lower := strings.ToLower(st.Name)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		names = append(names, st.Name)
	}
	sort.Strings(names)
	return names
}

// isUUID reports whether s has the canonical 8-4-4-4-12 textual shape.
// uuid.Parse alone also admits URN and braced forms, hence the length
// and hyphen checks.
func isUUID(s string) bool {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
