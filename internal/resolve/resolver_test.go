package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/linear/lineartest"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

func newResolver(fake *lineartest.Fake) *Resolver {
	return New(fake, ratelimit.New(100, time.Minute), cache.New(5*time.Minute))
}

func engineeringFake() *lineartest.Fake {
	return &lineartest.Fake{
		TeamList: []linear.Team{{ID: "1", Name: "Engineering", Key: "ENG"}},
	}
}

func TestTeamID_PassthroughWithoutLookup(t *testing.T) {
	fake := engineeringFake()
	r := newResolver(fake)

	id, err := r.TeamID(context.Background(), ByID("abc-id"))
	require.NoError(t, err)
	require.Equal(t, "abc-id", id)
	require.Zero(t, fake.TotalCalls(), "id passthrough must not touch the network")
}

func TestTeamID_Unspecified(t *testing.T) {
	fake := engineeringFake()
	r := newResolver(fake)

	id, err := r.TeamID(context.Background(), RefOf("", ""))
	require.NoError(t, err)
	require.Empty(t, id)
	require.Zero(t, fake.TotalCalls())
}

func TestTeamID_MatchesNameOrKeyCaseInsensitive(t *testing.T) {
	r := newResolver(engineeringFake())

	for _, name := range []string{"engineering", "Engineering", "eng", "ENG"} {
		id, err := r.TeamID(context.Background(), ByName(name))
		require.NoError(t, err, "input %q", name)
		require.Equal(t, "1", id, "input %q", name)
	}
}

func TestTeamID_NotFoundEnumeratesKnownTeams(t *testing.T) {
	r := newResolver(engineeringFake())

	_, err := r.TeamID(context.Background(), ByName("Sales"))
	require.True(t, errors.Is(err, errors.CodeNotFound))
	require.Contains(t, err.Error(), "Sales")
	require.Contains(t, err.Error(), "Engineering")
}

func TestRefOf_IDWinsOverName(t *testing.T) {
	fake := engineeringFake()
	r := newResolver(fake)

	id, err := r.TeamID(context.Background(), RefOf("direct-id", "Engineering"))
	require.NoError(t, err)
	require.Equal(t, "direct-id", id)
	require.Zero(t, fake.TotalCalls())
}

func TestTeams_CachedAcrossLookups(t *testing.T) {
	fake := engineeringFake()
	r := newResolver(fake)

	_, err := r.TeamID(context.Background(), ByName("eng"))
	require.NoError(t, err)
	_, err = r.TeamID(context.Background(), ByName("engineering"))
	require.NoError(t, err)
	require.Equal(t, 1, fake.Calls("Teams"), "second lookup must hit the cache")
}

func TestProjectID_ScopedCacheKeys(t *testing.T) {
	fake := &lineartest.Fake{
		ProjectList: []linear.Project{
			{ID: "p1", Name: "Roadmap", TeamIDs: []string{"t1"}},
			{ID: "p2", Name: "Migration", TeamIDs: []string{"t2"}},
		},
	}
	r := newResolver(fake)

	id, err := r.ProjectID(context.Background(), ByName("roadmap"), "t1")
	require.NoError(t, err)
	require.Equal(t, "p1", id)

	// Different scope means a different cache key, so a second fetch.
	_, err = r.ProjectID(context.Background(), ByName("migration"), "t2")
	require.NoError(t, err)
	require.Equal(t, 2, fake.Calls("Projects"))

	// Same scope reuses the cached listing.
	_, err = r.ProjectID(context.Background(), ByName("roadmap"), "t1")
	require.NoError(t, err)
	require.Equal(t, 2, fake.Calls("Projects"))
}

func TestStateID_TeamScopeDisambiguates(t *testing.T) {
	fake := &lineartest.Fake{
		StateList: []linear.WorkflowState{
			{ID: "s1", Name: "Todo", TeamID: "t1"},
			{ID: "s2", Name: "Todo", TeamID: "t2"},
			{ID: "s3", Name: "Done", TeamID: "t1"},
		},
	}
	r := newResolver(fake)

	id, err := r.StateID(context.Background(), ByName("todo"), "t2")
	require.NoError(t, err)
	require.Equal(t, "s2", id)
}

func TestStateID_NotFoundEnumeratesDeduplicatedCandidates(t *testing.T) {
	fake := &lineartest.Fake{
		StateList: []linear.WorkflowState{
			{ID: "s1", Name: "Todo", TeamID: "t1"},
			{ID: "s2", Name: "Todo", TeamID: "t2"},
			{ID: "s3", Name: "Done", TeamID: "t1"},
		},
	}
	r := newResolver(fake)

	_, err := r.StateID(context.Background(), ByName("Archived"), "")
	require.True(t, errors.Is(err, errors.CodeNotFound))
	require.Contains(t, err.Error(), "Archived")
	// "Todo" appears once despite existing in two teams.
	require.Contains(t, err.Error(), "Done, Todo")
}

func TestStateIDs_CollectsAcrossTeamsWhenUnscoped(t *testing.T) {
	fake := &lineartest.Fake{
		StateList: []linear.WorkflowState{
			{ID: "s1", Name: "Todo", TeamID: "t1"},
			{ID: "s2", Name: "Todo", TeamID: "t2"},
			{ID: "s3", Name: "Done", TeamID: "t1"},
		},
	}
	r := newResolver(fake)

	ids, err := r.StateIDs(context.Background(), "todo", "")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"s1", "s2"}, ids)

	ids, err = r.StateIDs(context.Background(), "todo", "t1")
	require.NoError(t, err)
	require.Equal(t, []string{"s1"}, ids)
}

func TestWorkflowStates_DropsStatesWithoutTeam(t *testing.T) {
	fake := &lineartest.Fake{
		StateList: []linear.WorkflowState{
			{ID: "s1", Name: "Todo", TeamID: "t1"},
			{ID: "orphan", Name: "Limbo"},
		},
	}
	r := newResolver(fake)

	states, err := r.WorkflowStates(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, states, 1)
	require.Equal(t, "s1", states[0].ID)
}

func TestIssueID_UUIDShortCircuit(t *testing.T) {
	fake := &lineartest.Fake{}
	r := newResolver(fake)

	const id = "a1b2c3d4-0000-0000-0000-000000000000"
	got, err := r.IssueID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.Zero(t, fake.TotalCalls(), "UUIDs must resolve without a network call")
}

func TestIssueID_TicketKeySearchesOnce(t *testing.T) {
	fake := &lineartest.Fake{
		IssueByID: map[string]linear.Issue{
			"uuid-123": {ID: "uuid-123", Identifier: "GEN-123"},
		},
	}
	r := newResolver(fake)

	got, err := r.IssueID(context.Background(), "GEN-123")
	require.NoError(t, err)
	require.Equal(t, "uuid-123", got)
	require.Equal(t, 1, fake.Calls("SearchIssues"))
}

func TestIssueID_TicketKeyNotFound(t *testing.T) {
	fake := &lineartest.Fake{}
	r := newResolver(fake)

	_, err := r.IssueID(context.Background(), "GEN-999")
	require.True(t, errors.Is(err, errors.CodeNotFound))
	require.Contains(t, err.Error(), "GEN-999")
}

func TestIsUUID_RejectsNonCanonicalForms(t *testing.T) {
	valid := "a1b2c3d4-0000-0000-0000-000000000000"
	require.True(t, isUUID(valid))

	for _, s := range []string{
		"GEN-123",
		"urn:uuid:a1b2c3d4-0000-0000-0000-000000000000",
		"{a1b2c3d4-0000-0000-0000-000000000000}",
		"a1b2c3d400000000000000000000000000",
		"",
	} {
		require.False(t, isUUID(s), "input %q", s)
	}
}
