package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
)

func TestGetIssue_ByUUID(t *testing.T) {
	fake := fixtureFake()
	d := newTestDeps(fake)

	out, err := GetIssue(context.Background(), d, GetIssueInput{Issue: issueUUID})
	require.NoError(t, err)
	require.Equal(t, "ENG-1", out.Issue.Identifier)
	require.Zero(t, fake.Calls("SearchIssues"), "UUIDs skip the search round-trip")
}

func TestGetIssue_ByTicketKey(t *testing.T) {
	fake := fixtureFake()
	d := newTestDeps(fake)

	out, err := GetIssue(context.Background(), d, GetIssueInput{Issue: "ENG-1"})
	require.NoError(t, err)
	require.Equal(t, issueUUID, out.Issue.ID)
	require.Equal(t, 1, fake.Calls("SearchIssues"))
}

func TestGetIssue_UnknownTicketKey(t *testing.T) {
	d := newTestDeps(fixtureFake())

	_, err := GetIssue(context.Background(), d, GetIssueInput{Issue: "ENG-404"})
	require.True(t, errors.Is(err, errors.CodeNotFound))
	require.Contains(t, err.Error(), "ENG-404")
}
