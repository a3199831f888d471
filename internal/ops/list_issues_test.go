package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
)

func TestListIssues_ThreadsCursorToCaller(t *testing.T) {
	fake := fixtureFake()
	var gotCursor string
	fake.IssuesFn = func(f linear.IssueFilter, limit int, cursor string) (paginate.Page[linear.Issue], error) {
		gotCursor = cursor
		return paginate.Page[linear.Issue]{
			Items:       []linear.Issue{{ID: "i1"}},
			HasNextPage: true,
			EndCursor:   "next-cursor",
		}, nil
	}
	d := newTestDeps(fake)

	out, err := ListIssues(context.Background(), d, ListIssuesInput{Cursor: "prev-cursor"})
	require.NoError(t, err)
	require.Equal(t, "prev-cursor", gotCursor, "caller's cursor reaches the API untouched")
	require.True(t, out.HasNextPage)
	require.Equal(t, "next-cursor", out.EndCursor)
	require.Equal(t, 1, fake.Calls("Issues"), "one page per call, never a collection loop")
}

func TestListIssues_LastPage(t *testing.T) {
	fake := fixtureFake()
	fake.IssuesFn = func(linear.IssueFilter, int, string) (paginate.Page[linear.Issue], error) {
		return paginate.Page[linear.Issue]{Items: []linear.Issue{{ID: "i9"}}}, nil
	}
	d := newTestDeps(fake)

	out, err := ListIssues(context.Background(), d, ListIssuesInput{})
	require.NoError(t, err)
	require.False(t, out.HasNextPage)
	require.Empty(t, out.EndCursor)
	require.Len(t, out.Issues, 1)
}
