package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
)

func TestAddComment_ResolvesTicketKey(t *testing.T) {
	fake := fixtureFake()
	var gotIssueID string
	fake.CreateCommentFn = func(issueID, body string) (linear.MutationResult[linear.Comment], error) {
		gotIssueID = issueID
		c := linear.Comment{ID: "c1", Body: body, IssueID: issueID}
		return linear.MutationResult[linear.Comment]{Success: true, Entity: &c}, nil
	}
	d := newTestDeps(fake)

	out, err := AddComment(context.Background(), d, AddCommentInput{
		Issue: "ENG-1",
		Body:  "looks good",
	})
	require.NoError(t, err)
	require.Equal(t, issueUUID, gotIssueID)
	require.Equal(t, "looks good", out.Comment.Body)
}

func TestAddComment_Validation(t *testing.T) {
	d := newTestDeps(fixtureFake())

	_, err := AddComment(context.Background(), d, AddCommentInput{Body: "x"})
	require.True(t, errors.Is(err, errors.CodeValidation))

	_, err = AddComment(context.Background(), d, AddCommentInput{Issue: issueUUID})
	require.True(t, errors.Is(err, errors.CodeValidation))
}

func TestAddComment_MutationFailed(t *testing.T) {
	fake := fixtureFake()
	fake.CreateCommentFn = func(string, string) (linear.MutationResult[linear.Comment], error) {
		return linear.MutationResult[linear.Comment]{Success: false}, nil
	}
	d := newTestDeps(fake)

	_, err := AddComment(context.Background(), d, AddCommentInput{Issue: issueUUID, Body: "x"})
	require.True(t, errors.Is(err, errors.CodeMutationFailed))
}
