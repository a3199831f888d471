package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

func TestCreateIssue_RequiresTitleAndTeam(t *testing.T) {
	d := newTestDeps(fixtureFake())

	_, err := CreateIssue(context.Background(), d, CreateIssueInput{
		Team: resolve.ByName("Engineering"),
	})
	require.True(t, errors.Is(err, errors.CodeValidation))

	_, err = CreateIssue(context.Background(), d, CreateIssueInput{
		Title: "no team",
	})
	require.True(t, errors.Is(err, errors.CodeValidation))
}

func TestCreateIssue_ResolvesNamesBeforeMutation(t *testing.T) {
	fake := fixtureFake()
	var captured linear.IssueCreate
	fake.CreateIssueFn = func(in linear.IssueCreate) (linear.MutationResult[linear.Issue], error) {
		captured = in
		issue := linear.Issue{ID: "new-id", Identifier: "ENG-9", Title: in.Title}
		return linear.MutationResult[linear.Issue]{Success: true, Entity: &issue}, nil
	}
	d := newTestDeps(fake)

	out, err := CreateIssue(context.Background(), d, CreateIssueInput{
		Team:    resolve.ByName("eng"),
		Project: resolve.ByName("roadmap"),
		State:   resolve.ByName("todo"),
		Title:   "Ship it",
	})
	require.NoError(t, err)
	require.Equal(t, "ENG-9", out.Issue.Identifier)

	require.Equal(t, "t1", captured.TeamID)
	require.Equal(t, "p1", captured.ProjectID)
	require.Equal(t, "s1", captured.StateID, "state name must resolve within the team scope")
}

func TestCreateIssue_MutationFailed(t *testing.T) {
	fake := fixtureFake()
	fake.CreateIssueFn = func(linear.IssueCreate) (linear.MutationResult[linear.Issue], error) {
		return linear.MutationResult[linear.Issue]{Success: false}, nil
	}
	d := newTestDeps(fake)

	_, err := CreateIssue(context.Background(), d, CreateIssueInput{
		Team:  resolve.ByID("t1"),
		Title: "doomed",
	})
	require.True(t, errors.Is(err, errors.CodeMutationFailed), "got %v", err)
}

func TestCreateIssue_ConfirmationFailedIsDistinct(t *testing.T) {
	fake := fixtureFake()
	fake.CreateIssueFn = func(linear.IssueCreate) (linear.MutationResult[linear.Issue], error) {
		// The write happened but the entity never came back.
		return linear.MutationResult[linear.Issue]{Success: true}, nil
	}
	d := newTestDeps(fake)

	_, err := CreateIssue(context.Background(), d, CreateIssueInput{
		Team:  resolve.ByID("t1"),
		Title: "ghost",
	})
	require.True(t, errors.Is(err, errors.CodeConfirmationFailed), "got %v", err)
}

func TestCreateIssue_UnknownTeamNameFails(t *testing.T) {
	d := newTestDeps(fixtureFake())

	_, err := CreateIssue(context.Background(), d, CreateIssueInput{
		Team:  resolve.ByName("Sales"),
		Title: "lost",
	})
	require.True(t, errors.Is(err, errors.CodeNotFound))
	require.Contains(t, err.Error(), "Engineering")
}
