package ops

import (
	"time"

	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/linear/lineartest"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
)

func newTestDeps(fake *lineartest.Fake) *Deps {
	return NewDeps(fake,
		ratelimit.New(100, time.Minute),
		cache.New(5*time.Minute),
		cache.New(5*time.Minute),
		zap.NewNop())
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// fixtureFake builds a workspace with one team, one project, and two
// states sharing a name across teams.
func fixtureFake() *lineartest.Fake {
	return &lineartest.Fake{
		TeamList: []linear.Team{
			{ID: "t1", Name: "Engineering", Key: "ENG"},
			{ID: "t2", Name: "Design", Key: "DES"},
		},
		ProjectList: []linear.Project{
			{ID: "p1", Name: "Roadmap", TeamIDs: []string{"t1"}},
		},
		StateList: []linear.WorkflowState{
			{ID: "s1", Name: "Todo", TeamID: "t1"},
			{ID: "s2", Name: "Todo", TeamID: "t2"},
			{ID: "s3", Name: "Done", TeamID: "t1"},
		},
		LabelList: []linear.Label{
			{ID: "l1", Name: "bug", TeamID: "t1"},
			{ID: "l2", Name: "urgent"},
		},
		IssueByID: map[string]linear.Issue{
			"11111111-1111-1111-1111-111111111111": {
				ID:         "11111111-1111-1111-1111-111111111111",
				Identifier: "ENG-1",
				Title:      "First issue",
				TeamID:     "t1",
			},
		},
	}
}
