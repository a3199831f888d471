// Package lineartest provides a configurable in-memory API fake for tests.
package lineartest

import (
	"context"
	"sync"

	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
)

// Fake implements linear.API from in-memory fixtures, counting calls per
// method. Per-method hooks override the default behavior when set.
type Fake struct {
	mu    sync.Mutex
	calls map[string]int

	ViewerUser  linear.User
	TeamList    []linear.Team
	ProjectList []linear.Project
	StateList   []linear.WorkflowState
	LabelList   []linear.Label
	UserList    []linear.User
	IssueByID   map[string]linear.Issue

	SearchFn        func(term string, limit int) ([]linear.Issue, error)
	IssuesFn        func(filter linear.IssueFilter, limit int, cursor string) (paginate.Page[linear.Issue], error)
	CreateIssueFn   func(in linear.IssueCreate) (linear.MutationResult[linear.Issue], error)
	UpdateIssueFn   func(id string, in linear.IssueUpdate) (linear.MutationResult[linear.Issue], error)
	CreateCommentFn func(issueID, body string) (linear.MutationResult[linear.Comment], error)

	Err error // when set, every call fails with it
}

var _ linear.API = (*Fake)(nil)

// Calls reports how many times the named method ran.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls reports the number of API calls across all methods.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *Fake) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

func (f *Fake) Viewer(ctx context.Context) (linear.User, error) {
	f.record("Viewer")
	if f.Err != nil {
		return linear.User{}, f.Err
	}
	return f.ViewerUser, nil
}

func (f *Fake) Teams(ctx context.Context, cursor string) (paginate.Page[linear.Team], error) {
	f.record("Teams")
	if f.Err != nil {
		return paginate.Page[linear.Team]{}, f.Err
	}
	return paginate.Page[linear.Team]{Items: f.TeamList}, nil
}

func (f *Fake) Projects(ctx context.Context, teamID, cursor string) (paginate.Page[linear.Project], error) {
	f.record("Projects")
	if f.Err != nil {
		return paginate.Page[linear.Project]{}, f.Err
	}
	if teamID == "" {
		return paginate.Page[linear.Project]{Items: f.ProjectList}, nil
	}
	var scoped []linear.Project
	for _, p := range f.ProjectList {
		for _, id := range p.TeamIDs {
			if id == teamID {
				scoped = append(scoped, p)
				break
			}
		}
	}
	return paginate.Page[linear.Project]{Items: scoped}, nil
}

func (f *Fake) WorkflowStates(ctx context.Context, cursor string) (paginate.Page[linear.WorkflowState], error) {
	f.record("WorkflowStates")
	if f.Err != nil {
		return paginate.Page[linear.WorkflowState]{}, f.Err
	}
	return paginate.Page[linear.WorkflowState]{Items: f.StateList}, nil
}

func (f *Fake) Labels(ctx context.Context, scope linear.LabelScope, cursor string) (paginate.Page[linear.Label], error) {
	f.record("Labels")
	if f.Err != nil {
		return paginate.Page[linear.Label]{}, f.Err
	}
	var out []linear.Label
	for _, l := range f.LabelList {
		switch {
		case scope.TeamID != "":
			if l.TeamID == scope.TeamID {
				out = append(out, l)
			}
		case scope.WorkspaceOnly:
			if l.TeamID == "" {
				out = append(out, l)
			}
		default:
			out = append(out, l)
		}
	}
	return paginate.Page[linear.Label]{Items: out}, nil
}

func (f *Fake) Users(ctx context.Context, cursor string) (paginate.Page[linear.User], error) {
	f.record("Users")
	if f.Err != nil {
		return paginate.Page[linear.User]{}, f.Err
	}
	return paginate.Page[linear.User]{Items: f.UserList}, nil
}

func (f *Fake) Issue(ctx context.Context, id string) (linear.Issue, error) {
	f.record("Issue")
	if f.Err != nil {
		return linear.Issue{}, f.Err
	}
	if is, ok := f.IssueByID[id]; ok {
		return is, nil
	}
	return linear.Issue{}, &notFoundError{id: id}
}

func (f *Fake) SearchIssues(ctx context.Context, term string, limit int) ([]linear.Issue, error) {
	f.record("SearchIssues")
	if f.Err != nil {
		return nil, f.Err
	}
	if f.SearchFn != nil {
		return f.SearchFn(term, limit)
	}
	var out []linear.Issue
	for _, is := range f.IssueByID {
		if is.Identifier == term {
			out = append(out, is)
		}
	}
	return out, nil
}

func (f *Fake) Issues(ctx context.Context, filter linear.IssueFilter, limit int, cursor string) (paginate.Page[linear.Issue], error) {
	f.record("Issues")
	if f.Err != nil {
		return paginate.Page[linear.Issue]{}, f.Err
	}
	if f.IssuesFn != nil {
		return f.IssuesFn(filter, limit, cursor)
	}
	var out []linear.Issue
	for _, is := range f.IssueByID {
		out = append(out, is)
	}
	return paginate.Page[linear.Issue]{Items: out}, nil
}

func (f *Fake) CreateIssue(ctx context.Context, in linear.IssueCreate) (linear.MutationResult[linear.Issue], error) {
	f.record("CreateIssue")
	if f.Err != nil {
		return linear.MutationResult[linear.Issue]{}, f.Err
	}
	if f.CreateIssueFn != nil {
		return f.CreateIssueFn(in)
	}
	issue := linear.Issue{ID: "created-id", Title: in.Title, TeamID: in.TeamID}
	return linear.MutationResult[linear.Issue]{Success: true, Entity: &issue}, nil
}

func (f *Fake) UpdateIssue(ctx context.Context, id string, in linear.IssueUpdate) (linear.MutationResult[linear.Issue], error) {
	f.record("UpdateIssue")
	if f.Err != nil {
		return linear.MutationResult[linear.Issue]{}, f.Err
	}
	if f.UpdateIssueFn != nil {
		return f.UpdateIssueFn(id, in)
	}
	issue := f.IssueByID[id]
	return linear.MutationResult[linear.Issue]{Success: true, Entity: &issue}, nil
}

func (f *Fake) CreateComment(ctx context.Context, issueID, body string) (linear.MutationResult[linear.Comment], error) {
	f.record("CreateComment")
	if f.Err != nil {
		return linear.MutationResult[linear.Comment]{}, f.Err
	}
	if f.CreateCommentFn != nil {
		return f.CreateCommentFn(issueID, body)
	}
	comment := linear.Comment{ID: "comment-id", Body: body, IssueID: issueID}
	return linear.MutationResult[linear.Comment]{Success: true, Entity: &comment}, nil
}

type notFoundError struct{ id string }

func (e *notFoundError) Error() string {
	return "Entity not found: Issue " + e.id
}
