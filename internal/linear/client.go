// Package linear talks to the Linear GraphQL API and shapes its objects
// into the flat records the rest of the server consumes.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/errors"
	"github.com/tidewater-labs/linear-mcp/internal/paginate"
)

const (
	// DefaultEndpoint is the Linear GraphQL endpoint.
	DefaultEndpoint = "https://api.linear.app/graphql"

	defaultPageSize = 50
	requestTimeout  = 30 * time.Second
)

// Client is the concrete API implementation over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint (tests point it at a local
// server).
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Client authenticated with apiKey.
func NewClient(apiKey string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: requestTimeout},
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do posts one GraphQL request and unmarshals the data payload into out.
// HTTP-level auth and quota rejections are mapped onto the error taxonomy
// here; GraphQL-level errors surface with their upstream messages intact.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("linear api request: %w", err)
	}
	defer resp.Body.Close()
	c.log.Debug("linear api call",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return errors.NewAuthentication("Linear rejected the API key")
	case http.StatusForbidden:
		return errors.NewAuthorization("the API key lacks access to this resource")
	case http.StatusTooManyRequests:
		return errors.NewRateLimited("Linear reported its rate limit exceeded")
	default:
		return fmt.Errorf("linear api returned HTTP %d: %s", resp.StatusCode, snippet(body))
	}

	// GraphQL errors arrive with HTTP 200; their shape is loose, so pull
	// the messages out with gjson rather than a full unmarshal.
	if errs := gjson.GetBytes(body, "errors"); errs.Exists() && errs.IsArray() && len(errs.Array()) > 0 {
		var msgs []string
		for _, e := range errs.Array() {
			if m := e.Get("message").String(); m != "" {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) == 0 {
			msgs = append(msgs, snippet(body))
		}
		return fmt.Errorf("linear api error: %s", strings.Join(msgs, "; "))
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return fmt.Errorf("linear api response missing data: %s", snippet(body))
	}
	if out != nil {
		if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// Wire shapes. The GraphQL object graph is nested; these mirror only the
// slices of it the queries select, and map to the flat records.

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type idRef struct {
	ID string `json:"id"`
}

type issueNode struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    float64   `json:"priority"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Team        *struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	} `json:"team"`
	State *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"state"`
	Assignee *struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"assignee"`
	Project *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
	Labels struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`
}

func (n issueNode) toIssue() Issue {
	is := Issue{
		ID:          n.ID,
		Identifier:  n.Identifier,
		Title:       n.Title,
		Description: n.Description,
		Priority:    int(n.Priority),
		URL:         n.URL,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Team != nil {
		is.TeamID = n.Team.ID
		is.TeamKey = n.Team.Key
	}
	if n.State != nil {
		is.StateID = n.State.ID
		is.StateName = n.State.Name
	}
	if n.Assignee != nil {
		is.AssigneeID = n.Assignee.ID
		is.Assignee = n.Assignee.DisplayName
	}
	if n.Project != nil {
		is.ProjectID = n.Project.ID
		is.ProjectName = n.Project.Name
	}
	for _, l := range n.Labels.Nodes {
		is.Labels = append(is.Labels, l.Name)
	}
	return is
}

const issueFields = `
	id identifier title description priority url createdAt updatedAt
	team { id key }
	state { id name }
	assignee { id displayName }
	project { id name }
	labels { nodes { name } }
`

// Viewer returns the profile behind the configured credential.
func (c *Client) Viewer(ctx context.Context) (User, error) {
	var resp struct {
		Viewer User `json:"viewer"`
	}
	query := `query { viewer { id name displayName email active } }`
	if err := c.do(ctx, query, nil, &resp); err != nil {
		return User{}, err
	}
	return resp.Viewer, nil
}

// Teams returns one page of the workspace's teams.
func (c *Client) Teams(ctx context.Context, cursor string) (paginate.Page[Team], error) {
	var resp struct {
		Teams struct {
			Nodes    []Team   `json:"nodes"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"teams"`
	}
	query := `query($first: Int!, $after: String) {
		teams(first: $first, after: $after) {
			nodes { id name key }
			pageInfo { hasNextPage endCursor }
		}
	}`
	if err := c.do(ctx, query, pageVars(cursor, nil), &resp); err != nil {
		return paginate.Page[Team]{}, err
	}
	return paginate.Page[Team]{
		Items:       resp.Teams.Nodes,
		HasNextPage: resp.Teams.PageInfo.HasNextPage,
		EndCursor:   resp.Teams.PageInfo.EndCursor,
	}, nil
}

// Projects returns one page of projects, optionally filtered to a team.
func (c *Client) Projects(ctx context.Context, teamID, cursor string) (paginate.Page[Project], error) {
	var resp struct {
		Projects struct {
			Nodes []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				State string `json:"state"`
				Teams struct {
					Nodes []idRef `json:"nodes"`
				} `json:"teams"`
			} `json:"nodes"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"projects"`
	}
	query := `query($first: Int!, $after: String, $filter: ProjectFilter) {
		projects(first: $first, after: $after, filter: $filter) {
			nodes {
				id name state
				teams { nodes { id } }
			}
			pageInfo { hasNextPage endCursor }
		}
	}`
	var filter map[string]any
	if teamID != "" {
		filter = map[string]any{"accessibleTeams": map[string]any{"some": map[string]any{"id": map[string]any{"eq": teamID}}}}
	}
	if err := c.do(ctx, query, pageVars(cursor, map[string]any{"filter": filter}), &resp); err != nil {
		return paginate.Page[Project]{}, err
	}

	page := paginate.Page[Project]{
		HasNextPage: resp.Projects.PageInfo.HasNextPage,
		EndCursor:   resp.Projects.PageInfo.EndCursor,
	}
	for _, n := range resp.Projects.Nodes {
		p := Project{ID: n.ID, Name: n.Name, State: n.State}
		for _, t := range n.Teams.Nodes {
			p.TeamIDs = append(p.TeamIDs, t.ID)
		}
		page.Items = append(page.Items, p)
	}
	return page, nil
}

// WorkflowStates returns one page of workflow states across all teams,
// each carrying its owning team's id.
func (c *Client) WorkflowStates(ctx context.Context, cursor string) (paginate.Page[WorkflowState], error) {
	var resp struct {
		WorkflowStates struct {
			Nodes []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Type  string `json:"type"`
				Color string `json:"color"`
				Team  *idRef `json:"team"`
			} `json:"nodes"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"workflowStates"`
	}
	query := `query($first: Int!, $after: String) {
		workflowStates(first: $first, after: $after) {
			nodes { id name type color team { id } }
			pageInfo { hasNextPage endCursor }
		}
	}`
	if err := c.do(ctx, query, pageVars(cursor, nil), &resp); err != nil {
		return paginate.Page[WorkflowState]{}, err
	}

	page := paginate.Page[WorkflowState]{
		HasNextPage: resp.WorkflowStates.PageInfo.HasNextPage,
		EndCursor:   resp.WorkflowStates.PageInfo.EndCursor,
	}
	for _, n := range resp.WorkflowStates.Nodes {
		st := WorkflowState{ID: n.ID, Name: n.Name, Type: n.Type, Color: n.Color}
		if n.Team != nil {
			st.TeamID = n.Team.ID
		}
		page.Items = append(page.Items, st)
	}
	return page, nil
}

// Labels returns one page of issue labels for the given scope.
func (c *Client) Labels(ctx context.Context, scope LabelScope, cursor string) (paginate.Page[Label], error) {
	var resp struct {
		IssueLabels struct {
			Nodes []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Color string `json:"color"`
				Team  *idRef `json:"team"`
			} `json:"nodes"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"issueLabels"`
	}
	query := `query($first: Int!, $after: String, $filter: IssueLabelFilter) {
		issueLabels(first: $first, after: $after, filter: $filter) {
			nodes { id name color team { id } }
			pageInfo { hasNextPage endCursor }
		}
	}`
	var filter map[string]any
	switch {
	case scope.TeamID != "":
		filter = map[string]any{"team": map[string]any{"id": map[string]any{"eq": scope.TeamID}}}
	case scope.WorkspaceOnly:
		filter = map[string]any{"team": map[string]any{"null": true}}
	}
	if err := c.do(ctx, query, pageVars(cursor, map[string]any{"filter": filter}), &resp); err != nil {
		return paginate.Page[Label]{}, err
	}

	page := paginate.Page[Label]{
		HasNextPage: resp.IssueLabels.PageInfo.HasNextPage,
		EndCursor:   resp.IssueLabels.PageInfo.EndCursor,
	}
	for _, n := range resp.IssueLabels.Nodes {
		l := Label{ID: n.ID, Name: n.Name, Color: n.Color}
		if n.Team != nil {
			l.TeamID = n.Team.ID
		}
		page.Items = append(page.Items, l)
	}
	return page, nil
}

// Users returns one page of workspace members.
func (c *Client) Users(ctx context.Context, cursor string) (paginate.Page[User], error) {
	var resp struct {
		Users struct {
			Nodes    []User   `json:"nodes"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"users"`
	}
	query := `query($first: Int!, $after: String) {
		users(first: $first, after: $after) {
			nodes { id name displayName email active }
			pageInfo { hasNextPage endCursor }
		}
	}`
	if err := c.do(ctx, query, pageVars(cursor, nil), &resp); err != nil {
		return paginate.Page[User]{}, err
	}
	return paginate.Page[User]{
		Items:       resp.Users.Nodes,
		HasNextPage: resp.Users.PageInfo.HasNextPage,
		EndCursor:   resp.Users.PageInfo.EndCursor,
	}, nil
}

// Issue fetches a single issue by its UUID.
func (c *Client) Issue(ctx context.Context, id string) (Issue, error) {
	var resp struct {
		Issue *issueNode `json:"issue"`
	}
	query := fmt.Sprintf(`query($id: String!) { issue(id: $id) { %s } }`, issueFields)
	if err := c.do(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return Issue{}, err
	}
	if resp.Issue == nil {
		return Issue{}, errors.NewNotFound(fmt.Sprintf("issue %q not found", id))
	}
	return resp.Issue.toIssue(), nil
}

// SearchIssues performs a full-text search, returning at most limit issues.
func (c *Client) SearchIssues(ctx context.Context, term string, limit int) ([]Issue, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	var resp struct {
		IssueSearch struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issueSearch"`
	}
	query := fmt.Sprintf(`query($query: String!, $first: Int!) {
		issueSearch(query: $query, first: $first) { nodes { %s } }
	}`, issueFields)
	if err := c.do(ctx, query, map[string]any{"query": term, "first": limit}, &resp); err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(resp.IssueSearch.Nodes))
	for _, n := range resp.IssueSearch.Nodes {
		issues = append(issues, n.toIssue())
	}
	return issues, nil
}

// Issues returns one page of issues matching the additive filter.
func (c *Client) Issues(ctx context.Context, filter IssueFilter, limit int, cursor string) (paginate.Page[Issue], error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	var resp struct {
		Issues struct {
			Nodes    []issueNode `json:"nodes"`
			PageInfo pageInfo    `json:"pageInfo"`
		} `json:"issues"`
	}
	query := fmt.Sprintf(`query($first: Int!, $after: String, $filter: IssueFilter) {
		issues(first: $first, after: $after, filter: $filter) {
			nodes { %s }
			pageInfo { hasNextPage endCursor }
		}
	}`, issueFields)

	vars := map[string]any{"first": limit, "filter": buildIssueFilter(filter)}
	if cursor != "" {
		vars["after"] = cursor
	}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return paginate.Page[Issue]{}, err
	}

	page := paginate.Page[Issue]{
		HasNextPage: resp.Issues.PageInfo.HasNextPage,
		EndCursor:   resp.Issues.PageInfo.EndCursor,
	}
	for _, n := range resp.Issues.Nodes {
		page.Items = append(page.Items, n.toIssue())
	}
	return page, nil
}

// buildIssueFilter maps the flat filter onto Linear's nested IssueFilter
// input, including only the supplied fields.
func buildIssueFilter(f IssueFilter) map[string]any {
	filter := map[string]any{}
	if f.TeamID != "" {
		filter["team"] = map[string]any{"id": map[string]any{"eq": f.TeamID}}
	}
	if f.ProjectID != "" {
		filter["project"] = map[string]any{"id": map[string]any{"eq": f.ProjectID}}
	}
	if f.AssigneeID != "" {
		filter["assignee"] = map[string]any{"id": map[string]any{"eq": f.AssigneeID}}
	}
	if len(f.StateIDs) > 0 {
		filter["state"] = map[string]any{"id": map[string]any{"in": f.StateIDs}}
	}
	if f.Query != "" {
		filter["or"] = []map[string]any{
			{"title": map[string]any{"containsIgnoreCase": f.Query}},
			{"description": map[string]any{"containsIgnoreCase": f.Query}},
		}
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}

// CreateIssue issues the creation mutation.
func (c *Client) CreateIssue(ctx context.Context, in IssueCreate) (MutationResult[Issue], error) {
	input := map[string]any{
		"teamId": in.TeamID,
		"title":  in.Title,
	}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.StateID != "" {
		input["stateId"] = in.StateID
	}
	if in.ProjectID != "" {
		input["projectId"] = in.ProjectID
	}
	if in.AssigneeID != "" {
		input["assigneeId"] = in.AssigneeID
	}
	if in.Priority != nil {
		input["priority"] = *in.Priority
	}
	if len(in.LabelIDs) > 0 {
		input["labelIds"] = in.LabelIDs
	}

	var resp struct {
		IssueCreate struct {
			Success bool       `json:"success"`
			Issue   *issueNode `json:"issue"`
		} `json:"issueCreate"`
	}
	query := fmt.Sprintf(`mutation($input: IssueCreateInput!) {
		issueCreate(input: $input) { success issue { %s } }
	}`, issueFields)
	if err := c.do(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return MutationResult[Issue]{}, err
	}
	return issueMutationResult(resp.IssueCreate.Success, resp.IssueCreate.Issue), nil
}

// UpdateIssue issues the update mutation for the given issue UUID.
func (c *Client) UpdateIssue(ctx context.Context, id string, in IssueUpdate) (MutationResult[Issue], error) {
	input := map[string]any{}
	if in.Title != nil {
		input["title"] = *in.Title
	}
	if in.Description != nil {
		input["description"] = *in.Description
	}
	if in.StateID != nil {
		input["stateId"] = *in.StateID
	}
	if in.ProjectID != nil {
		input["projectId"] = *in.ProjectID
	}
	if in.AssigneeID != nil {
		input["assigneeId"] = *in.AssigneeID
	}
	if in.Priority != nil {
		input["priority"] = *in.Priority
	}

	var resp struct {
		IssueUpdate struct {
			Success bool       `json:"success"`
			Issue   *issueNode `json:"issue"`
		} `json:"issueUpdate"`
	}
	query := fmt.Sprintf(`mutation($id: String!, $input: IssueUpdateInput!) {
		issueUpdate(id: $id, input: $input) { success issue { %s } }
	}`, issueFields)
	if err := c.do(ctx, query, map[string]any{"id": id, "input": input}, &resp); err != nil {
		return MutationResult[Issue]{}, err
	}
	return issueMutationResult(resp.IssueUpdate.Success, resp.IssueUpdate.Issue), nil
}

// CreateComment attaches a comment to an issue.
func (c *Client) CreateComment(ctx context.Context, issueID, body string) (MutationResult[Comment], error) {
	var resp struct {
		CommentCreate struct {
			Success bool `json:"success"`
			Comment *struct {
				ID        string    `json:"id"`
				Body      string    `json:"body"`
				URL       string    `json:"url"`
				CreatedAt time.Time `json:"createdAt"`
			} `json:"comment"`
		} `json:"commentCreate"`
	}
	query := `mutation($input: CommentCreateInput!) {
		commentCreate(input: $input) {
			success
			comment { id body url createdAt }
		}
	}`
	vars := map[string]any{"input": map[string]any{"issueId": issueID, "body": body}}
	if err := c.do(ctx, query, vars, &resp); err != nil {
		return MutationResult[Comment]{}, err
	}

	result := MutationResult[Comment]{Success: resp.CommentCreate.Success}
	if n := resp.CommentCreate.Comment; n != nil {
		result.Entity = &Comment{
			ID:        n.ID,
			Body:      n.Body,
			URL:       n.URL,
			IssueID:   issueID,
			CreatedAt: n.CreatedAt,
		}
	}
	return result, nil
}

func issueMutationResult(success bool, node *issueNode) MutationResult[Issue] {
	result := MutationResult[Issue]{Success: success}
	if node != nil {
		issue := node.toIssue()
		result.Entity = &issue
	}
	return result
}

func pageVars(cursor string, extra map[string]any) map[string]any {
	vars := map[string]any{"first": defaultPageSize}
	if cursor != "" {
		vars["after"] = cursor
	}
	for k, v := range extra {
		if v != nil {
			vars[k] = v
		}
	}
	return vars
}

// assert Client satisfies the capability interface
var _ API = (*Client)(nil)
