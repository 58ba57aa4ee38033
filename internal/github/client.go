// Package github reads single issues and pull requests from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind distinguishes issues from pull requests.
type Kind string

const (
	KindIssue       Kind = "Issue"
	KindPullRequest Kind = "Pull Request"
)

// State is the upstream open/closed state.
type State string

const (
	StateOpen    State = "open"
	StateClosed  State = "closed"
	StateUnknown State = "unknown"
)

// Reference identifies one issue or pull request.
type Reference struct {
	Owner  string
	Repo   string
	Number int
}

// Label is a normalized upstream label.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Snapshot is the live state of an issue or pull request at fetch time.
type Snapshot struct {
	Title     string    `json:"title"`
	State     State     `json:"state"`
	Labels    []Label   `json:"labels"`
	Kind      Kind      `json:"github_type"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var referencePattern = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.-]*://)?[^/\s]+/([^/\s]+)/([^/\s]+)/(?:issues|pull)/(\d+)(?:[/?#].*)?$`)

// ParseURL extracts owner, repository and number from an issue or pull request URL.
// The issues/pull segment is not kept; the fetched response decides the kind.
func ParseURL(rawURL string) (Reference, error) {
	match := referencePattern.FindStringSubmatch(strings.TrimSpace(rawURL))
	if match == nil {
		return Reference{}, &ReferenceError{URL: rawURL}
	}
	number, err := strconv.Atoi(match[3])
	if err != nil || number <= 0 {
		return Reference{}, &ReferenceError{URL: rawURL}
	}
	return Reference{Owner: match[1], Repo: match[2], Number: number}, nil
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
	HTTP      *http.Client
}

// Client fetches issue state. It is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// NewClient creates a client. The token is optional; without it GitHub applies the anonymous rate limit.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "GitHub-Status-Tracker"
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   baseURL,
		token:     opts.Token,
		userAgent: userAgent,
		timeout:   opts.Timeout,
		http:      httpClient,
	}
}

// HasToken reports whether requests carry a credential.
func (c *Client) HasToken() bool {
	return c.token != ""
}

type issueResponse struct {
	Title       string          `json:"title"`
	State       string          `json:"state"`
	HTMLURL     string          `json:"html_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	PullRequest json.RawMessage `json:"pull_request"`
	Labels      []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"labels"`
}

// Fetch loads the current state of owner/repo#number. No retries are attempted.
func (c *Client) Fetch(ctx context.Context, owner, repo string, number int) (*Snapshot, error) {
	ref := Reference{Owner: owner, Repo: repo, Number: number}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/issues/%d",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Kind: ErrUpstream, Owner: owner, Repo: repo, Number: number, Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: ErrUpstream, Owner: owner, Repo: repo, Number: number, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, statusError(resp.StatusCode, ref)
	}

	var body issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &APIError{Kind: ErrUpstream, StatusCode: resp.StatusCode, Owner: owner, Repo: repo, Number: number, Err: fmt.Errorf("decode response: %w", err)}
	}

	return body.snapshot(), nil
}

func (r issueResponse) snapshot() *Snapshot {
	kind := KindIssue
	if len(r.PullRequest) > 0 && string(r.PullRequest) != "null" {
		kind = KindPullRequest
	}

	labels := make([]Label, 0, len(r.Labels))
	for _, l := range r.Labels {
		labels = append(labels, Label{Name: l.Name, Color: l.Color})
	}

	return &Snapshot{
		Title:     r.Title,
		State:     State(r.State),
		Labels:    labels,
		Kind:      kind,
		URL:       r.HTMLURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
