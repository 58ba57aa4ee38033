package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/statustracker/internal/testserver"
)

func issueFixture(title, state string, labels ...map[string]string) map[string]any {
	if labels == nil {
		labels = []map[string]string{}
	}
	return map[string]any{
		"title":      title,
		"state":      state,
		"labels":     labels,
		"html_url":   "https://github.com/acme/widgets/issues/42",
		"created_at": "2024-01-02T03:04:05Z",
		"updated_at": "2024-02-03T04:05:06Z",
	}
}

func doJSON(t *testing.T, ts *testserver.TestServer, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

type issueResponse struct {
	ID           string `json:"id"`
	GitHubURL    string `json:"github_url"`
	CategoryName string `json:"category_name"`
	Type         string `json:"type"`
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	IssueNumber  int    `json:"issue_number"`
	Title        string `json:"title"`
	State        string `json:"state"`
	GitHubType   string `json:"github_type"`
	Labels       []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"labels"`
	Error string `json:"error"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func TestAPI_TrackIssue(t *testing.T) {
	ts := testserver.New(t)
	ts.Upstream.SetIssue("acme", "widgets", 42, issueFixture("Crash on start", "open",
		map[string]string{"name": "bug", "color": "d73a4a"}))

	status, body := doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/42",
		"category_name": "Frontend",
		"type":          "Bug",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created issueResponse
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "acme", created.Owner)
	require.Equal(t, "widgets", created.Repo)
	require.Equal(t, 42, created.IssueNumber)
	require.Equal(t, "Crash on start", created.Title)
	require.Equal(t, "open", created.State)
	require.Equal(t, "Issue", created.GitHubType)
	require.Len(t, created.Labels, 1)
	require.Equal(t, "d73a4a", created.Labels[0].Color)
	require.Equal(t, 1, ts.CountCategories(t))

	status, body = doJSON(t, ts, http.MethodGet, "/api/issues/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched issueResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	require.Equal(t, "Frontend", fetched.CategoryName)
}

func TestAPI_DefaultsToBug(t *testing.T) {
	ts := testserver.New(t)
	ts.Upstream.SetIssue("acme", "widgets", 1, issueFixture("Untyped", "closed"))

	status, body := doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/1",
		"category_name": "Misc",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created issueResponse
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "Bug", created.Type)
	require.Equal(t, "closed", created.State)
}

func TestAPI_DuplicateIsRejected(t *testing.T) {
	ts := testserver.New(t)
	ts.Upstream.SetIssue("acme", "widgets", 42, issueFixture("Crash", "open"))
	payload := map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/42",
		"category_name": "Frontend",
	}

	status, _ := doJSON(t, ts, http.MethodPost, "/api/issues", payload)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, ts, http.MethodPost, "/api/issues", payload)
	require.Equal(t, http.StatusConflict, status)
	var apiErr errorResponse
	require.NoError(t, json.Unmarshal(body, &apiErr))
	require.Equal(t, "DUPLICATE", apiErr.Code)
	require.Equal(t, 1, ts.CountTracked(t))
}

func TestAPI_DeleteThenDeleteAgain(t *testing.T) {
	ts := testserver.New(t)
	ts.Upstream.SetIssue("acme", "widgets", 42, issueFixture("Crash", "open"))

	status, body := doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/42",
		"category_name": "Frontend",
	})
	require.Equal(t, http.StatusCreated, status)
	var created issueResponse
	require.NoError(t, json.Unmarshal(body, &created))

	status, body = doJSON(t, ts, http.MethodDelete, "/api/issues/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var deleted struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &deleted))
	require.True(t, deleted.Success)

	status, _ = doJSON(t, ts, http.MethodDelete, "/api/issues/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, 0, ts.CountTracked(t))
	require.Equal(t, 1, ts.CountCategories(t))
}

func TestAPI_ListIsolatesFailures(t *testing.T) {
	ts := testserver.New(t)
	for _, n := range []int{1, 2, 3} {
		ts.Upstream.SetIssue("acme", "widgets", n, issueFixture("Issue", "open"))
		status, body := doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
			"github_url":    fmt.Sprintf("https://github.com/acme/widgets/issues/%d", n),
			"category_name": "Backend",
		})
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	// Issue 2 disappears upstream after being tracked.
	ts.Upstream.SetStatus("acme", "widgets", 2, http.StatusNotFound, map[string]string{"message": "Not Found"})

	status, body := doJSON(t, ts, http.MethodGet, "/api/issues", nil)
	require.Equal(t, http.StatusOK, status)

	var records []issueResponse
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 3)

	// Newest first.
	require.Equal(t, 3, records[0].IssueNumber)
	require.Equal(t, 2, records[1].IssueNumber)
	require.Equal(t, 1, records[2].IssueNumber)

	require.Equal(t, "load failed", records[1].Title)
	require.Equal(t, "unknown", records[1].State)
	require.NotEmpty(t, records[1].Error)
	require.Empty(t, records[0].Error)
	require.Empty(t, records[2].Error)
}

func TestAPI_ListEmpty(t *testing.T) {
	ts := testserver.New(t)

	status, body := doJSON(t, ts, http.MethodGet, "/api/issues", nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, string(body))
	require.Zero(t, ts.Upstream.Requests())
}

func TestAPI_CategoryCreateIsIdempotent(t *testing.T) {
	ts := testserver.New(t)

	status, body := doJSON(t, ts, http.MethodPost, "/api/categories", map[string]any{"name": "Infra"})
	require.Equal(t, http.StatusCreated, status)
	var first struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &first))

	status, body = doJSON(t, ts, http.MethodPost, "/api/categories", map[string]any{"name": "Infra"})
	require.Equal(t, http.StatusOK, status)
	var second struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &second))
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, ts.CountCategories(t))

	status, body = doJSON(t, ts, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "Infra")
}

func TestAPI_RejectsBadInput(t *testing.T) {
	ts := testserver.New(t)

	cases := []struct {
		name    string
		payload map[string]any
		code    string
	}{
		{"missing url", map[string]any{"category_name": "X"}, "INVALID_INPUT"},
		{"missing category", map[string]any{"github_url": "https://github.com/acme/widgets/issues/1"}, "INVALID_INPUT"},
		{"bad type", map[string]any{"github_url": "https://github.com/acme/widgets/issues/1", "category_name": "X", "type": "Chore"}, "INVALID_INPUT"},
		{"not an issue url", map[string]any{"github_url": "https://github.com/acme/widgets", "category_name": "X"}, "INVALID_REFERENCE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, ts, http.MethodPost, "/api/issues", tc.payload)
			require.Equal(t, http.StatusBadRequest, status)
			var apiErr errorResponse
			require.NoError(t, json.Unmarshal(body, &apiErr))
			require.Equal(t, tc.code, apiErr.Code)
		})
	}

	require.Zero(t, ts.CountTracked(t))
	require.Zero(t, ts.CountCategories(t))
	require.Zero(t, ts.Upstream.Requests())
}

func TestAPI_UpstreamFailureStoresNothing(t *testing.T) {
	ts := testserver.New(t)
	ts.Upstream.SetStatus("acme", "widgets", 9, http.StatusForbidden, map[string]string{"message": "API rate limit exceeded"})

	status, body := doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/9",
		"category_name": "Backend",
	})
	require.Equal(t, http.StatusTooManyRequests, status)
	var apiErr errorResponse
	require.NoError(t, json.Unmarshal(body, &apiErr))
	require.Equal(t, "RATE_LIMITED", apiErr.Code)

	status, _ = doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/404",
		"category_name": "Backend",
	})
	require.Equal(t, http.StatusNotFound, status)

	require.Zero(t, ts.CountTracked(t))
	require.Zero(t, ts.CountCategories(t))
}

func TestAPI_DashboardRenders(t *testing.T) {
	ts := testserver.New(t)
	ts.Upstream.SetIssue("acme", "widgets", 42, issueFixture("Crash on start", "open"))

	status, _ := doJSON(t, ts, http.MethodPost, "/api/issues", map[string]any{
		"github_url":    "https://github.com/acme/widgets/issues/42",
		"category_name": "Frontend",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, ts, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "Crash on start")
	require.Contains(t, string(body), "Frontend")
}
