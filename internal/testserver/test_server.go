package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
	"github.com/rpggio/statustracker/internal/github"
	"github.com/rpggio/statustracker/internal/mcp"
	"github.com/rpggio/statustracker/internal/sqlite"
	"github.com/rpggio/statustracker/internal/transport"
	"github.com/rpggio/statustracker/internal/web"
	"github.com/stretchr/testify/require"
)

// TestServer is the full HTTP stack over an in-memory database and a stub GitHub API.
type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Upstream   *Upstream
	Categories *category.Service
	Tracked    *tracked.Service
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	upstream := NewUpstream(t)
	client := github.NewClient(github.Options{
		BaseURL:   upstream.Server.URL,
		UserAgent: "statustracker-test",
		Timeout:   2 * time.Second,
	})

	categorySvc := category.NewService(sqlite.NewCategoryRepository(db), nil)
	trackedSvc := tracked.NewService(sqlite.NewTrackedRepository(db), categorySvc, client, 4, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Categories: categorySvc, Tracked: trackedSvc},
	})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Categories: categorySvc,
		Tracked:    trackedSvc,
		MCP:        mcp.NewHTTPHandler(mcpServer),
		Web:        web.NewHandler(trackedSvc, nil),
	}))

	ts := &TestServer{
		Server:     server,
		DB:         db,
		Upstream:   upstream,
		Categories: categorySvc,
		Tracked:    trackedSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// CountTracked returns the number of stored tracked items.
func (ts *TestServer) CountTracked(t *testing.T) int {
	t.Helper()
	var count int
	require.NoError(t, ts.DB.QueryRow(`SELECT COUNT(*) FROM tracked_items`).Scan(&count))
	return count
}

// CountCategories returns the number of stored categories.
func (ts *TestServer) CountCategories(t *testing.T) int {
	t.Helper()
	var count int
	require.NoError(t, ts.DB.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count))
	return count
}

// Upstream is a stub of the GitHub issues endpoint.
// Unknown issues answer 404.
type Upstream struct {
	Server   *httptest.Server
	mu       sync.Mutex
	issues   map[string]fixture
	requests atomic.Int64
}

type fixture struct {
	status int
	body   any
}

// NewUpstream starts a stub server that is closed with the test.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{issues: map[string]fixture{}}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

// SetIssue makes owner/repo#number answer 200 with body.
func (u *Upstream) SetIssue(owner, repo string, number int, body any) {
	u.SetStatus(owner, repo, number, http.StatusOK, body)
}

// SetStatus makes owner/repo#number answer status with an optional body.
func (u *Upstream) SetStatus(owner, repo string, number, status int, body any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.issues[fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)] = fixture{status: status, body: body}
}

// Requests returns how many requests the stub has served.
func (u *Upstream) Requests() int64 {
	return u.requests.Load()
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.requests.Add(1)

	u.mu.Lock()
	fx, ok := u.issues[r.URL.Path]
	u.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(fx.status)
	if fx.body != nil {
		_ = json.NewEncoder(w).Encode(fx.body)
	}
}
