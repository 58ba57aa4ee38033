package tracked

import (
	"time"

	"github.com/rpggio/statustracker/internal/github"
)

// Classification is the user-assigned tag of a tracked item.
type Classification string

const (
	ClassFeature Classification = "Feature"
	ClassBug     Classification = "Bug"
)

// DegradedTitle replaces the title when live state could not be loaded.
const DegradedTitle = "load failed"

// Valid reports whether c is one of the known classifications.
func (c Classification) Valid() bool {
	return c == ClassFeature || c == ClassBug
}

// Item is a persisted pointer at one upstream issue or pull request.
type Item struct {
	ID             string         `json:"id"`
	SourceURL      string         `json:"github_url"`
	CategoryID     string         `json:"category_id"`
	Classification Classification `json:"type"`
	Owner          string         `json:"owner"`
	Repo           string         `json:"repo"`
	Number         int            `json:"issue_number"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ItemWithCategory is an Item joined with its category name.
type ItemWithCategory struct {
	Item
	CategoryName string `json:"category_name"`
}

// Record merges a tracked item with its live upstream state, or with a
// degraded stand-in carrying Error when the fetch failed.
type Record struct {
	ID           string         `json:"id"`
	GitHubURL    string         `json:"github_url"`
	CategoryName string         `json:"category_name"`
	Type         Classification `json:"type"`
	Owner        string         `json:"owner"`
	Repo         string         `json:"repo"`
	Number       int            `json:"issue_number"`
	TrackedAt    time.Time      `json:"tracked_at"`

	Title     string         `json:"title"`
	State     github.State   `json:"state"`
	Labels    []github.Label `json:"labels"`
	Kind      github.Kind    `json:"github_type,omitempty"`
	URL       string         `json:"url,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Degraded reports whether the record carries no live state.
func (r Record) Degraded() bool {
	return r.Error != ""
}

func newRecord(item ItemWithCategory, snap *github.Snapshot) Record {
	rec := Record{
		ID:           item.ID,
		GitHubURL:    item.SourceURL,
		CategoryName: item.CategoryName,
		Type:         item.Classification,
		Owner:        item.Owner,
		Repo:         item.Repo,
		Number:       item.Number,
		TrackedAt:    item.CreatedAt,
		Title:        snap.Title,
		State:        snap.State,
		Labels:       snap.Labels,
		Kind:         snap.Kind,
		URL:          snap.URL,
		CreatedAt:    timePtr(snap.CreatedAt),
		UpdatedAt:    timePtr(snap.UpdatedAt),
	}
	if rec.Labels == nil {
		rec.Labels = []github.Label{}
	}
	return rec
}

func degradedRecord(item ItemWithCategory, err error) Record {
	return Record{
		ID:           item.ID,
		GitHubURL:    item.SourceURL,
		CategoryName: item.CategoryName,
		Type:         item.Classification,
		Owner:        item.Owner,
		Repo:         item.Repo,
		Number:       item.Number,
		TrackedAt:    item.CreatedAt,
		Title:        DegradedTitle,
		State:        github.StateUnknown,
		Labels:       []github.Label{},
		Error:        err.Error(),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
