package github

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumic/pkg/llm"
	"github.com/artem13815/resumic/pkg/resume"
)

func testServer(t *testing.T, repos []Repo, languages map[string]map[string]int64) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/jane/repos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(repos)
	})
	for name, langs := range languages {
		langs := langs
		mux.HandleFunc("/repos/jane/"+name+"/languages", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(langs)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient("")
	c.BaseURL = srv.URL
	return c
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildDraftFiltersAndRanksRepos(t *testing.T) {
	repos := []Repo{
		{Name: "fork-of-thing", Fork: true, Size: 10, Stars: 99},
		{Name: "empty", Size: 0, Stars: 50},
		{Name: "small", Size: 5, Stars: 1, Language: "Go", HTMLURL: "https://github.com/jane/small", Description: "tiny tool"},
		{Name: "big", Size: 500, Stars: 12, Language: "Go", HTMLURL: "https://github.com/jane/big", Description: "main project", Topics: []string{"cli", "docker"}},
	}
	c := testServer(t, repos, map[string]map[string]int64{
		"small": {"Go": 1000},
		"big":   {"Go": 90000, "Makefile": 200},
	})

	d, err := NewService(c, nil, quietLogger()).BuildDraft(context.Background(), "jane")
	require.NoError(t, err)

	require.Len(t, d.Projects, 2, "fork and empty repo are dropped")
	assert.Equal(t, "big", d.Projects[0].Name, "most starred first")
	assert.Equal(t, "main project", d.Projects[0].Description)
	assert.Contains(t, d.Projects[0].Technologies, "Go")

	assert.Equal(t, []string{"cli", "docker"}, d.Skills)
	require.NotEmpty(t, d.LanguageStats)
	assert.Equal(t, "Go", d.LanguageStats[0], "aggregated byte counts rank languages")
	assert.Equal(t, "jane", d.SourceRef)
}

func TestBuildDraftSurvivesLanguageLookupFailure(t *testing.T) {
	repos := []Repo{
		{Name: "solo", Size: 10, Stars: 3, Language: "Rust", HTMLURL: "https://github.com/jane/solo", Description: "a thing"},
	}
	// No /languages route registered: the lookup 404s and the repo
	// language field is used instead.
	c := testServer(t, repos, nil)

	d, err := NewService(c, nil, quietLogger()).BuildDraft(context.Background(), "jane")
	require.NoError(t, err)

	require.Len(t, d.Projects, 1)
	assert.Equal(t, []string{"Rust"}, d.Projects[0].Technologies)
}

type fakeAnalyzer struct {
	byName map[string]resume.RepoAnalysis
}

func (f *fakeAnalyzer) ExtractRepoAnalysis(_ context.Context, facts resume.RepoFacts) (resume.RepoAnalysis, error) {
	a, ok := f.byName[facts.Name]
	if !ok {
		return resume.RepoAnalysis{}, assert.AnError
	}
	return a, nil
}

func TestBuildDraftCarriesAssessment(t *testing.T) {
	repos := []Repo{
		{Name: "popular", Size: 100, Stars: 40, Language: "Go", HTMLURL: "https://github.com/jane/popular", Description: "existing description"},
		{Name: "deep", Size: 2000, Stars: 2, Language: "Go", HTMLURL: "https://github.com/jane/deep"},
	}
	c := testServer(t, repos, map[string]map[string]int64{
		"popular": {"Go": 5000},
		"deep":    {"Go": 40000},
	})
	analyzer := &fakeAnalyzer{byName: map[string]resume.RepoAnalysis{
		"popular": {Complexity: 2, Impact: 2, Skills: []string{"Golang"}, ATSPoints: []string{"shipped a CLI"}, Analysis: "a simple tool"},
		"deep":    {Complexity: 9, Impact: 8, Skills: []string{"Go", "Distributed Systems"}, ATSPoints: []string{"built a raft-based store"}, Analysis: "a distributed key-value store"},
	}}

	d, err := NewService(c, analyzer, quietLogger()).BuildDraft(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, d.Projects, 2)

	// assessment score outranks raw star count
	assert.Equal(t, "deep", d.Projects[0].Name)
	assert.Equal(t, "a distributed key-value store", d.Projects[0].Description,
		"repos without a description get the model's assessment")
	assert.Equal(t, []string{"built a raft-based store"}, d.Projects[0].Highlights)
	assert.Contains(t, d.Projects[0].Technologies, "Distributed Systems")

	assert.Equal(t, "existing description", d.Projects[1].Description,
		"an existing description is never overwritten")
	assert.Equal(t, []string{"shipped a CLI"}, d.Projects[1].Highlights)
	// "Golang" folds onto the "Go" already present from language stats
	count := 0
	for _, tech := range d.Projects[1].Technologies {
		if tech == "Go" || tech == "Golang" {
			count++
		}
	}
	assert.Equal(t, 1, count, "alias skills do not duplicate technologies")
}

type stubModel struct {
	output string
	calls  int
}

func (m *stubModel) Generate(context.Context, llm.Request) (string, error) {
	m.calls++
	return m.output, nil
}

func TestBuildDraftMalformedAssessmentNeverReachesDraft(t *testing.T) {
	repos := []Repo{
		{Name: "solo", Size: 10, Stars: 3, Language: "Go", HTMLURL: "https://github.com/jane/solo"},
	}
	c := testServer(t, repos, map[string]map[string]int64{
		"solo": {"Go": 1000},
	})

	model := &stubModel{output: "```json\n{\"broken\": "}
	analyzer := resume.NewExtractor(model, quietLogger())

	d, err := NewService(c, analyzer, quietLogger()).BuildDraft(context.Background(), "jane")
	require.NoError(t, err, "a failed assessment degrades the record, it never fails the draft")

	assert.Equal(t, 3, model.calls, "malformed output is retried before giving up")
	require.Len(t, d.Projects, 1)
	assert.Empty(t, d.Projects[0].Description, "raw model output never lands in the draft")
	assert.Empty(t, d.Projects[0].Highlights)
	for _, tech := range d.Projects[0].Technologies {
		assert.False(t, strings.Contains(tech, "broken"))
	}
}

func TestListReposUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("")
	c.BaseURL = srv.URL
	_, err := c.ListRepos(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListReposRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("")
	c.BaseURL = srv.URL
	_, err := c.ListRepos(context.Background(), "jane")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListReposSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Repo{})
	}))
	t.Cleanup(srv.Close)

	c := NewClient("tok-123")
	c.BaseURL = srv.URL
	_, err := c.ListRepos(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestPickReposTieBreakOnActivity(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	picked := pickRepos([]Repo{
		{Name: "a", Size: 1, Stars: 5, PushedAt: older},
		{Name: "b", Size: 1, Stars: 5, PushedAt: newer},
	})
	require.Len(t, picked, 2)
	assert.Equal(t, "b", picked[0].Name)
}
