// Package github pulls public repository data for a connected GitHub
// account and turns it into profile records.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.github.com"

var (
	ErrUserNotFound = errors.New("github user not found")
	ErrAccessDenied = errors.New("github access denied or rate limited")
)

// Repo is the subset of repository metadata the profile needs.
type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Fork        bool      `json:"fork"`
	Size        int       `json:"size"`
	Topics      []string  `json:"topics"`
	PushedAt    time.Time `json:"pushed_at"`
}

// Client is a thin REST client for the public GitHub API. The token is
// optional; without it the shared unauthenticated rate limit applies.
type Client struct {
	BaseURL string
	Token   string
	httpDo  *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		httpDo:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ListRepos returns a user's public repositories, most recently pushed
// first.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=pushed&type=owner", c.BaseURL, username)
	if err := c.getJSON(ctx, url, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Languages returns byte counts per language for one repository.
func (c *Client) Languages(ctx context.Context, username, repo string) (map[string]int64, error) {
	langs := make(map[string]int64)
	url := fmt.Sprintf("%s/repos/%s/%s/languages", c.BaseURL, username, repo)
	if err := c.getJSON(ctx, url, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return ErrAccessDenied
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("github api: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
