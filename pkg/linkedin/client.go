// Package linkedin implements the OAuth connection flow and profile
// import for a linked LinkedIn account.
package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	authBaseURL = "https://www.linkedin.com/oauth/v2"
	apiBaseURL  = "https://api.linkedin.com/v2"
)

var (
	ErrNotConfigured  = errors.New("linkedin oauth is not configured")
	ErrExchangeDenied = errors.New("linkedin rejected the authorization code")
)

// Config holds the OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func (c Config) enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURI != ""
}

// Client drives the OAuth code exchange and the profile fetch.
type Client struct {
	cfg      Config
	AuthBase string
	APIBase  string
	httpDo   *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		AuthBase: authBaseURL,
		APIBase:  apiBaseURL,
		httpDo:   &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthURL builds the authorization redirect for the OpenID Connect flow.
// The state value must be verified on callback.
func (c *Client) AuthURL(state string) (string, error) {
	if !c.cfg.enabled() {
		return "", ErrNotConfigured
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("scope", "openid profile email")
	q.Set("state", state)
	return c.AuthBase + "/authorization?" + q.Encode(), nil
}

// Exchange trades an authorization code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	if !c.cfg.enabled() {
		return "", ErrNotConfigured
	}
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.AuthBase+"/accessToken", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return "", ErrExchangeDenied
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("linkedin token endpoint: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", errors.New("linkedin token endpoint: empty access token")
	}
	return body.AccessToken, nil
}

// FetchProfile loads the member's userinfo document and returns the raw
// JSON plus the stable member id.
func (c *Client) FetchProfile(ctx context.Context, token string) (payload string, ref string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"/userinfo", nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("linkedin userinfo: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	var ident struct {
		Sub string `json:"sub"`
	}
	_ = json.Unmarshal(raw, &ident)
	return string(raw), ident.Sub, nil
}
