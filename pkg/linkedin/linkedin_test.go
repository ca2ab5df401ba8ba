package linkedin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumic/pkg/resume"
)

var testCfg = Config{
	ClientID:     "cid",
	ClientSecret: "secret",
	RedirectURI:  "https://app.example.com/callback",
}

type fakeImporter struct {
	gotRef     string
	gotPayload string
	draft      resume.Draft
	err        error
}

func (f *fakeImporter) ExtractLinkedIn(_ context.Context, ref, payload string) (resume.Draft, error) {
	f.gotRef = ref
	f.gotPayload = payload
	return f.draft, f.err
}

func TestAuthURL(t *testing.T) {
	c := NewClient(testCfg)
	raw, err := c.AuthURL("state-42")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, testCfg.RedirectURI, q.Get("redirect_uri"))
	assert.Equal(t, "state-42", q.Get("state"))
	assert.Contains(t, q.Get("scope"), "openid")
}

func TestAuthURLUnconfigured(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.AuthURL("s")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestImportFlow(t *testing.T) {
	profile := `{"sub":"abc-123","name":"Jane Doe","languages":[{"name":"English"},{"name":"German"}]}`

	mux := http.NewServeMux()
	mux.HandleFunc("/accessToken", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))
		assert.Equal(t, "secret", r.Form.Get("client_secret"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(profile))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(testCfg)
	c.AuthBase = srv.URL
	c.APIBase = srv.URL

	imp := &fakeImporter{draft: resume.Draft{Name: "Jane Doe", Email: "jane@example.com"}}
	d, err := NewService(c, imp).Import(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "abc-123", imp.gotRef)
	assert.Equal(t, profile, imp.gotPayload)
	assert.Equal(t, []string{"English", "German"}, d.SpokenLanguages)
	assert.Equal(t, "abc-123", d.SourceRef)
}

func TestExchangeRejectedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(testCfg)
	c.AuthBase = srv.URL
	_, err := c.Exchange(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrExchangeDenied)
}

func TestSpokenLanguagesAbsent(t *testing.T) {
	assert.Empty(t, spokenLanguages(`{"sub":"abc"}`))
	assert.Empty(t, spokenLanguages(`not json`))
}
