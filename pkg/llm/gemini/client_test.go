package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artem13815/resumic/pkg/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key", srv.URL, "gemini-test")
	return c, srv
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(b)
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var gotPath string
	var gotReq generateRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(candidateBody(`{"name":"Jane"}`)))
	})

	out, err := c.Generate(context.Background(), llm.Request{Prompt: "extract"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != `{"name":"Jane"}` {
		t.Errorf("out = %q", out)
	}
	if gotPath != "/models/gemini-test:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.GenerationConfig.MaxOutputTokens != 4096 {
		t.Errorf("maxOutputTokens = %d", gotReq.GenerationConfig.MaxOutputTokens)
	}
}

func TestGenerateSendsInlineFile(t *testing.T) {
	var gotReq generateRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(candidateBody("ok")))
	})

	_, err := c.Generate(context.Background(), llm.Request{
		Prompt: "extract",
		File:   &llm.InlineFile{MIMEType: "application/pdf", Data: []byte("%PDF-1.4")},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	parts := gotReq.Contents[0].Parts
	if len(parts) != 2 || parts[1].InlineData == nil {
		t.Fatalf("expected inline data part, got %+v", parts)
	}
	if parts[1].InlineData.MIMEType != "application/pdf" {
		t.Errorf("mime = %q", parts[1].InlineData.MIMEType)
	}
	if string(parts[1].InlineData.Data) != "%PDF-1.4" {
		t.Errorf("data = %q", parts[1].InlineData.Data)
	}
}

func TestGenerateClassifiesStatuses(t *testing.T) {
	cases := []struct {
		status int
		body   string
		kind   llm.ErrorKind
	}{
		{http.StatusForbidden, `{"error":{"message":"forbidden"}}`, llm.KindCredential},
		{http.StatusUnauthorized, `{}`, llm.KindCredential},
		{http.StatusTooManyRequests, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`, llm.KindQuota},
		{http.StatusBadRequest, `{"error":{"message":"API key not valid"}}`, llm.KindCredential},
		{http.StatusInternalServerError, `{}`, llm.KindUnavailable},
	}
	for _, tc := range cases {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		})
		_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})
		var lerr *llm.Error
		if err == nil {
			t.Errorf("status %d: expected error", tc.status)
			continue
		}
		if !errors.As(err, &lerr) {
			t.Errorf("status %d: got %T", tc.status, err)
			continue
		}
		if lerr.Kind != tc.kind {
			t.Errorf("status %d: kind = %s, want %s", tc.status, lerr.Kind, tc.kind)
		}
	}
}

func TestGenerateTimeoutIsClassified(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(candidateBody("late")))
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, llm.Request{Prompt: "x"})
	var lerr *llm.Error
	if !errors.As(err, &lerr) || lerr.Kind != llm.KindTimeout {
		t.Fatalf("err = %v, want timeout kind", err)
	}
}

func TestGenerateEmptyKeyFailsFast(t *testing.T) {
	c := New("", "http://127.0.0.1:0", "m")
	_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})
	var lerr *llm.Error
	if !errors.As(err, &lerr) || lerr.Kind != llm.KindCredential {
		t.Fatalf("err = %v, want credential kind", err)
	}
}
