// Package gemini is a minimal Google Generative Language API client for
// the generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/resumic/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent endpoint and maps provider
// failures onto the llm error taxonomy.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	httpDo  *http.Client
}

func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		httpDo: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"` // encoding/json base64-encodes []byte
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one generateContent call. Extraction relies on low
// temperature and a capped response so truncation stays rare and the
// output stays reproducible enough to retry.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	if c.APIKey == "" {
		return "", &llm.Error{Kind: llm.KindCredential, Msg: "gemini api key is empty"}
	}

	parts := []part{{Text: req.Prompt}}
	if req.File != nil {
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: req.File.MIMEType,
			Data:     req.File.Data,
		}})
	}
	body := generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			TopK:            32,
			TopP:            1,
			MaxOutputTokens: 4096,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.System}}}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", &llm.Error{Kind: llm.KindTimeout, Msg: err.Error()}
		}
		return "", &llm.Error{Kind: llm.KindUnavailable, Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiErrorBody
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", classifyStatus(resp.StatusCode, apiErr)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &llm.Error{Kind: llm.KindUnavailable, Msg: "malformed response body: " + err.Error()}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &llm.Error{Kind: llm.KindUnavailable, Msg: "no candidates returned by model"}
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func classifyStatus(status int, body apiErrorBody) *llm.Error {
	msg := body.Error.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &llm.Error{Kind: llm.KindCredential, Status: status, Msg: msg}
	case status == http.StatusTooManyRequests || body.Error.Status == "RESOURCE_EXHAUSTED":
		return &llm.Error{Kind: llm.KindQuota, Status: status, Msg: msg}
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key"):
		return &llm.Error{Kind: llm.KindCredential, Status: status, Msg: msg}
	default:
		return &llm.Error{Kind: llm.KindUnavailable, Status: status, Msg: msg}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
