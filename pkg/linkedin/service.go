package linkedin

import (
	"context"
	"encoding/json"

	"github.com/artem13815/resumic/pkg/resume"
)

// Importer normalizes a raw profile payload into a resume draft. Satisfied
// by the resume extraction service.
type Importer interface {
	ExtractLinkedIn(ctx context.Context, ref, profileJSON string) (resume.Draft, error)
}

// Service runs the full import: code exchange, profile fetch, then
// model-backed normalization into a draft.
type Service struct {
	client   *Client
	importer Importer
}

func NewService(client *Client, importer Importer) *Service {
	return &Service{client: client, importer: importer}
}

func (s *Service) AuthURL(state string) (string, error) {
	return s.client.AuthURL(state)
}

// Import completes the OAuth callback and builds a draft from the member's
// profile. Spoken languages are lifted from the structured payload rather
// than left to the model, so they never leak into the skills list.
func (s *Service) Import(ctx context.Context, code string) (resume.Draft, error) {
	token, err := s.client.Exchange(ctx, code)
	if err != nil {
		return resume.Draft{}, err
	}
	payload, ref, err := s.client.FetchProfile(ctx, token)
	if err != nil {
		return resume.Draft{}, err
	}

	d, err := s.importer.ExtractLinkedIn(ctx, ref, payload)
	if err != nil {
		return resume.Draft{}, err
	}
	if langs := spokenLanguages(payload); len(langs) > 0 {
		d.SpokenLanguages = langs
	}
	if d.SourceRef == "" {
		d.SourceRef = ref
	}
	return d, nil
}

// spokenLanguages reads language names out of a full profile payload.
// Userinfo-only payloads have no languages list and yield nothing.
func spokenLanguages(payload string) []string {
	var doc struct {
		Languages []struct {
			Name string `json:"name"`
		} `json:"languages"`
	}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil
	}
	out := make([]string, 0, len(doc.Languages))
	for _, l := range doc.Languages {
		if l.Name != "" {
			out = append(out, l.Name)
		}
	}
	return out
}
