package resume

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/artem13815/resumic/pkg/jsonrepair"
	"github.com/artem13815/resumic/pkg/llm"
	"github.com/artem13815/resumic/pkg/retry"
)

// ExtractError is the failure of a whole extraction: the classified cause
// plus the last raw model output, kept for diagnostic logging only. Raw
// text must never reach an end user.
type ExtractError struct {
	Raw      string
	Attempts int
	Err      error
}

func (e *ExtractError) Error() string {
	return "extraction failed: " + e.Err.Error()
}

func (e *ExtractError) Unwrap() error { return e.Err }

// IsRetriable reports whether an attempt failure is worth another model
// call. Malformed output and schema violations are model non-determinism;
// credential, quota and timeout failures are not fixed by asking again.
func IsRetriable(err error) bool {
	var re *jsonrepair.RepairError
	if errors.As(err, &re) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// Extractor turns an uploaded file or a third-party profile payload into a
// validated Draft by calling a generative text service and repairing and
// validating its output.
type Extractor struct {
	model    llm.TextModel
	attempts int
	timeout  time.Duration
	maxChars int
	log      *slog.Logger
}

func NewExtractor(model llm.TextModel, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		model:    model,
		attempts: 3, // 2 retries on malformed output
		timeout:  30 * time.Second,
		maxChars: 12_000,
		log:      log,
	}
}

// ExtractResume parses an uploaded resume file. Text is extracted locally
// and sent in the prompt; when the file yields no text (scanned PDFs, old
// .doc binaries) the file itself is attached inline.
func (e *Extractor) ExtractResume(ctx context.Context, filename string, data []byte) (Draft, error) {
	text, err := ParseText(filename, data)
	if err != nil && !errors.Is(err, ErrNoText) {
		return Draft{}, err
	}
	text = strings.TrimSpace(text)
	if len(text) > e.maxChars {
		text = text[:e.maxChars]
	}

	req := llm.Request{System: extractionSystem, Prompt: resumePrompt(text)}
	if text == "" {
		req.File = &llm.InlineFile{MIMEType: MimeForFilename(filename), Data: data}
	}

	d, err := e.run(ctx, KindResumeUpload, req)
	if err != nil {
		return Draft{}, err
	}
	d.SourceRef = filename
	return d, nil
}

// ExtractLinkedIn normalizes a raw LinkedIn profile payload into a Draft.
func (e *Extractor) ExtractLinkedIn(ctx context.Context, ref, profileJSON string) (Draft, error) {
	if len(profileJSON) > e.maxChars {
		profileJSON = profileJSON[:e.maxChars]
	}
	req := llm.Request{System: extractionSystem, Prompt: linkedinPrompt(profileJSON)}
	d, err := e.run(ctx, KindLinkedInProfile, req)
	if err != nil {
		return Draft{}, err
	}
	d.SourceRef = ref
	return d, nil
}

// RepoAnalysis is the model's assessment of one repository: numeric scores
// for ranking plus resume-ready skills and bullet points.
type RepoAnalysis struct {
	Complexity float64  `json:"complexity"` // 1..10
	Impact     float64  `json:"impact"`     // 1..10
	Skills     []string `json:"skills"`
	ATSPoints  []string `json:"atsPoints"`
	Analysis   string   `json:"analysis"`
}

// ExtractRepoAnalysis assesses a single GitHub repository. The output goes
// through the same repair, validation and retry pipeline as every other
// extraction.
func (e *Extractor) ExtractRepoAnalysis(ctx context.Context, f RepoFacts) (RepoAnalysis, error) {
	req := llm.Request{System: extractionSystem, Prompt: githubRepoPrompt(f)}
	return runExtraction(e, ctx, KindGitHubRepo, req, ValidateRepoAnalysis)
}

func (e *Extractor) run(ctx context.Context, kind Kind, req llm.Request) (Draft, error) {
	return runExtraction(e, ctx, kind, req, Validate)
}

func runExtraction[T any](e *Extractor, ctx context.Context, kind Kind, req llm.Request, validate func(context.Context, any) (T, error)) (T, error) {
	attempt := 0
	var lastRaw string
	var zero T

	out, err := retry.Do(ctx, e.attempts, func(ctx context.Context) (T, error) {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		raw, err := e.model.Generate(callCtx, req)
		if err != nil {
			return zero, err
		}
		lastRaw = raw

		value, err := jsonrepair.Repair(raw)
		if err != nil {
			return zero, err
		}
		return validate(ctx, value)
	}, IsRetriable)

	if err != nil {
		// Raw output goes to the log, never to the caller's response.
		e.log.Error("extraction failed",
			slog.String("kind", string(kind)),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()),
			slog.String("raw", lastRaw),
		)
		return zero, &ExtractError{Raw: lastRaw, Attempts: attempt, Err: err}
	}
	return out, nil
}
