package llm

import (
	"context"
	"fmt"
)

// InlineFile is a document attached to a generation request, sent as
// base64 inline data alongside the prompt.
type InlineFile struct {
	MIMEType string
	Data     []byte
}

// Request carries one generation call. File is optional.
type Request struct {
	System string
	Prompt string
	File   *InlineFile
}

// TextModel is a minimal abstraction for generative text services used by
// the domain. It intentionally hides concrete providers to preserve
// dependency direction.
type TextModel interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrorKind classifies a provider failure. None of these kinds is fixed by
// calling the service again with the same input, so callers must not retry
// them.
type ErrorKind string

const (
	KindCredential  ErrorKind = "credential"  // invalid or missing API key
	KindQuota       ErrorKind = "quota"       // quota or rate limit exhausted
	KindTimeout     ErrorKind = "timeout"     // deadline hit before a response
	KindUnavailable ErrorKind = "unavailable" // transport or upstream failure
)

// Error is a classified provider failure.
type Error struct {
	Kind   ErrorKind
	Status int // HTTP status when applicable, 0 otherwise
	Msg    string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("llm %s (http %d): %s", e.Kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("llm %s: %s", e.Kind, e.Msg)
}
