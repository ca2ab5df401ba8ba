// Package jsonrepair turns the raw text of a model response into a parsed
// JSON value, applying best-effort fixes for the damage models typically
// inflict: markdown fences, surrounding prose, truncated output, trailing
// commas and JS-only tokens.
package jsonrepair

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a repair failure.
type Kind string

const (
	KindEmptyResponse  Kind = "empty_response"
	KindNoOpeningBrace Kind = "no_opening_brace"
	KindUnrepairable   Kind = "unrepairable_structure"
	KindSyntax         Kind = "json_syntax_error"
)

// RepairError reports why a raw text could not be turned into JSON.
type RepairError struct {
	Kind Kind
	Msg  string
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("json repair: %s: %s", e.Kind, e.Msg)
}

var fenceRe = regexp.MustCompile("```(?:json)?\n?|\n?```")

// Repair extracts and parses the first JSON object found in raw.
// The routine is pure: the same input always yields the same value or the
// same error kind. Truncated output is closed with the missing brackets;
// an imbalance that sits inside a malformed string literal is beyond this
// heuristic and surfaces as KindUnrepairable or KindSyntax.
func Repair(raw string) (any, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &RepairError{Kind: KindEmptyResponse, Msg: "blank model response"}
	}

	text = fenceRe.ReplaceAllString(text, "")

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, &RepairError{Kind: KindNoOpeningBrace, Msg: "no opening brace in response"}
	}

	candidate, err := extractObject(text[start:])
	if err != nil {
		return nil, err
	}

	candidate = replaceBareTokens(candidate)
	candidate = stripTrailingCommas(candidate)

	var v any
	if uerr := json.Unmarshal([]byte(candidate), &v); uerr != nil {
		return nil, &RepairError{Kind: KindSyntax, Msg: uerr.Error()}
	}
	return dropNullElements(v), nil
}

// extractObject scans text (which starts at '{') and returns the outermost
// object. Braces and brackets inside string literals are ignored by tracking
// an in-string flag toggled by unescaped quotes. When the text ends before
// the outermost brace closes, the missing closers are appended in stack
// order; an unterminated string is closed first.
func extractObject(text string) (string, error) {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				return "", &RepairError{Kind: KindUnrepairable, Msg: "closing bracket without a matching opener"}
			}
			open := stack[len(stack)-1]
			if (ch == '}' && open != '{') || (ch == ']' && open != '[') {
				return "", &RepairError{Kind: KindUnrepairable, Msg: "mismatched brackets"}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return text[:i+1], nil
			}
		}
	}

	// Truncated: close what is still open, innermost first.
	var b strings.Builder
	b.WriteString(text)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String(), nil
}

// bareTokens are JS values that are not valid JSON. They are replaced with
// null so a response containing them still parses; null list elements are
// dropped afterwards anyway.
var bareTokens = map[string]bool{"undefined": true, "NaN": true, "Infinity": true, "-Infinity": true}

func replaceBareTokens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); {
		ch := s[i]
		if inString {
			b.WriteByte(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			i++
			continue
		}
		if ch == '"' {
			inString = true
			b.WriteByte(ch)
			i++
			continue
		}
		if isTokenByte(ch) {
			j := i
			for j < len(s) && isTokenByte(s[j]) {
				j++
			}
			if bareTokens[s[i:j]] {
				b.WriteString("null")
			} else {
				b.WriteString(s[i:j])
			}
			i = j
			continue
		}
		b.WriteByte(ch)
		i++
	}
	return b.String()
}

func isTokenByte(ch byte) bool {
	return ch == '-' || ch == '.' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// stripTrailingCommas removes commas that directly precede a closing brace
// or bracket, commas inside string literals excluded.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			b.WriteByte(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			b.WriteByte(ch)
			continue
		}
		if ch == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// dropNullElements removes null entries from every array in the value,
// recursively.
func dropNullElements(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, 0, len(t))
		for _, el := range t {
			if el == nil {
				continue
			}
			out = append(out, dropNullElements(el))
		}
		return out
	case map[string]any:
		for k, el := range t {
			t[k] = dropNullElements(el)
		}
		return t
	default:
		return v
	}
}

// EnsureArrays defaults each named field of obj to an empty list when it is
// absent or null. Fields that already hold a value are left alone; type
// errors are the validator's business, not the repairer's.
func EnsureArrays(obj map[string]any, fields ...string) {
	for _, f := range fields {
		if v, ok := obj[f]; !ok || v == nil {
			obj[f] = []any{}
		}
	}
}
