// Package ai wraps the Anthropic client behind the three operations the
// service needs: screenshot plan analysis, follow-up chat, and fallback
// code generation.
package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Pre-compiled patterns for cleaning model output before JSON decoding.
var (
	// Matches ```json\n{...}\n```, ```{...}```, ``` json{...}```, etc.
	// Newlines are optional; models don't always include them.
	codeFenceRegex = regexp.MustCompile(`(?s)` + "`" + `{3}(?:json)?\s*\n?([\s\S]*?)\n?` + "`" + `{3}`)

	// Greedy so nested structures are captured whole.
	objectRegex = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	arrayRegex  = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
)

// ParseJSON decodes a model reply into T, tolerating the usual formatting
// quirks of LLM output.
//
// Strategy sequence:
//  1. Direct JSON parse
//  2. Strip markdown code fences and retry
//  3. Extract the outermost JSON object/array from mixed content and retry
//
// Failures wrap ErrMalformedResponse so callers can distinguish "bad JSON"
// from "request failed".
func ParseJSON[T any](text string) (T, error) {
	var zero T

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return zero, fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}

	if result, err := tryDirectParse[T](trimmed); err == nil {
		return result, nil
	}

	withoutFences := removeCodeFences(trimmed)
	if withoutFences != trimmed {
		if result, err := tryDirectParse[T](withoutFences); err == nil {
			return result, nil
		}
	}

	if extracted := extractJSON(withoutFences); extracted != "" {
		if result, err := tryDirectParse[T](extracted); err == nil {
			return result, nil
		}
	}

	slog.Debug("all JSON parsing strategies failed", "preview", truncate(text, 120))
	return zero, fmt.Errorf("%w: %s", ErrMalformedResponse, truncate(trimmed, 200))
}

func tryDirectParse[T any](text string) (T, error) {
	var result T
	err := json.Unmarshal([]byte(text), &result)
	return result, err
}

// removeCodeFences strips markdown code fences, plus single backticks that
// wrap the entire content.
func removeCodeFences(text string) string {
	cleaned := codeFenceRegex.ReplaceAllString(text, "$1")
	if strings.HasPrefix(cleaned, "`") && strings.HasSuffix(cleaned, "`") {
		cleaned = strings.TrimPrefix(cleaned, "`")
		cleaned = strings.TrimSuffix(cleaned, "`")
	}
	return strings.TrimSpace(cleaned)
}

// extractJSON pulls the outermost JSON object or array out of mixed
// content. The first-character check keeps an array from being mistaken
// for its first element.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if match := arrayRegex.FindString(trimmed); match != "" {
			return match
		}
	}
	if match := objectRegex.FindString(trimmed); match != "" {
		return match
	}
	return arrayRegex.FindString(trimmed)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
