package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/baselens/baselens/internal/features"
)

// FallbackRequest asks for progressive-enhancement code for a feature that
// is missing from some of the user's target browsers.
type FallbackRequest struct {
	FeatureName         string                    `json:"featureName"`
	UnsupportedBrowsers []string                  `json:"unsupportedBrowsers"`
	BaselineData        *features.FeatureBaseline `json:"baselineData,omitempty"`
}

// FallbackResult is the generated fallback snippet plus its cost estimate.
type FallbackResult struct {
	Code             string `json:"code"`
	BundleSizeImpact string `json:"bundleSizeImpact"`
	Notes            string `json:"notes"`
}

const fallbackPromptTemplate = `Generate fallback code for a web platform feature that is not
available in all of the user's target browsers.

FEATURE: %s
UNSUPPORTED BROWSERS: %s
BASELINE DATA:
%s

TASK:
Write a minimal, production-quality fallback: feature detection plus a
graceful degradation or polyfill strategy. Prefer progressive enhancement
over heavyweight polyfills.

OUTPUT FORMAT (JSON only, no markdown):
{
  "code": "the fallback snippet, ready to paste",
  "bundleSizeImpact": "rough added size, e.g. '~1.2 KB minified'",
  "notes": "one short paragraph: tradeoffs and when to skip the fallback"
}

IMPORTANT: Respond with ONLY raw JSON. Do NOT wrap it in markdown code fences.`

// GenerateFallback produces fallback code for the given feature. Baseline
// data, when present, is passed through verbatim so the model sees exact
// version numbers. Malformed replies surface as ErrMalformedResponse.
func (c *Client) GenerateFallback(ctx context.Context, req FallbackRequest) (*FallbackResult, error) {
	if strings.TrimSpace(req.FeatureName) == "" {
		return nil, fmt.Errorf("featureName is required")
	}

	baselineJSON := "(none available)"
	if req.BaselineData != nil {
		if data, err := json.MarshalIndent(req.BaselineData, "", "  "); err == nil {
			baselineJSON = string(data)
		}
	}

	browsers := strings.Join(req.UnsupportedBrowsers, ", ")
	if browsers == "" {
		browsers = "(unspecified)"
	}

	prompt := fmt.Sprintf(fallbackPromptTemplate, req.FeatureName, browsers, baselineJSON)
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	responseText, err := c.complete(ctx, "generate_fallback", c.model, "", 2048, messages)
	if err != nil {
		return nil, err
	}

	result, err := ParseJSON[FallbackResult](responseText)
	if err != nil {
		return nil, fmt.Errorf("fallback generation: %w", err)
	}
	if result.Code == "" {
		return nil, fmt.Errorf("fallback generation: %w: empty code field", ErrMalformedResponse)
	}
	return &result, nil
}
