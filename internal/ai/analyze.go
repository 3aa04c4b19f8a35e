package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/baselens/baselens/internal/plan"
)

// Wire shapes for the analysis reply. Kept separate from the plan model so
// the provider contract can drift without touching the engine types.
type rawMention struct {
	FeatureID string `json:"featureId"`
	Name      string `json:"name"`
}

type rawSection struct {
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	WebFeatures []rawMention `json:"webFeatures"`
}

type rawPlan struct {
	Plan []rawSection `json:"plan"`
}

const analyzeSystemPrompt = `You are a senior front-end engineer reviewing UI design screenshots.
You identify the web platform features needed to implement what you see and
produce a concise, step-by-step implementation plan.`

const analyzePrompt = `Analyze this UI design screenshot and produce an implementation plan.

Break the implementation into 3-6 ordered sections. For each section, list
the modern web platform features it relies on (CSS features, JavaScript
syntax, browser APIs, HTML elements).

OUTPUT FORMAT (JSON only, no markdown):
{
  "plan": [
    {
      "title": "Section title",
      "content": "What to build in this step and how",
      "webFeatures": [
        {"featureId": "css.properties.grid", "name": "CSS Grid"}
      ]
    }
  ]
}

GUIDELINES:
1. "featureId" is the canonical dotted identifier when you know it
   (e.g. "css.properties.grid", "api.IntersectionObserver"); omit it or
   leave it empty when unsure, but always set "name".
2. Prefer widely-available platform features; mention newer ones where the
   design clearly calls for them.
3. Keep "content" to 2-3 sentences per section.

IMPORTANT: Respond with ONLY raw JSON. Do NOT wrap it in markdown code fences.`

// AnalyzePlan sends a UI screenshot to the provider and parses the reply
// into an implementation plan. The plan comes back raw: run it through the
// deduplicator before display. Malformed replies surface as
// ErrMalformedResponse; transport failures are returned as-is, unretried.
func (c *Client) AnalyzePlan(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		mediaType = "image/png"
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(
			anthropic.NewImageBlockBase64(mediaType, encoded),
			anthropic.NewTextBlock(analyzePrompt),
		),
	}

	responseText, err := c.complete(ctx, "analyze_plan", c.model, analyzeSystemPrompt, 4096, messages)
	if err != nil {
		return nil, err
	}

	raw, err := ParseJSON[rawPlan](responseText)
	if err != nil {
		return nil, fmt.Errorf("plan analysis: %w", err)
	}
	if len(raw.Plan) == 0 {
		return nil, fmt.Errorf("plan analysis: %w: no plan sections", ErrMalformedResponse)
	}

	result := &plan.Plan{Sections: make([]plan.Section, 0, len(raw.Plan))}
	for _, sec := range raw.Plan {
		section := plan.Section{
			Title:    sec.Title,
			Content:  sec.Content,
			Features: make([]plan.Mention, 0, len(sec.WebFeatures)),
		}
		for _, m := range sec.WebFeatures {
			section.Features = append(section.Features, plan.Mention{
				Name:      m.Name,
				FeatureID: m.FeatureID,
			})
		}
		result.Sections = append(result.Sections, section)
	}
	return result, nil
}
