package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baselens/baselens/internal/ai"
	"github.com/baselens/baselens/internal/config"
	"github.com/baselens/baselens/internal/features"
	"github.com/baselens/baselens/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator lets each test script the provider's behavior.
type stubGenerator struct {
	analyzeFn  func(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error)
	chatFn     func(ctx context.Context, history []ai.ChatMessage, question string) (string, error)
	fallbackFn func(ctx context.Context, req ai.FallbackRequest) (*ai.FallbackResult, error)
}

func (s *stubGenerator) AnalyzePlan(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error) {
	return s.analyzeFn(ctx, image, mediaType)
}

func (s *stubGenerator) Chat(ctx context.Context, history []ai.ChatMessage, question string) (string, error) {
	return s.chatFn(ctx, history, question)
}

func (s *stubGenerator) GenerateFallback(ctx context.Context, req ai.FallbackRequest) (*ai.FallbackResult, error) {
	return s.fallbackFn(ctx, req)
}

func newTestServer(t *testing.T, gen Generator) *Server {
	t.Helper()
	cfg := config.Config{
		ListenAddr:         "127.0.0.1:0",
		MaxUploadBytes:     1 << 20,
		RateLimitPerMinute: 100,
	}
	dedup, err := plan.NewDeduplicator(features.Default(), plan.DefaultConfig())
	require.NoError(t, err)
	s, err := NewServer(cfg, features.Default(), dedup, gen)
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func TestNewServer_Validation(t *testing.T) {
	cfg := config.Config{ListenAddr: ":0", MaxUploadBytes: 1 << 20, RateLimitPerMinute: 10}
	dedup, err := plan.NewDeduplicator(features.Default(), plan.DefaultConfig())
	require.NoError(t, err)

	_, err = NewServer(cfg, nil, dedup, nil)
	assert.Error(t, err)

	_, err = NewServer(cfg, features.Default(), nil, nil)
	assert.Error(t, err)

	_, err = NewServer(cfg, features.Default(), dedup, nil)
	assert.NoError(t, err, "nil generator must be accepted")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["ai_configured"])
}

func TestHandleFeature(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("known id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/features/css.properties.grid", nil)
		w := httptest.NewRecorder()
		s.routes().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var fb features.FeatureBaseline
		decodeBody(t, w, &fb)
		assert.Equal(t, "css.properties.grid", fb.FeatureID)
		assert.Equal(t, features.BaselineHigh, fb.Status)
		assert.True(t, fb.Support["chrome"])
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/features/no.such.feature", nil)
		w := httptest.NewRecorder()
		s.routes().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleResolve(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("resolves", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/resolve?name=CSS+Grid", nil)
		w := httptest.NewRecorder()
		s.routes().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			FeatureID string                    `json:"featureId"`
			Baseline  *features.FeatureBaseline `json:"baseline"`
		}
		decodeBody(t, w, &body)
		assert.Equal(t, "css.properties.grid", body.FeatureID)
		require.NotNil(t, body.Baseline)
		assert.Equal(t, features.BaselineHigh, body.Baseline.Status)
	})

	t.Run("unknown name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/resolve?name=does-not-exist-xyz", nil)
		w := httptest.NewRecorder()
		s.routes().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/resolve", nil)
		w := httptest.NewRecorder()
		s.routes().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleAnalyze(t *testing.T) {
	image := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{Image: image})
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Contains(t, body["error"], "not configured")
	})

	t.Run("invalid body", func(t *testing.T) {
		s := newTestServer(t, &stubGenerator{})
		w := doJSON(t, s, http.MethodPost, "/api/analyze", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad base64", func(t *testing.T) {
		s := newTestServer(t, &stubGenerator{})
		w := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{Image: "!!not-base64!!"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deduplicates the plan", func(t *testing.T) {
		gen := &stubGenerator{
			analyzeFn: func(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error) {
				assert.Equal(t, "image/png", mediaType)
				return &plan.Plan{Sections: []plan.Section{
					{Title: "Layout", Features: []plan.Mention{{Name: "CSS Grid"}}},
					{Title: "Cards", Features: []plan.Mention{{Name: "CSS Grid"}}},
				}}, nil
			},
		}
		s := newTestServer(t, gen)

		w := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{Image: image})
		require.Equal(t, http.StatusOK, w.Code)

		var res plan.Result
		decodeBody(t, w, &res)
		require.Len(t, res.Plan.Sections, 2)
		assert.Equal(t, 1, res.Stats.Kept)
		assert.Equal(t, 1, res.Stats.Dropped)

		gridCount := 0
		for _, sec := range res.Plan.Sections {
			assert.GreaterOrEqual(t, len(sec.Features), 2)
			for _, m := range sec.Features {
				if m.FeatureID == "css.properties.grid" {
					gridCount++
					require.NotNil(t, m.Baseline)
				}
			}
		}
		assert.Equal(t, 1, gridCount)
	})

	t.Run("malformed model reply", func(t *testing.T) {
		gen := &stubGenerator{
			analyzeFn: func(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error) {
				return nil, fmt.Errorf("plan analysis: %w", ai.ErrMalformedResponse)
			},
		}
		s := newTestServer(t, gen)

		w := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{Image: image})
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Contains(t, body["error"], "could not be parsed")
	})

	t.Run("provider failure", func(t *testing.T) {
		gen := &stubGenerator{
			analyzeFn: func(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error) {
				return nil, fmt.Errorf("anthropic API call failed: connection refused")
			},
		}
		s := newTestServer(t, gen)

		w := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{Image: image})
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.NotContains(t, body["error"], "could not be parsed")
	})
}

func TestHandleChat(t *testing.T) {
	t.Run("missing question", func(t *testing.T) {
		s := newTestServer(t, &stubGenerator{})
		w := doJSON(t, s, http.MethodPost, "/api/chat", chatRequest{Question: "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("replies", func(t *testing.T) {
		gen := &stubGenerator{
			chatFn: func(ctx context.Context, history []ai.ChatMessage, question string) (string, error) {
				assert.Len(t, history, 2)
				assert.Equal(t, "is grid safe to use?", question)
				return "Yes, CSS Grid is widely available.", nil
			},
		}
		s := newTestServer(t, gen)

		w := doJSON(t, s, http.MethodPost, "/api/chat", chatRequest{
			Messages: []ai.ChatMessage{
				{Role: "user", Text: "analyze done"},
				{Role: "assistant", Text: "here is the plan"},
			},
			Question: "is grid safe to use?",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Equal(t, "Yes, CSS Grid is widely available.", body["reply"])
	})
}

func TestHandleFallback(t *testing.T) {
	t.Run("missing feature name", func(t *testing.T) {
		s := newTestServer(t, &stubGenerator{})
		w := doJSON(t, s, http.MethodPost, "/api/fallback", ai.FallbackRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("fills baseline data from the catalog", func(t *testing.T) {
		var got ai.FallbackRequest
		gen := &stubGenerator{
			fallbackFn: func(ctx context.Context, req ai.FallbackRequest) (*ai.FallbackResult, error) {
				got = req
				return &ai.FallbackResult{Code: "@supports not (view-transition-name: a) {}"}, nil
			},
		}
		s := newTestServer(t, gen)

		w := doJSON(t, s, http.MethodPost, "/api/fallback", ai.FallbackRequest{FeatureName: "View Transitions"})
		require.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, got.BaselineData)
		assert.Equal(t, "css.view-transitions", got.BaselineData.FeatureID)
		assert.Equal(t, []string{"firefox"}, got.UnsupportedBrowsers)

		var res ai.FallbackResult
		decodeBody(t, w, &res)
		assert.Contains(t, res.Code, "@supports")
	})

	t.Run("explicit baseline data wins", func(t *testing.T) {
		var got ai.FallbackRequest
		gen := &stubGenerator{
			fallbackFn: func(ctx context.Context, req ai.FallbackRequest) (*ai.FallbackResult, error) {
				got = req
				return &ai.FallbackResult{Code: "/* noop */"}, nil
			},
		}
		s := newTestServer(t, gen)

		w := doJSON(t, s, http.MethodPost, "/api/fallback", ai.FallbackRequest{
			FeatureName:         "View Transitions",
			UnsupportedBrowsers: []string{"safari"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"safari"}, got.UnsupportedBrowsers)
	})
}

func TestRateLimit(t *testing.T) {
	cfg := config.Config{
		ListenAddr:         "127.0.0.1:0",
		MaxUploadBytes:     1 << 20,
		RateLimitPerMinute: 1,
	}
	dedup, err := plan.NewDeduplicator(features.Default(), plan.DefaultConfig())
	require.NoError(t, err)
	gen := &stubGenerator{
		chatFn: func(ctx context.Context, history []ai.ChatMessage, question string) (string, error) {
			return "ok", nil
		},
	}
	s, err := NewServer(cfg, features.Default(), dedup, gen)
	require.NoError(t, err)

	first := doJSON(t, s, http.MethodPost, "/api/chat", chatRequest{Question: "one"})
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, s, http.MethodPost, "/api/chat", chatRequest{Question: "two"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Lookup routes are never metered.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDecodeImage(t *testing.T) {
	raw := []byte("fake image bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("plain base64", func(t *testing.T) {
		img, mt, err := decodeImage(encoded, "")
		require.NoError(t, err)
		assert.Equal(t, raw, img)
		assert.Equal(t, "image/png", mt)
	})

	t.Run("data url", func(t *testing.T) {
		img, mt, err := decodeImage("data:image/jpeg;base64,"+encoded, "")
		require.NoError(t, err)
		assert.Equal(t, raw, img)
		assert.Equal(t, "image/jpeg", mt)
	})

	t.Run("explicit media type wins", func(t *testing.T) {
		_, mt, err := decodeImage(encoded, "image/webp")
		require.NoError(t, err)
		assert.Equal(t, "image/webp", mt)
	})

	t.Run("errors", func(t *testing.T) {
		cases := []string{"", "data:image/png,plain", "!!not-base64!!", "data:garbage"}
		for _, payload := range cases {
			_, _, err := decodeImage(payload, "")
			assert.Error(t, err, "payload %q", payload)
		}
	})
}

func TestRequestBodyCap(t *testing.T) {
	cfg := config.Config{
		ListenAddr:         "127.0.0.1:0",
		MaxUploadBytes:     64,
		RateLimitPerMinute: 100,
	}
	dedup, err := plan.NewDeduplicator(features.Default(), plan.DefaultConfig())
	require.NoError(t, err)
	s, err := NewServer(cfg, features.Default(), dedup, &stubGenerator{})
	require.NoError(t, err)

	big := strings.Repeat("x", 4096)
	w := doJSON(t, s, http.MethodPost, "/api/chat", chatRequest{Question: big})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
