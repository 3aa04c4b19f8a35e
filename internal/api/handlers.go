package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/baselens/baselens/internal/ai"
)

const errAINotConfigured = "AI generation is not configured on this server (set ANTHROPIC_API_KEY)"

// handleFeature returns the Baseline snapshot for a canonical feature id.
func (s *Server) handleFeature(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status := s.catalog.BaselineStatus(id)
	if status == nil {
		writeError(w, http.StatusNotFound, "unknown feature id")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleResolve resolves a free-text feature name (?name=...) to its
// enriched snapshot. Unknown names are a 404, not a server error.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}
	id, ok := s.catalog.ResolveFeatureID(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown feature name")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"featureId": id,
		"baseline":  s.catalog.BaselineStatus(id),
	})
}

type analyzeRequest struct {
	// Image is the screenshot as base64 (optionally a data: URL).
	Image     string `json:"image"`
	MediaType string `json:"mediaType,omitempty"`
}

// handleAnalyze proxies a screenshot to the provider and returns the
// deduplicated, Baseline-enriched plan.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusInternalServerError, errAINotConfigured)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	image, mediaType, err := decodeImage(req.Image, req.MediaType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.generator.AnalyzePlan(r.Context(), image, mediaType)
	if err != nil {
		writeAIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.dedup.Process(*p))
}

type chatRequest struct {
	Messages []ai.ChatMessage `json:"messages"`
	Question string           `json:"question"`
}

// handleChat forwards the transcript and question to the provider.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusInternalServerError, errAINotConfigured)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "missing question")
		return
	}

	reply, err := s.generator.Chat(r.Context(), req.Messages, req.Question)
	if err != nil {
		writeAIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// handleFallback generates fallback code for a feature. When the request
// carries no baseline data, the catalog lookup fills it in so the model
// sees exact version numbers.
func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusInternalServerError, errAINotConfigured)
		return
	}

	var req ai.FallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.FeatureName) == "" {
		writeError(w, http.StatusBadRequest, "missing featureName")
		return
	}

	if req.BaselineData == nil {
		req.BaselineData = s.catalog.BaselineStatusByName(req.FeatureName)
	}
	if len(req.UnsupportedBrowsers) == 0 && req.BaselineData != nil {
		req.UnsupportedBrowsers = req.BaselineData.UnsupportedBrowsers()
	}

	result, err := s.generator.GenerateFallback(r.Context(), req)
	if err != nil {
		writeAIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeAIError maps provider failures onto the response envelope:
// missing credential is a server configuration problem, a malformed reply
// is a bad gateway distinct from a failed request.
func writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		writeError(w, http.StatusInternalServerError, errAINotConfigured)
	case errors.Is(err, ai.ErrMalformedResponse):
		writeError(w, http.StatusBadGateway, "the model returned a response that could not be parsed")
	default:
		writeError(w, http.StatusBadGateway, "AI request failed, please try again")
	}
}

// decodeImage accepts a raw base64 payload or a data: URL and returns the
// image bytes plus a media type.
func decodeImage(payload, mediaType string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", errors.New("missing image")
	}

	if strings.HasPrefix(payload, "data:") {
		rest := strings.TrimPrefix(payload, "data:")
		meta, data, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, "", errors.New("malformed data URL")
		}
		if mt, found := strings.CutSuffix(meta, ";base64"); found {
			if mediaType == "" {
				mediaType = mt
			}
		} else {
			return nil, "", errors.New("data URL must be base64-encoded")
		}
		payload = data
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.New("image is not valid base64")
	}
	if mediaType == "" {
		mediaType = "image/png"
	}
	return image, mediaType, nil
}
