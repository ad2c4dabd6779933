package api

import (
	"log"
	"net/http"

	"gtm-portfolio/database"
	"gtm-portfolio/llm"
)

// briefingResponse is the AI briefing payload. Error is set (with a canned
// briefing) when the upstream model call failed; the endpoint still answers
// 200 so the dashboard degrades gracefully.
type briefingResponse struct {
	Briefing string `json:"briefing"`
	Cached   bool   `json:"cached"`
	Error    bool   `json:"error,omitempty"`
}

func (s *Server) handleBriefing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Brand        *database.Brand   `json:"brand"`
		Metrics      []database.Metric `json:"metrics"`
		ForceRefresh bool              `json:"forceRefresh"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Brand == nil {
		respondWithError(w, http.StatusBadRequest, "Brand data is required", nil)
		return
	}

	ctx := r.Context()

	// Check cache unless force refresh
	if !body.ForceRefresh {
		if cached, ok := s.briefingCache.Get(ctx, body.Brand.ID); ok {
			writeJSON(w, http.StatusOK, briefingResponse{Briefing: cached.Briefing, Cached: true})
			return
		}
	}

	if !s.llmEnabled || s.llmClient == nil {
		writeJSON(w, http.StatusOK, briefingResponse{Briefing: llm.FallbackBriefing(), Error: true})
		return
	}

	// Fall back to stored history when the client didn't post metrics
	metrics := body.Metrics
	if len(metrics) == 0 && body.Brand.ID != "" {
		if brand, err := s.repo.GetBrand(body.Brand.ID); err == nil {
			metrics = brand.Metrics
		}
	}

	prompt := llm.BuildBriefingPrompt(body.Brand, metrics)
	briefing, err := s.llmClient.Analyze(ctx, prompt)
	if err != nil {
		log.Printf("AI briefing error: %v", err)
		writeJSON(w, http.StatusOK, briefingResponse{Briefing: llm.FallbackBriefing(), Error: true})
		return
	}

	s.briefingCache.Set(ctx, body.Brand.ID, briefing)
	writeJSON(w, http.StatusOK, briefingResponse{Briefing: briefing})
}
