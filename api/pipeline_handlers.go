package api

import (
	"net/http"
	"time"

	"gtm-portfolio/database"
	models "gtm-portfolio/database/models_pkg"
	"gtm-portfolio/realtime"
)

// pipelineResponse is the visionary funnel view: every candidate with their
// brands, plus brand stage buckets and summary counts.
type pipelineResponse struct {
	Visionaries    []database.Visionary `json:"visionaries"`
	StageBreakdown map[string]int64     `json:"stageBreakdown"`
	Summary        struct {
		TotalVisionaries int `json:"totalVisionaries"`
		InNegotiation    int `json:"inNegotiation"`
		Signed           int `json:"signed"`
		Passed           int `json:"passed"`
	} `json:"summary"`
}

func (s *Server) handleGetPipeline(w http.ResponseWriter, r *http.Request) {
	visionaries, err := s.repo.ListVisionariesWithBrands()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch pipeline", err)
		return
	}
	breakdown, err := s.repo.CountBrandsByStage()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch pipeline", err)
		return
	}

	response := pipelineResponse{
		Visionaries:    visionaries,
		StageBreakdown: breakdown,
	}
	response.Summary.TotalVisionaries = len(visionaries)
	for _, v := range visionaries {
		switch v.Stage {
		case models.VisionaryNegotiation:
			response.Summary.InNegotiation++
		case models.VisionarySigned:
			response.Summary.Signed++
		case models.VisionaryPassed:
			response.Summary.Passed++
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleCreateVisionary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name           string     `json:"name"`
		Email          string     `json:"email"`
		Phone          string     `json:"phone"`
		Company        string     `json:"company"`
		Industry       string     `json:"industry"`
		Stage          string     `json:"stage"`
		NextAction     string     `json:"nextAction"`
		NextActionDate *time.Time `json:"nextActionDate"`
		Notes          string     `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Visionary name is required", nil)
		return
	}

	if body.Stage == "" {
		body.Stage = models.VisionaryInitialContact
	}

	visionary := database.Visionary{
		Name:           body.Name,
		Email:          body.Email,
		Phone:          body.Phone,
		Company:        body.Company,
		Industry:       body.Industry,
		Stage:          body.Stage,
		NextAction:     body.NextAction,
		NextActionDate: body.NextActionDate,
		Notes:          body.Notes,
	}
	if err := s.repo.CreateVisionary(&visionary); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create visionary", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventVisionaryCreated, visionary))
	writeJSON(w, http.StatusCreated, visionary)
}
