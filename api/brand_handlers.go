package api

import (
	"net/http"
	"time"

	"gtm-portfolio/database"
	models "gtm-portfolio/database/models_pkg"
	"gtm-portfolio/portfolio"
	"gtm-portfolio/realtime"
)

// brandResponse is a brand payload with its computed health score attached.
type brandResponse struct {
	database.Brand
	HealthScore portfolio.HealthScore `json:"healthScore"`
}

func withHealthScore(brand database.Brand) brandResponse {
	return brandResponse{
		Brand:       brand,
		HealthScore: portfolio.ComputeHealthScore(&brand, brand.Metrics),
	}
}

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	stages := getListParam(r, "stage")
	statuses := getListParam(r, "status")
	search := r.URL.Query().Get("search")

	brands, err := s.repo.ListBrands(stages, statuses, search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch brands", err)
		return
	}

	response := make([]brandResponse, 0, len(brands))
	for _, brand := range brands {
		response = append(response, withHealthScore(brand))
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string     `json:"name"`
		VisionaryID   *string    `json:"visionaryId"`
		LaunchDate    *time.Time `json:"launchDate"`
		Stage         string     `json:"stage"`
		TargetRevenue float64    `json:"targetRevenue"`
		TargetMargin  float64    `json:"targetMargin"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Brand name is required", nil)
		return
	}

	if body.Stage == "" {
		body.Stage = models.StageIdeation
	}
	if body.TargetMargin == 0 {
		body.TargetMargin = 20
	}

	brand := database.Brand{
		Name:          body.Name,
		VisionaryID:   body.VisionaryID,
		LaunchDate:    body.LaunchDate,
		Stage:         body.Stage,
		Status:        models.StatusOnTrack,
		TargetRevenue: body.TargetRevenue,
		TargetMargin:  body.TargetMargin,
	}
	if err := s.repo.CreateBrand(&brand); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create brand", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventBrandCreated, brand))
	writeJSON(w, http.StatusCreated, brand)
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := s.repo.GetBrand(r.PathValue("id"))
	if err != nil {
		respondRepoError(w, "brand", err)
		return
	}
	writeJSON(w, http.StatusOK, withHealthScore(*brand))
}

func (s *Server) handleUpdateBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Name               *string  `json:"name"`
		Stage              *string  `json:"stage"`
		Status             *string  `json:"status"`
		MonthlyRevenue     *float64 `json:"monthlyRevenue"`
		MonthlyProfit      *float64 `json:"monthlyProfit"`
		ContributionMargin *float64 `json:"contributionMargin"`
		FrontEndRoas       *float64 `json:"frontEndRoas"`
		BackEndLtv         *float64 `json:"backEndLtv"`
		ThisWeekFocus      *string  `json:"thisWeekFocus"`
		DaysToBreakeven    *int     `json:"daysToBreakeven"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status := body.Status
	if body.MonthlyRevenue != nil || body.ContributionMargin != nil {
		targetRevenue, targetMargin, err := s.repo.GetBrandTargets(id)
		if err != nil {
			respondRepoError(w, "brand", err)
			return
		}
		// Absent figures count as 0 here, matching the dashboard's
		// long-standing recompute semantics.
		revenue, margin := 0.0, 0.0
		if body.MonthlyRevenue != nil {
			revenue = *body.MonthlyRevenue
		}
		if body.ContributionMargin != nil {
			margin = *body.ContributionMargin
		}
		recomputed := portfolio.RecomputeStatus(revenue, margin, targetRevenue, targetMargin)
		status = &recomputed
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Stage != nil {
		updates["stage"] = *body.Stage
	}
	if status != nil {
		updates["status"] = *status
	}
	if body.MonthlyRevenue != nil {
		updates["monthly_revenue"] = *body.MonthlyRevenue
	}
	if body.MonthlyProfit != nil {
		updates["monthly_profit"] = *body.MonthlyProfit
	}
	if body.ContributionMargin != nil {
		updates["contribution_margin"] = *body.ContributionMargin
	}
	if body.FrontEndRoas != nil {
		updates["front_end_roas"] = *body.FrontEndRoas
	}
	if body.BackEndLtv != nil {
		updates["back_end_ltv"] = *body.BackEndLtv
	}
	if body.ThisWeekFocus != nil {
		updates["this_week_focus"] = *body.ThisWeekFocus
	}
	if body.DaysToBreakeven != nil {
		updates["days_to_breakeven"] = *body.DaysToBreakeven
	}

	if len(updates) == 0 {
		respondWithError(w, http.StatusBadRequest, "No updatable fields in request", nil)
		return
	}

	brand, err := s.repo.UpdateBrand(id, updates)
	if err != nil {
		respondRepoError(w, "brand", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventBrandUpdated, brand))
	writeJSON(w, http.StatusOK, brand)
}

func (s *Server) handleDeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.DeleteBrand(id); err != nil {
		respondRepoError(w, "brand", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventBrandDeleted, map[string]string{"id": id}))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ============================================================================
// Decisions
// ============================================================================

func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if ok := s.requireBrand(w, id); !ok {
		return
	}

	decisions, err := s.repo.ListDecisions(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch decisions", err)
		return
	}
	writeJSON(w, http.StatusOK, decisions)
}

func (s *Server) handleCreateDecision(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if ok := s.requireBrand(w, id); !ok {
		return
	}

	var body struct {
		DecisionType string     `json:"decisionType"`
		DecisionDate *time.Time `json:"decisionDate"`
		Reasoning    *string    `json:"reasoning"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	switch body.DecisionType {
	case models.DecisionKeep, models.DecisionPass, models.DecisionTransitionHouse:
	default:
		respondWithError(w, http.StatusBadRequest, "decisionType must be KEEP, PASS or TRANSITION_HOUSE", nil)
		return
	}

	decisionDate := time.Now()
	if body.DecisionDate != nil {
		decisionDate = *body.DecisionDate
	}
	decision := database.Decision{
		BrandID:      id,
		DecisionType: body.DecisionType,
		DecisionDate: decisionDate,
		Reasoning:    body.Reasoning,
	}
	if err := s.repo.CreateDecision(&decision); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record decision", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventDecisionRecorded, decision))
	writeJSON(w, http.StatusCreated, decision)
}

// ============================================================================
// Milestones / Budgets
// ============================================================================

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if ok := s.requireBrand(w, id); !ok {
		return
	}

	milestones, err := s.repo.ListMilestones(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch milestones", err)
		return
	}
	writeJSON(w, http.StatusOK, milestones)
}

func (s *Server) handleCreateMilestone(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if ok := s.requireBrand(w, id); !ok {
		return
	}

	var body struct {
		Title       string     `json:"title"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Title == "" || body.DueDate == nil {
		respondWithError(w, http.StatusBadRequest, "title and dueDate are required", nil)
		return
	}

	milestone := database.Milestone{
		BrandID:     id,
		Title:       body.Title,
		Description: body.Description,
		DueDate:     *body.DueDate,
	}
	if err := s.repo.CreateMilestone(&milestone); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create milestone", err)
		return
	}
	writeJSON(w, http.StatusCreated, milestone)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if ok := s.requireBrand(w, id); !ok {
		return
	}

	budgets, err := s.repo.ListBudgets(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch budgets", err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if ok := s.requireBrand(w, id); !ok {
		return
	}

	var body struct {
		Month   *time.Time `json:"month"`
		AdSpend float64    `json:"adSpend"`
		Revenue float64    `json:"revenue"`
		Profit  float64    `json:"profit"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Month == nil {
		respondWithError(w, http.StatusBadRequest, "month is required", nil)
		return
	}

	// Normalize to the first of the month
	month := time.Date(body.Month.Year(), body.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	budget := database.Budget{
		BrandID: id,
		Month:   month,
		AdSpend: body.AdSpend,
		Revenue: body.Revenue,
		Profit:  body.Profit,
	}
	if err := s.repo.CreateBudget(&budget); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create budget", err)
		return
	}
	writeJSON(w, http.StatusCreated, budget)
}

// requireBrand answers 404/500 and returns false when the brand is missing
func (s *Server) requireBrand(w http.ResponseWriter, id string) bool {
	exists, err := s.repo.BrandExists(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to check brand", err)
		return false
	}
	if !exists {
		respondWithError(w, http.StatusNotFound, "brand not found", nil)
		return false
	}
	return true
}
