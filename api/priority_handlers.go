package api

import (
	"net/http"
	"time"

	"gtm-portfolio/database"
	"gtm-portfolio/helpers"
	"gtm-portfolio/realtime"
)

func (s *Server) handleListPriorities(w http.ResponseWriter, r *http.Request) {
	weekStart := helpers.StartOfWeek(time.Now())
	if raw := r.URL.Query().Get("weekStart"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid weekStart date", err)
			return
		}
		weekStart = parsed
	}

	priorities, err := s.repo.ListPriorities(weekStart)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch priorities", err)
		return
	}
	writeJSON(w, http.StatusOK, priorities)
}

func (s *Server) handleCreatePriority(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID        string  `json:"userId"`
		Title         string  `json:"title"`
		Description   *string `json:"description"`
		DayOfWeek     string  `json:"dayOfWeek"`
		WeekStartDate string  `json:"weekStartDate"`
		Order         *int    `json:"order"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Title == "" || body.DayOfWeek == "" || body.WeekStartDate == "" {
		respondWithError(w, http.StatusBadRequest, "title, dayOfWeek and weekStartDate are required", nil)
		return
	}

	weekStart, err := parseDateParam(body.WeekStartDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid weekStartDate", err)
		return
	}

	// New tasks append to the end of their day
	order := 0
	if body.Order != nil {
		order = *body.Order
	} else {
		count, err := s.repo.CountDayPriorities(body.DayOfWeek, weekStart)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to count priorities", err)
			return
		}
		order = int(count)
	}

	userID := body.UserID
	if userID == "" {
		userID = s.demoUser.ID
	}

	priority := database.Priority{
		UserID:        userID,
		Title:         body.Title,
		Description:   body.Description,
		DayOfWeek:     body.DayOfWeek,
		WeekStartDate: weekStart,
		Order:         order,
	}
	if err := s.repo.CreatePriority(&priority); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create priority", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventPriorityCreated, priority))
	writeJSON(w, http.StatusCreated, priority)
}

func (s *Server) handleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
		Order       *int    `json:"order"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Completed != nil {
		updates["completed"] = *body.Completed
	}
	if body.Order != nil {
		updates["sort_order"] = *body.Order
	}
	if len(updates) == 0 {
		respondWithError(w, http.StatusBadRequest, "No updatable fields in request", nil)
		return
	}

	priority, err := s.repo.UpdatePriority(id, updates)
	if err != nil {
		respondRepoError(w, "priority", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventPriorityUpdated, priority))
	writeJSON(w, http.StatusOK, priority)
}

func (s *Server) handleDeletePriority(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.DeletePriority(id); err != nil {
		respondRepoError(w, "priority", err)
		return
	}

	s.hub.Publish(realtime.NewEvent(realtime.EventPriorityDeleted, map[string]string{"id": id}))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
