package api

import (
	"net/http"

	"gtm-portfolio/database"
	models "gtm-portfolio/database/models_pkg"
)

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	contacts, err := s.repo.ListContacts(category, search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string  `json:"name"`
		Role      string  `json:"role"`
		Category  string  `json:"category"`
		Email     string  `json:"email"`
		Phone     string  `json:"phone"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Contact name is required", nil)
		return
	}

	if body.Category == "" {
		body.Category = models.ContactTeam
	}

	contact := database.Contact{
		Name:      body.Name,
		Role:      body.Role,
		Category:  body.Category,
		Email:     body.Email,
		Phone:     body.Phone,
		AvatarURL: body.AvatarURL,
	}
	if err := s.repo.CreateContact(&contact); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

// ============================================================================
// Notes
// ============================================================================

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entityType")
	entityID := r.URL.Query().Get("entityId")
	if entityType == "" || entityID == "" {
		respondWithError(w, http.StatusBadRequest, "entityType and entityId are required", nil)
		return
	}

	notes, err := s.repo.ListNotes(entityType, entityID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch notes", err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID     string `json:"userId"`
		EntityType string `json:"entityType"`
		EntityID   string `json:"entityId"`
		Content    string `json:"content"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.EntityType == "" || body.EntityID == "" || body.Content == "" {
		respondWithError(w, http.StatusBadRequest, "entityType, entityId, and content are required", nil)
		return
	}

	userID := body.UserID
	if userID == "" {
		userID = s.demoUser.ID
	}

	note := database.Note{
		UserID:     userID,
		EntityType: body.EntityType,
		EntityID:   body.EntityID,
		Content:    body.Content,
	}
	if err := s.repo.CreateNote(&note); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// ============================================================================
// Alerts
// ============================================================================

func (s *Server) handleMarkAlertRead(w http.ResponseWriter, r *http.Request) {
	alert, err := s.repo.MarkAlertRead(r.PathValue("id"))
	if err != nil {
		respondRepoError(w, "alert", err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}
