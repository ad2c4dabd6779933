package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gtm-portfolio/cache"
	"gtm-portfolio/database"
	"gtm-portfolio/llm"
	"gtm-portfolio/realtime"
)

// Server handles HTTP API requests
type Server struct {
	repo          *database.PortfolioRepository
	dashboard     dashboardReads
	hub           *realtime.Hub
	llmClient     *llm.Client
	llmEnabled    bool
	briefingCache *cache.BriefingCache
	demoUser      *database.User
	httpServer    *http.Server
}

// NewServer creates a new API server instance
func NewServer(repo *database.PortfolioRepository, hub *realtime.Hub, llmClient *llm.Client, llmEnabled bool, briefingCache *cache.BriefingCache, demoUser *database.User) *Server {
	return &Server{
		repo:          repo,
		dashboard:     repo,
		hub:           hub,
		llmClient:     llmClient,
		llmEnabled:    llmEnabled,
		briefingCache: briefingCache,
		demoUser:      demoUser,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", s.handleGetDashboard)

	// Brand Routes
	mux.HandleFunc("GET /api/brands", s.handleListBrands)
	mux.HandleFunc("POST /api/brands", s.handleCreateBrand)
	mux.HandleFunc("GET /api/brands/{id}", s.handleGetBrand)
	mux.HandleFunc("PATCH /api/brands/{id}", s.handleUpdateBrand)
	mux.HandleFunc("DELETE /api/brands/{id}", s.handleDeleteBrand)
	mux.HandleFunc("GET /api/brands/{id}/decisions", s.handleListDecisions)
	mux.HandleFunc("POST /api/brands/{id}/decisions", s.handleCreateDecision)
	mux.HandleFunc("GET /api/brands/{id}/milestones", s.handleListMilestones)
	mux.HandleFunc("POST /api/brands/{id}/milestones", s.handleCreateMilestone)
	mux.HandleFunc("GET /api/brands/{id}/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/brands/{id}/budgets", s.handleCreateBudget)

	// Weekly Priority Routes
	mux.HandleFunc("GET /api/priorities", s.handleListPriorities)
	mux.HandleFunc("POST /api/priorities", s.handleCreatePriority)
	mux.HandleFunc("PATCH /api/priorities/{id}", s.handleUpdatePriority)
	mux.HandleFunc("DELETE /api/priorities/{id}", s.handleDeletePriority)

	// Visionary Pipeline Routes
	mux.HandleFunc("GET /api/pipeline", s.handleGetPipeline)
	mux.HandleFunc("POST /api/pipeline/visionary", s.handleCreateVisionary)

	// Contact / Note / Alert Routes
	mux.HandleFunc("GET /api/contacts", s.handleListContacts)
	mux.HandleFunc("POST /api/contacts", s.handleCreateContact)
	mux.HandleFunc("GET /api/notes", s.handleListNotes)
	mux.HandleFunc("POST /api/notes", s.handleCreateNote)
	mux.HandleFunc("POST /api/alerts/{id}/read", s.handleMarkAlertRead)

	// AI Briefing Route (LLM)
	mux.HandleFunc("POST /api/ai/briefing", s.handleBriefing)

	// Live Updates (WebSocket)
	mux.HandleFunc("GET /api/events/ws", s.hub.ServeWS)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	s.httpServer = &http.Server{Addr: serverAddr, Handler: handler}

	log.Printf("🚀 API Server starting on %s", serverAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handlers are distributed across multiple files:
// - brand_handlers.go: brand CRUD plus decisions, milestones, budgets
// - priority_handlers.go: weekly priorities
// - pipeline_handlers.go: visionary pipeline
// - contact_handlers.go: contacts, notes, alerts
// - dashboard_handlers.go: aggregated dashboard
// - briefing_handlers.go: AI briefing (LLM)
