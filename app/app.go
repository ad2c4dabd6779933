package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gtm-portfolio/api"
	"gtm-portfolio/cache"
	"gtm-portfolio/config"
	"gtm-portfolio/database"
	"gtm-portfolio/llm"
	"gtm-portfolio/realtime"
)

// App represents the main application
type App struct {
	config *config.Config
	db     *database.Database
	rawDB  *sql.DB
	redis  *cache.RedisClient
	repo   *database.PortfolioRepository
	hub    *realtime.Hub
	server *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{config: cfg}
}

// Start starts the application and blocks until shutdown
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Database Connection
	fmt.Println("🗄️  Connecting to database...")
	db, err := database.Connect(
		a.config.DatabaseHost,
		a.config.DatabasePort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	// 2. Redis Connection (optional; briefing cache falls back to memory)
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Using in-memory briefing cache.")
	} else {
		a.redis = redisClient
	}

	// 3. Schema + demo user
	a.repo = database.NewPortfolioRepository(a.db)
	if err := a.repo.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	demoUser, err := a.repo.EnsureDemoUser()
	if err != nil {
		return fmt.Errorf("demo user setup failed: %w", err)
	}

	// 4. Optional demo data seed (bulk metric load runs over raw COPY)
	if a.config.SeedOnStart {
		rawDB, err := database.OpenRaw(
			a.config.DatabaseHost,
			a.config.DatabasePort,
			a.config.DatabaseName,
			a.config.DatabaseUser,
			a.config.DatabasePassword,
		)
		if err != nil {
			return fmt.Errorf("raw database connection failed: %w", err)
		}
		a.rawDB = rawDB
		if err := database.NewSeeder(a.db, rawDB).Run(demoUser); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	// 5. Realtime hub
	a.hub = realtime.NewHub()
	go a.hub.Run(ctx)

	// 6. LLM client if enabled
	var llmClient *llm.Client
	if a.config.LLM.Enabled {
		llmClient = llm.NewClient(a.config.LLM.Endpoint, a.config.LLM.APIKey, a.config.LLM.Model)
		log.Printf("✅ AI Briefings ENABLED (Model: %s)", a.config.LLM.Model)
	} else {
		log.Println("ℹ️  AI Briefings DISABLED")
	}

	briefingCache := cache.NewBriefingCache(a.redis, time.Duration(a.config.BriefingCacheHours)*time.Hour)

	// 7. API Server
	a.server = api.NewServer(a.repo, a.hub, llmClient, a.config.LLM.Enabled, briefingCache, demoUser)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Start(a.config.Port)
	}()

	// 8. Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("🛑 Received %s, shutting down...", sig)
	case err := <-serverErr:
		if err != nil {
			a.cleanup(cancel)
			return fmt.Errorf("API server failed: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Server shutdown error: %v", err)
	}

	a.cleanup(cancel)
	log.Println("👋 Shutdown complete")
	return nil
}

// cleanup stops the hub and closes connections
func (a *App) cleanup(cancel context.CancelFunc) {
	cancel() // stops the hub

	if a.redis != nil {
		a.redis.Close()
	}
	if a.rawDB != nil {
		a.rawDB.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
