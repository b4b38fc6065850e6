package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/ai"
	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/auth"
	"github.com/cognicard/cognicard/internal/config"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/database"
	auditrepo "github.com/cognicard/cognicard/internal/database/audit"
	contactsrepo "github.com/cognicard/cognicard/internal/database/contacts"
	http_controllers "github.com/cognicard/cognicard/internal/http"
	"github.com/cognicard/cognicard/internal/importer"
	"github.com/cognicard/cognicard/internal/photo"
	"github.com/cognicard/cognicard/internal/scheduler"
	"github.com/cognicard/cognicard/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting CogniCard v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Contact store and service
	contactRepo := contactsrepo.NewRepository(db.DB)
	contactService := contacts.NewService(contactRepo)

	// Audit trail
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	// Photo cache for resolved contact photos
	photoCache, err := photo.NewCache(cfg.Photo.CacheDir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize photo cache: %v", err)
	} else {
		log.Printf("Photo cache initialized at %s", cfg.Photo.CacheDir)
	}

	// Gemini-backed AI collaborators (optional)
	var extractor ai.Extractor
	var researcher ai.Researcher
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Gemini client: %v", err)
		} else {
			extractor = gemini
			researcher = gemini
			log.Printf("AI features enabled")
		}
	} else {
		log.Printf("WARNING: GEMINI_API_KEY is not set. Card scanning, text extraction, and research endpoints will be disabled.")
	}

	// File importer (two-step parse/confirm)
	contactImporter := importer.New(contactService, extractor)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var photoScheduler *scheduler.PhotoSyncScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewRefreshPhotoQueue(photoCache),
			tasks.NewRefreshAllPhotosQueue(contactService, taskClient),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Nightly photo refresh
		photoScheduler = scheduler.NewPhotoSyncScheduler(taskClient, cfg.PhotoSync.Enabled, cfg.PhotoSync.Schedule)
		if err := photoScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start photo sync scheduler: %v", err)
		}
	}

	// Initialize authentication if enabled
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService = auth.NewService(db.DB, cfg.Auth)

		// Get underlying SQL DB for session store
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		// Generate or use configured CSRF secret
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		// Check if setup is needed
		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. POST /api/auth/setup to create the first account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Contacts:       contactService,
		Importer:       contactImporter,
		Database:       db,
		Auditor:        auditService,
		Extractor:      extractor,
		Researcher:     researcher,
		PhotoCache:     photoCache,
		TaskClient:     taskClient,
		PhotoScheduler: photoScheduler,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		AuthConfig:     cfg.Auth,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		DemoMode:       cfg.Demo.Enabled,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if photoScheduler != nil {
			photoScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
