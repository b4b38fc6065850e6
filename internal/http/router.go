package http

import (
	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/auth"
	"github.com/cognicard/cognicard/internal/demo"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Block write operations when running as a public demo
	if cfg.DemoMode {
		router.Use(demo.NewMiddleware(true).Handler())
	}

	// Apply CSRF protection if auth is enabled
	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Apply auth middleware if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Register auth routes if auth service is available
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig)
		authController.RegisterRoutes(router)

		// API token management endpoints
		tokenController := auth.NewAPITokenController(cfg.AuthService)
		router.POST("/api/auth/token", tokenController.GenerateToken)
		router.DELETE("/api/auth/token", tokenController.RevokeToken)
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	contactsController := NewContactsController(cfg.Contacts, cfg.Auditor)
	exportController := NewExportController(cfg.Contacts, cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Contact CRUD endpoints
	router.GET("/api/contacts", contactsController.ListContacts)
	router.GET("/api/contacts/groups", contactsController.ListGroups)
	router.GET("/api/contacts/:id", contactsController.GetContact)
	router.POST("/api/contacts", contactsController.SaveContact)
	router.PUT("/api/contacts/:id", contactsController.SaveContact)
	router.DELETE("/api/contacts/:id", contactsController.DeleteContact)
	router.POST("/api/contacts/bulk-delete", contactsController.DeleteContacts)

	// Import endpoints (two-step: parse preview, then confirm)
	if cfg.Importer != nil {
		importController := NewImportController(cfg.Importer, cfg.Auditor)
		router.POST("/api/import/parse", importController.ParseFile)
		router.POST("/api/import/confirm", importController.ConfirmImport)
	}

	// Export endpoints
	router.GET("/api/contacts/:id/vcard", exportController.DownloadVCard)
	router.GET("/api/export/csv", exportController.DownloadCSV)
	router.GET("/api/export/vcards", exportController.DownloadVCardArchive)

	// AI endpoints
	if cfg.Extractor != nil || cfg.Researcher != nil {
		aiController := NewAIController(cfg.Extractor, cfg.Researcher, cfg.Contacts, cfg.Auditor)
		router.POST("/api/ai/scan-card", aiController.ScanCard)
		router.POST("/api/ai/extract-text", aiController.ExtractText)
		router.POST("/api/ai/scan-address", aiController.ScanAddress)
		router.POST("/api/contacts/:id/research", aiController.ResearchContact)
	}

	// Contact photo endpoint
	if cfg.PhotoCache != nil {
		photosController := NewPhotosController(cfg.PhotoCache, cfg.Contacts)
		router.GET("/api/contacts/:id/photo", photosController.GetPhoto)
	}

	// Audit log endpoints
	if cfg.Auditor != nil {
		auditController := NewAuditController(cfg.Auditor)
		router.GET("/api/audit", auditController.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient, cfg.PhotoScheduler)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:id/run", tasksController.RunTask)
	}

	return router
}
