package http

import (
	"github.com/cognicard/cognicard/internal/ai"
	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/auth"
	"github.com/cognicard/cognicard/internal/config"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/database"
	"github.com/cognicard/cognicard/internal/importer"
	"github.com/cognicard/cognicard/internal/photo"
	"github.com/cognicard/cognicard/internal/scheduler"
	"github.com/cognicard/cognicard/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Contacts *contacts.Service
	Importer *importer.Importer
	Database *database.Database
	Auditor  *audit.Service

	// AI collaborators (nil when no API key is configured)
	Extractor  ai.Extractor
	Researcher ai.Researcher

	// Photo caching
	PhotoCache *photo.Cache

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Photo sync scheduler (optional)
	PhotoScheduler *scheduler.PhotoSyncScheduler

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// Demo mode blocks all write operations
	DemoMode bool

	// Application info
	Version string
}
