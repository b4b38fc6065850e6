package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/cognicard/cognicard/internal/ai"
	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/contacts"
	contactsrepo "github.com/cognicard/cognicard/internal/database/contacts"
	"github.com/cognicard/cognicard/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Contact store implementations
var _ contacts.Store = (*contactsrepo.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// AI collaborator implementations
var _ ai.Extractor = (*ai.GeminiClient)(nil)
var _ ai.Researcher = (*ai.GeminiClient)(nil)

// =============================================================================
// Task Queue
// =============================================================================

// Fan-out task dependencies
var _ tasks.ContactLister = (*contacts.Service)(nil)
var _ tasks.TaskEnqueuer = (*tasks.Client)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
