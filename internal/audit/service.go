// Package audit provides high-level audit logging over the audit event
// repository. Writes are fire-and-forget: a failed audit write is logged
// and never fails the operation being audited.
package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/cognicard/cognicard/internal/database/audit"
	"github.com/cognicard/cognicard/internal/entities"
)

type Service struct {
	repo *audit.Repository
}

func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogImport records a file import event.
func (s *Service) LogImport(userID uint, source, description string, contactsCount, errorsCount int, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventImport,
		Action:      source + "_import",
		Description: description,
		EntityType:  "contact",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"contacts_count": contactsCount,
		"errors_count":   errorsCount,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogExport records an export event.
func (s *Service) LogExport(userID uint, format, description string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventExport,
		Action:      format + "_export",
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogDelete records a contact deletion event.
func (s *Service) LogDelete(userID uint, contactID, contactName string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDelete,
		Action:      "contact_delete",
		Description: "Deleted contact: " + contactName,
		EntityType:  "contact",
		EntityID:    contactID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogResearch records an AI research or extraction event.
func (s *Service) LogResearch(userID uint, action, description, contactID string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAIEnrich,
		Action:      action,
		Description: description,
		EntityType:  "contact",
		EntityID:    contactID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(userID uint, action, ipAddr, userAgent string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		Metadata:  truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}
	if ipAddr != "" {
		event.Description = "From " + ipAddr
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// RecentEvents returns the newest audit events, capped at limit.
func (s *Service) RecentEvents(limit int) ([]entities.AuditEvent, error) {
	return s.repo.RecentEvents(limit)
}

// DeleteOldEvents removes events older than the retention window and
// returns the number deleted.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	return s.repo.DeleteOlderThan(time.Now().Add(-retention))
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
