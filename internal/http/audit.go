package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/audit"
)

// AuditController serves the audit event log.
type AuditController struct {
	auditService *audit.Service
}

// NewAuditController creates a new AuditController.
func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents handles GET /api/audit
// Returns the newest audit events, capped by the ?limit= parameter.
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	events, err := ac.auditService.RecentEvents(limit)
	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
