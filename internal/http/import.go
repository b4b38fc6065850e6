package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/entities"
	"github.com/cognicard/cognicard/internal/importer"
)

// maxImportSize caps uploaded import files at 10 MB.
const maxImportSize = 10 << 20

// ImportController handles the two-step file import flow: a parse request
// returns a preview of contacts and per-row errors without persisting
// anything, and a confirm request commits the batch the client approved.
type ImportController struct {
	importer *importer.Importer
	auditor  *audit.Service
}

// NewImportController creates a new ImportController.
func NewImportController(imp *importer.Importer, auditor *audit.Service) *ImportController {
	return &ImportController{
		importer: imp,
		auditor:  auditor,
	}
}

// ParseFile handles POST /api/import/parse
// Accepts a multipart upload under the "file" field and returns the parse
// preview. Unsupported file types come back as a file-level parse error
// with HTTP 200, not a transport failure.
func (ic *ImportController) ParseFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxImportSize {
		respondError(c, http.StatusRequestEntityTooLarge, "file exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "open uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		respondInternalError(c, err, "read uploaded file")
		return
	}

	outcome := ic.importer.Parse(c.Request.Context(), fileHeader.Filename, string(content))

	c.JSON(http.StatusOK, outcome)
}

// ConfirmImportRequest is the request body for committing a parsed batch.
type ConfirmImportRequest struct {
	Source   string                    `json:"source"`
	Contacts []entities.PartialContact `json:"contacts"`
}

// ConfirmImport handles POST /api/import/confirm
// Persists the batch of contacts the client confirmed from the preview.
func (ic *ImportController) ConfirmImport(c *gin.Context) {
	var req ConfirmImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if len(req.Contacts) == 0 {
		respondBadRequest(c, "contacts is required")
		return
	}

	source := req.Source
	if source == "" {
		source = "file"
	}

	created, err := ic.importer.Commit(req.Contacts)
	if ic.auditor != nil {
		description := fmt.Sprintf("Imported %d contacts", len(created))
		ic.auditor.LogImport(GetUserID(c), source, description, len(created), 0, err)
	}
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	respondCreated(c, gin.H{
		"contacts": created,
		"count":    len(created),
	})
}
