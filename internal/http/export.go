package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/exporters"
)

// ExportController serves contact downloads: single vCards, the full CSV,
// and a zip archive of one vCard per contact.
type ExportController struct {
	contacts *contacts.Service
	auditor  *audit.Service
}

// NewExportController creates a new ExportController.
func NewExportController(service *contacts.Service, auditor *audit.Service) *ExportController {
	return &ExportController{
		contacts: service,
		auditor:  auditor,
	}
}

// DownloadVCard handles GET /api/contacts/:id/vcard
func (ec *ExportController) DownloadVCard(c *gin.Context) {
	contact, err := ec.contacts.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			respondNotFound(c, "contact")
			return
		}
		respondInternalError(c, err, "export vcard")
		return
	}

	card := exporters.GenerateVCard(contact)
	filename := exporters.VCardFilename(contact)

	if ec.auditor != nil {
		ec.auditor.LogExport(GetUserID(c), "vcard", "Exported vCard for "+contact.Name, nil)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", []byte(card))
}

// DownloadCSV handles GET /api/export/csv
// Streams the whole contact set as one CSV document.
func (ec *ExportController) DownloadCSV(c *gin.Context) {
	all, err := ec.contacts.List()
	if err != nil {
		respondInternalError(c, err, "export csv")
		return
	}

	csv := exporters.GenerateCSV(all)

	if ec.auditor != nil {
		description := fmt.Sprintf("Exported %d contacts as CSV", len(all))
		ec.auditor.LogExport(GetUserID(c), "csv", description, nil)
	}

	c.Header("Content-Disposition", `attachment; filename="contacts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// DownloadVCardArchive handles GET /api/export/vcards
// Returns a zip archive with one vCard file per contact.
func (ec *ExportController) DownloadVCardArchive(c *gin.Context) {
	all, err := ec.contacts.List()
	if err != nil {
		respondInternalError(c, err, "export vcard archive")
		return
	}
	if len(all) == 0 {
		respondBadRequest(c, "no contacts to export")
		return
	}

	archive, err := exporters.ArchiveVCards(all)
	if err != nil {
		respondInternalError(c, err, "build vcard archive")
		return
	}

	if ec.auditor != nil {
		description := fmt.Sprintf("Exported %d contacts as vCard archive", len(all))
		ec.auditor.LogExport(GetUserID(c), "vcard_zip", description, nil)
	}

	c.Header("Content-Disposition", `attachment; filename="contacts.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
