package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/ai"
	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/contacts"
)

// maxImageSize caps uploaded business card and address images at 8 MB.
const maxImageSize = 8 << 20

// AIController exposes the model-backed collaborators: business card
// scanning, free-text extraction, address scanning, and contact research.
type AIController struct {
	extractor  ai.Extractor
	researcher ai.Researcher
	contacts   *contacts.Service
	auditor    *audit.Service
}

// NewAIController creates a new AIController.
func NewAIController(extractor ai.Extractor, researcher ai.Researcher, service *contacts.Service, auditor *audit.Service) *AIController {
	return &AIController{
		extractor:  extractor,
		researcher: researcher,
		contacts:   service,
		auditor:    auditor,
	}
}

// ScanCard handles POST /api/ai/scan-card
// Reads contact fields off an uploaded business card image.
func (ac *AIController) ScanCard(c *gin.Context) {
	if ac.extractor == nil {
		respondError(c, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	image, mimeType, ok := readImageUpload(c)
	if !ok {
		return
	}

	partial, err := ac.extractor.ExtractFromImage(c.Request.Context(), image, mimeType)
	if ac.auditor != nil {
		ac.auditor.LogResearch(GetUserID(c), "card_scan", "Scanned a business card", "", err)
	}
	if err != nil {
		respondError(c, http.StatusBadGateway, "Failed to analyze the image. Please try again or enter the details manually.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": partial})
}

// ExtractTextRequest is the request body for free-text extraction.
type ExtractTextRequest struct {
	Text string `json:"text"`
}

// ExtractText handles POST /api/ai/extract-text
// Reads contact fields out of free-form text such as an email signature.
func (ac *AIController) ExtractText(c *gin.Context) {
	if ac.extractor == nil {
		respondError(c, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	var req ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		respondBadRequest(c, "text is required")
		return
	}

	partial, err := ac.extractor.ExtractFromText(c.Request.Context(), req.Text)
	if ac.auditor != nil {
		ac.auditor.LogResearch(GetUserID(c), "text_extract", "Extracted contact details from text", "", err)
	}
	if err != nil {
		respondError(c, http.StatusBadGateway, "Failed to analyze the text. Please try again or enter the details manually.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": partial})
}

// ScanAddress handles POST /api/ai/scan-address
// Reads a mailing address out of an uploaded image.
func (ac *AIController) ScanAddress(c *gin.Context) {
	if ac.extractor == nil {
		respondError(c, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	image, mimeType, ok := readImageUpload(c)
	if !ok {
		return
	}

	scan, err := ac.extractor.ScanAddress(c.Request.Context(), image, mimeType)
	if ac.auditor != nil {
		ac.auditor.LogResearch(GetUserID(c), "address_scan", "Scanned an address image", "", err)
	}
	if err != nil {
		respondError(c, http.StatusBadGateway, "Failed to read an address from the image.")
		return
	}

	c.JSON(http.StatusOK, scan)
}

// ResearchContact handles POST /api/contacts/:id/research
// Produces a web-grounded intelligence summary for a stored contact.
func (ac *AIController) ResearchContact(c *gin.Context) {
	if ac.researcher == nil {
		respondError(c, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	contact, err := ac.contacts.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			respondNotFound(c, "contact")
			return
		}
		respondInternalError(c, err, "research contact")
		return
	}

	intel, err := ac.researcher.Research(c.Request.Context(), contact.Name, contact.Company)
	if ac.auditor != nil {
		ac.auditor.LogResearch(GetUserID(c), "contact_research", "Researched "+contact.Name, contact.ID, err)
	}
	if err != nil {
		respondError(c, http.StatusBadGateway, "Research failed. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, intel)
}

// readImageUpload pulls the "image" field out of a multipart request.
// Responds with an error and returns ok=false on failure.
func readImageUpload(c *gin.Context) (data []byte, mimeType string, ok bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondBadRequest(c, "image is required")
		return nil, "", false
	}
	if fileHeader.Size > maxImageSize {
		respondError(c, http.StatusRequestEntityTooLarge, "image exceeds the 8MB limit")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "open uploaded image")
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respondInternalError(c, err, "read uploaded image")
		return nil, "", false
	}

	mimeType = fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, true
}
