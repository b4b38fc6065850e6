package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/audit"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/entities"
)

// ContactsController handles contact CRUD endpoints.
type ContactsController struct {
	contacts *contacts.Service
	auditor  *audit.Service
}

// NewContactsController creates a new ContactsController.
func NewContactsController(service *contacts.Service, auditor *audit.Service) *ContactsController {
	return &ContactsController{
		contacts: service,
		auditor:  auditor,
	}
}

// ListContacts handles GET /api/contacts
// Returns all contacts sorted by name. The optional ?q= parameter filters
// by name, company, email, notes, or group labels.
func (cc *ContactsController) ListContacts(c *gin.Context) {
	query := c.Query("q")

	var (
		result []entities.Contact
		err    error
	)
	if query != "" {
		result, err = cc.contacts.Search(query)
	} else {
		result, err = cc.contacts.List()
	}
	if err != nil {
		respondInternalError(c, err, "list contacts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": result,
		"count":    len(result),
	})
}

// GetContact handles GET /api/contacts/:id
func (cc *ContactsController) GetContact(c *gin.Context) {
	contact, err := cc.contacts.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			respondNotFound(c, "contact")
			return
		}
		respondInternalError(c, err, "get contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// SaveContact handles POST /api/contacts and PUT /api/contacts/:id
// A record without a known ID is created; a known ID is replaced wholesale.
func (cc *ContactsController) SaveContact(c *gin.Context) {
	var contact entities.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	// Path ID wins over a body ID on updates
	if id := c.Param("id"); id != "" {
		contact.ID = id
	}

	saved, err := cc.contacts.Save(contact)
	if err != nil {
		if errors.Is(err, contacts.ErrNameRequired) {
			respondBadRequest(c, "contact name is required")
			return
		}
		respondInternalError(c, err, "save contact")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// DeleteContact handles DELETE /api/contacts/:id
func (cc *ContactsController) DeleteContact(c *gin.Context) {
	id := c.Param("id")

	contact, err := cc.contacts.GetByID(id)
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			respondNotFound(c, "contact")
			return
		}
		respondInternalError(c, err, "delete contact")
		return
	}

	if err := cc.contacts.Delete(id); err != nil {
		respondInternalError(c, err, "delete contact")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogDelete(GetUserID(c), contact.ID, contact.Name)
	}

	respondSuccess(c, "contact deleted")
}

// BulkDeleteRequest is the request body for bulk contact deletion.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteContacts handles POST /api/contacts/bulk-delete
// Removes a set of contacts in a single store write. Unknown IDs are
// silently skipped.
func (cc *ContactsController) DeleteContacts(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		respondBadRequest(c, "ids is required")
		return
	}

	if err := cc.contacts.DeleteMany(req.IDs); err != nil {
		respondInternalError(c, err, "bulk delete contacts")
		return
	}

	if cc.auditor != nil {
		for _, id := range req.IDs {
			cc.auditor.LogDelete(GetUserID(c), id, "")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "contacts deleted",
		"count":   len(req.IDs),
	})
}

// ListGroups handles GET /api/contacts/groups
// Returns the distinct group labels across all contacts.
func (cc *ContactsController) ListGroups(c *gin.Context) {
	groups, err := cc.contacts.Groups()
	if err != nil {
		respondInternalError(c, err, "list groups")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
	})
}
