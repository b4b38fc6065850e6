package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/photo"
)

// PhotosController serves locally cached contact photos.
type PhotosController struct {
	cache    *photo.Cache
	contacts *contacts.Service
}

// NewPhotosController creates a new PhotosController.
func NewPhotosController(cache *photo.Cache, service *contacts.Service) *PhotosController {
	return &PhotosController{
		cache:    cache,
		contacts: service,
	}
}

// GetPhoto handles GET /api/contacts/:id/photo
// Serves the cached photo file for a contact, fetching it on first access.
// Contacts with embedded data-URL photos have no cacheable file; clients
// render those from the contact record directly.
func (pc *PhotosController) GetPhoto(c *gin.Context) {
	contact, err := pc.contacts.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			respondNotFound(c, "contact")
			return
		}
		respondInternalError(c, err, "get contact photo")
		return
	}

	path, err := pc.cache.GetPhoto(contact.ID, contact.PhotoURL)
	if err != nil {
		respondError(c, http.StatusBadGateway, "failed to fetch photo")
		return
	}
	if path == "" {
		respondNotFound(c, "photo")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
