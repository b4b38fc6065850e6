package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cognicard/cognicard/internal/ai"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/entities"
	"github.com/cognicard/cognicard/internal/importer"
)

type fakeExtractor struct {
	contact entities.PartialContact
	scan    ai.AddressScan
	err     error
}

func (f *fakeExtractor) ExtractFromText(ctx context.Context, text string) (entities.PartialContact, error) {
	return f.contact, f.err
}

func (f *fakeExtractor) ExtractFromImage(ctx context.Context, image []byte, mimeType string) (entities.PartialContact, error) {
	return f.contact, f.err
}

func (f *fakeExtractor) ScanAddress(ctx context.Context, image []byte, mimeType string) (ai.AddressScan, error) {
	return f.scan, f.err
}

type fakeResearcher struct {
	intel ai.Intel
	err   error
}

func (f *fakeResearcher) Research(ctx context.Context, name, company string) (ai.Intel, error) {
	return f.intel, f.err
}

func setupAIRouter(t *testing.T, extractor ai.Extractor, researcher ai.Researcher) (*gin.Engine, *contacts.Service) {
	t.Helper()
	service := contacts.NewService(&memStore{})
	router := NewRouter(RouterConfig{
		Contacts:   service,
		Importer:   importer.New(service, extractor),
		Extractor:  extractor,
		Researcher: researcher,
	})
	return router, service
}

func uploadImage(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "card.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestScanCard(t *testing.T) {
	extractor := &fakeExtractor{contact: entities.PartialContact{
		Name:    "Jane Cooper",
		Company: "Acme",
	}}
	router, _ := setupAIRouter(t, extractor, nil)

	rr := uploadImage(t, router, "/api/ai/scan-card")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Contact entities.PartialContact `json:"contact"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Contact.Name != "Jane Cooper" {
		t.Errorf("name = %q, want Jane Cooper", body.Contact.Name)
	}
}

func TestScanCard_MissingImage(t *testing.T) {
	router, _ := setupAIRouter(t, &fakeExtractor{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/scan-card", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestScanCard_ExtractorError(t *testing.T) {
	router, _ := setupAIRouter(t, &fakeExtractor{err: errors.New("model unavailable")}, nil)

	rr := uploadImage(t, router, "/api/ai/scan-card")
	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rr.Code)
	}
}

func TestExtractText(t *testing.T) {
	extractor := &fakeExtractor{contact: entities.PartialContact{Name: "John Smith"}}
	router, _ := setupAIRouter(t, extractor, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/ai/extract-text", ExtractTextRequest{
		Text: "John Smith\nCTO, Initech\njohn@initech.com",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestExtractText_EmptyText(t *testing.T) {
	router, _ := setupAIRouter(t, &fakeExtractor{}, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/ai/extract-text", ExtractTextRequest{Text: "   "})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestScanAddress(t *testing.T) {
	extractor := &fakeExtractor{scan: ai.AddressScan{
		Address:    "12 Main St, Springfield, IL",
		Confidence: 0.92,
	}}
	router, _ := setupAIRouter(t, extractor, nil)

	rr := uploadImage(t, router, "/api/ai/scan-address")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var scan ai.AddressScan
	if err := json.Unmarshal(rr.Body.Bytes(), &scan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if scan.Address != "12 Main St, Springfield, IL" {
		t.Errorf("address = %q", scan.Address)
	}
}

func TestResearchContact(t *testing.T) {
	researcher := &fakeResearcher{intel: ai.Intel{
		Summary: "Jane Cooper leads engineering at Acme.",
		Sources: []ai.Source{{URI: "https://example.com", Title: "Acme team"}},
	}}
	router, service := setupAIRouter(t, &fakeExtractor{}, researcher)
	saved := saveContact(t, service, "Jane Cooper")

	rr := doJSON(t, router, http.MethodPost, "/api/contacts/"+saved.ID+"/research", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}

	var intel ai.Intel
	if err := json.Unmarshal(rr.Body.Bytes(), &intel); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(intel.Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(intel.Sources))
	}
}

func TestResearchContact_UnknownContact(t *testing.T) {
	router, _ := setupAIRouter(t, &fakeExtractor{}, &fakeResearcher{})

	rr := doJSON(t, router, http.MethodPost, "/api/contacts/no-such-id/research", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
