// Package ai defines the model-backed collaborators the rest of the
// application talks to: contact extraction from text and images, address
// scanning, and web-grounded contact research. Implementations are opaque;
// callers only see typed results and errors.
package ai

import (
	"context"
	"errors"

	"github.com/cognicard/cognicard/internal/entities"
)

var (
	ErrEmptyResponse = errors.New("model returned an empty response")
	ErrNotConfigured = errors.New("AI features are not configured")
)

// Source is a single grounding reference backing a research summary.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Intel is the research report for a contact: a plain-text summary plus the
// web sources that grounded it, deduplicated by URI.
type Intel struct {
	Summary string   `json:"summary"`
	Sources []Source `json:"sources"`
}

// AddressScan is the result of reading an address out of an image.
// Confidence is the model's own estimate in [0, 1].
type AddressScan struct {
	Address    string  `json:"address"`
	Confidence float64 `json:"confidence"`
	Notes      string  `json:"notes"`
}

// Extractor pulls structured contact fields out of unstructured input.
type Extractor interface {
	// ExtractFromText reads contact fields out of free-form text, such as
	// an email signature or a plain text file.
	ExtractFromText(ctx context.Context, text string) (entities.PartialContact, error)

	// ExtractFromImage reads contact fields off a business card photo.
	ExtractFromImage(ctx context.Context, image []byte, mimeType string) (entities.PartialContact, error)

	// ScanAddress reads a mailing address out of an image of an envelope,
	// sign, card, or document.
	ScanAddress(ctx context.Context, image []byte, mimeType string) (AddressScan, error)
}

// Researcher produces a web-grounded intelligence summary for a contact.
type Researcher interface {
	Research(ctx context.Context, name, company string) (Intel, error)
}
