// Package importer orchestrates file imports. Importing is a two-step
// exchange: Parse turns an uploaded file into a preview of contacts and
// per-row errors without touching the store, and Commit persists a
// confirmed batch. Nothing is written until the caller commits.
package importer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cognicard/cognicard/internal/ai"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/entities"
	"github.com/cognicard/cognicard/internal/parsers"
)

const errInvalidFileType = "Invalid file type. Please upload a .vcf or .csv file."

// Importer dispatches uploaded files to the right parser and commits
// confirmed batches through the contact service.
type Importer struct {
	contacts  *contacts.Service
	extractor ai.Extractor
}

// New builds an Importer. The extractor may be nil when AI features are not
// configured; .txt uploads are then rejected as an unsupported type.
func New(contactService *contacts.Service, extractor ai.Extractor) *Importer {
	return &Importer{
		contacts:  contactService,
		extractor: extractor,
	}
}

// Parse produces an import preview from an uploaded file. The parser is
// chosen by file extension, case-insensitively. Unknown extensions yield a
// file-level error rather than a Go error: a bad upload is an expected
// outcome, not a failure of the importer.
func (im *Importer) Parse(ctx context.Context, filename, text string) entities.ParseOutcome {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".vcf", ".vcard":
		return parsers.ParseVCF(text)
	case ".csv":
		return parsers.ParseCSV(text)
	case ".txt":
		return im.parseText(ctx, text)
	default:
		return entities.ParseOutcome{
			Contacts: []entities.PartialContact{},
			Errors: []entities.ParseError{
				{Message: errInvalidFileType, RowIndex: 0},
			},
		}
	}
}

// Commit persists a confirmed batch of parsed contacts.
func (im *Importer) Commit(partials []entities.PartialContact) ([]entities.Contact, error) {
	return im.contacts.SaveMany(partials)
}

// parseText hands free-form text to the AI extractor. A text file yields at
// most one contact.
func (im *Importer) parseText(ctx context.Context, text string) entities.ParseOutcome {
	if im.extractor == nil {
		return entities.ParseOutcome{
			Contacts: []entities.PartialContact{},
			Errors: []entities.ParseError{
				{Message: errInvalidFileType, RowIndex: 0},
			},
		}
	}

	partial, err := im.extractor.ExtractFromText(ctx, text)
	if err != nil {
		return entities.ParseOutcome{
			Contacts: []entities.PartialContact{},
			Errors: []entities.ParseError{
				{Message: "Failed to analyze the text. Please try again or enter the details manually.", RowIndex: 0},
			},
		}
	}

	if strings.TrimSpace(partial.Name) == "" {
		return entities.ParseOutcome{
			Contacts: []entities.PartialContact{},
			Errors: []entities.ParseError{
				{Message: "No contact name could be extracted from the text.", RowIndex: 1},
			},
		}
	}

	return entities.ParseOutcome{
		Contacts: []entities.PartialContact{partial},
		Errors:   []entities.ParseError{},
	}
}
