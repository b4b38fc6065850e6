package parsers

import (
	"fmt"
	"strings"

	"github.com/cognicard/cognicard/internal/entities"
)

const vcardBeginMarker = "BEGIN:VCARD"

// ErrNoName is reported for a vCard entry without an FN property.
var errVCardNoName = fmt.Errorf("VCF entry does not contain a name (FN field)")

// ParseVCF parses a VCF document that may contain multiple
// BEGIN:VCARD...END:VCARD entries. Entries that cannot be parsed are
// reported in the outcome's error list with their 1-based entry index; a
// bad entry never aborts the batch.
func ParseVCF(text string) entities.ParseOutcome {
	outcome := entities.ParseOutcome{
		Contacts: []entities.PartialContact{},
		Errors:   []entities.ParseError{},
	}

	blocks := strings.Split(text, vcardBeginMarker)[1:]

	if len(blocks) == 0 {
		if strings.TrimSpace(text) != "" {
			outcome.Errors = append(outcome.Errors, entities.ParseError{
				Message:  "File does not appear to be a valid VCF.",
				RowIndex: 0,
			})
		}
		return outcome
	}

	for i, block := range blocks {
		contact, err := parseVCardEntry(vcardBeginMarker + "\n" + block)
		if err != nil {
			outcome.Errors = append(outcome.Errors, entities.ParseError{
				Message:  err.Error() + ".",
				RowIndex: i + 1,
			})
			continue
		}
		outcome.Contacts = append(outcome.Contacts, contact)
	}

	return outcome
}

// parseVCardEntry extracts contact fields from a single vCard block using
// prefix and substring matching. This intentionally mirrors the loose
// matching of the import dialog it replaced rather than implementing RFC
// 6350: real-world VCF exports are too inconsistent for strict parsing.
func parseVCardEntry(block string) (entities.PartialContact, error) {
	contact := NewPartialContact()

	for _, line := range splitLines(block) {
		switch {
		case strings.HasPrefix(line, "FN:"):
			contact.Name = strings.TrimSpace(line[3:])
		case strings.HasPrefix(line, "FN;"):
			// Handles parameterised forms like FN;CHARSET=UTF-8:
			contact.Name = afterColon(line)
		case strings.Contains(line, "EMAIL"):
			contact.Email = afterColon(line)
		case strings.Contains(line, "TEL;"):
			value := afterColon(line)
			switch {
			case strings.Contains(line, "TYPE=work") || strings.Contains(line, "TYPE=office"):
				contact.PhoneWork = value
			case strings.Contains(line, "TYPE=cell") || strings.Contains(line, "TYPE=mobile"):
				contact.PhoneMobile = value
			case contact.PhoneWork == "":
				// Untyped TEL lines fill the work slot only while it is
				// empty; a second untyped line is dropped. Preserved as-is.
				contact.PhoneWork = value
			}
		case strings.HasPrefix(line, "ORG:"):
			contact.Company = strings.TrimSpace(line[4:])
		case strings.HasPrefix(line, "TITLE:"):
			contact.Title = strings.TrimSpace(line[6:])
		case strings.HasPrefix(line, "URL:"):
			contact.Website = strings.TrimSpace(line[4:])
		case strings.HasPrefix(line, "NOTE:"):
			contact.Notes = strings.TrimSpace(line[5:])
		case strings.HasPrefix(line, "ADR;"):
			contact.Address = parseStructuredAddress(afterColon(line))
		case strings.HasPrefix(line, "CATEGORIES:"):
			contact.Groups = splitTrim(line[len("CATEGORIES:"):], ",")
		}
	}

	if contact.Name == "" {
		return entities.PartialContact{}, errVCardNoName
	}

	return contact, nil
}

// parseStructuredAddress flattens a structured ADR value. The first two
// components (post office box, extended address) are dropped; the remaining
// non-empty components are joined into one free-text address.
func parseStructuredAddress(value string) string {
	parts := splitTrim(value, ";")
	if len(parts) <= 2 {
		return ""
	}

	kept := make([]string, 0, len(parts)-2)
	for _, p := range parts[2:] {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
