package parsers

import (
	"strings"

	"github.com/cognicard/cognicard/internal/entities"
)

// ParseCSV parses CSV text whose first row is a header. Header names are
// matched case-insensitively after trimming; a few documented synonyms are
// accepted for the phone columns. Rows are split on bare commas (see the
// package comment for the quoting limitation). Rows without a name are
// reported as row errors indexed by their physical line number and the
// remaining rows keep parsing.
func ParseCSV(text string) entities.ParseOutcome {
	outcome := entities.ParseOutcome{
		Contacts: []entities.PartialContact{},
		Errors:   []entities.ParseError{},
	}

	lines := splitLines(strings.TrimSpace(text))
	if len(lines) < 2 {
		if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
			outcome.Errors = append(outcome.Errors, entities.ParseError{
				Message:  "CSV file must contain a header row and at least one data row.",
				RowIndex: 0,
			})
		}
		return outcome
	}

	headers := make([]string, 0)
	for _, h := range strings.Split(lines[0], ",") {
		headers = append(headers, strings.ToLower(strings.TrimSpace(h)))
	}

	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := rowFields(headers, strings.Split(line, ","))
		contact := contactFromFields(fields)

		if contact.Name == "" {
			outcome.Errors = append(outcome.Errors, entities.ParseError{
				Message:  "Row does not contain a 'name' or the name is empty.",
				RowIndex: i + 1,
			})
			continue
		}
		outcome.Contacts = append(outcome.Contacts, contact)
	}

	return outcome
}

// rowFields maps header names to trimmed cell values. Cells beyond the
// header count are ignored; empty cells are left out of the map so lookups
// fall back to the zero value.
func rowFields(headers, values []string) map[string]string {
	fields := make(map[string]string, len(headers))
	for idx, header := range headers {
		if idx < len(values) && values[idx] != "" {
			fields[header] = strings.TrimSpace(values[idx])
		}
	}
	return fields
}

func contactFromFields(fields map[string]string) entities.PartialContact {
	contact := NewPartialContact()

	contact.Name = fields["name"]
	contact.Email = fields["email"]
	contact.PhoneWork = firstOf(fields, "phonework", "phone work")
	contact.PhoneMobile = firstOf(fields, "phonemobile", "phone mobile")
	contact.Company = fields["company"]
	contact.Title = fields["title"]
	contact.Address = fields["address"]
	contact.Website = fields["website"]
	contact.Notes = fields["notes"]

	// A groups cell that is empty after trimming counts as absent, not as
	// one empty group.
	if groups := fields["groups"]; groups != "" {
		contact.Groups = splitTrim(groups, ";")
	}

	return contact
}

func firstOf(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key]; ok && v != "" {
			return v
		}
	}
	return ""
}
