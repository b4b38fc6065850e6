package exporters

import (
	"strings"

	"github.com/cognicard/cognicard/internal/entities"
)

// csvHeader fixes the export column order. It mirrors the contact's JSON
// field names so an exported file round-trips through the CSV importer.
var csvHeader = []string{
	"id", "name", "email", "phoneWork", "phoneMobile", "company",
	"title", "address", "website", "notes", "groups",
	"createdAt", "updatedAt",
}

// GenerateCSV renders the full contact set as CSV. Group labels are joined
// with semicolons inside their cell; fields containing a comma, newline, or
// double quote are quoted with internal quotes doubled.
func GenerateCSV(contacts []entities.Contact) string {
	rows := make([]string, 0, len(contacts)+1)
	rows = append(rows, strings.Join(csvHeader, ","))

	for _, c := range contacts {
		fields := []string{
			c.ID, c.Name, c.Email, c.PhoneWork, c.PhoneMobile, c.Company,
			c.Title, c.Address, c.Website, c.Notes,
			strings.Join(c.Groups, ";"),
			c.CreatedAt, c.UpdatedAt,
		}
		escaped := make([]string, len(fields))
		for i, f := range fields {
			escaped[i] = escapeCSVField(f)
		}
		rows = append(rows, strings.Join(escaped, ","))
	}

	return strings.Join(rows, "\n")
}

func escapeCSVField(field string) string {
	if strings.ContainsAny(field, ",\n\"") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}
