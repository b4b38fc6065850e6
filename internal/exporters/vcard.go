// Package exporters renders stored contacts into downloadable formats:
// single vCard 4.0 files, a CSV of the whole set, and a zip archive of one
// vCard per contact.
package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognicard/cognicard/internal/entities"
)

// revNow stamps the REV property. Overridable in tests.
var revNow = time.Now

// GenerateVCard renders one contact as a vCard 4.0 string. Only populated
// fields are emitted; FN and REV are always present. Commas inside the
// address are rewritten to semicolons since the value lands in the
// structured street component.
func GenerateVCard(contact entities.Contact) string {
	parts := []string{
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:" + contact.Name,
	}

	if contact.Company != "" {
		parts = append(parts, "ORG:"+contact.Company)
	}
	if contact.Title != "" {
		parts = append(parts, "TITLE:"+contact.Title)
	}
	if contact.Email != "" {
		parts = append(parts, "EMAIL:"+contact.Email)
	}
	if contact.PhoneWork != "" {
		parts = append(parts, "TEL;TYPE=work,voice:"+contact.PhoneWork)
	}
	if contact.PhoneMobile != "" {
		parts = append(parts, "TEL;TYPE=cell,voice:"+contact.PhoneMobile)
	}
	if contact.Address != "" {
		parts = append(parts, "ADR;TYPE=WORK:;;"+strings.ReplaceAll(contact.Address, ",", ";"))
	}
	if contact.Website != "" {
		parts = append(parts, "URL:"+contact.Website)
	}
	if contact.Notes != "" {
		parts = append(parts, "NOTE:"+contact.Notes)
	}
	if len(contact.Groups) > 0 {
		parts = append(parts, "CATEGORIES:"+strings.Join(contact.Groups, ","))
	}

	parts = append(parts,
		"REV:"+revNow().UTC().Format("2006-01-02T15:04:05.000Z"),
		"END:VCARD",
	)

	return strings.Join(parts, "\n")
}

// VCardFilename builds the download filename for a contact's vCard: the
// name lowercased with every non-alphanumeric character replaced by an
// underscore.
func VCardFilename(contact entities.Contact) string {
	var b strings.Builder
	for _, r := range contact.Name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune('_')
		}
	}
	return fmt.Sprintf("%s.vcf", b.String())
}
