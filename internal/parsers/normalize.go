package parsers

import (
	"regexp"
	"strings"

	"github.com/cognicard/cognicard/internal/entities"
)

var lineBreakPattern = regexp.MustCompile(`\r\n|\r|\n`)

// NewPartialContact returns a contact record with every field defined:
// strings empty, Groups an empty (non-nil) slice. Parsers and extractors
// start from this so downstream code never sees a missing field.
func NewPartialContact() entities.PartialContact {
	return entities.PartialContact{Groups: []string{}}
}

// Normalize fills in any undefined state on a partial contact. Currently
// the only repair needed is a nil Groups slice, which appears when a record
// was decoded from JSON that omitted the field.
func Normalize(p entities.PartialContact) entities.PartialContact {
	if p.Groups == nil {
		p.Groups = []string{}
	}
	return p
}

// splitLines splits on any of the three line break conventions.
func splitLines(text string) []string {
	return lineBreakPattern.Split(text, -1)
}

// splitTrim splits s on sep and trims each piece. Empty pieces are kept:
// filtering, where required, happens at the save boundary.
func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// afterColon returns the text after the first colon, trimmed. vCard
// property values may themselves contain colons (URLs), so only the first
// one delimits.
func afterColon(line string) string {
	idx := strings.Index(line, ":")
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}
