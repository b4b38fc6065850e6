package exporters

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/cognicard/cognicard/internal/entities"
)

// ArchiveVCards builds an in-memory zip with one vCard file per contact
// under a contacts/ folder. Colliding filenames get a numeric suffix so no
// entry silently overwrites another.
func ArchiveVCards(contacts []entities.Contact) ([]byte, error) {
	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)

	used := make(map[string]int)
	for _, contact := range contacts {
		name := VCardFilename(contact)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d.vcf", name[:len(name)-len(".vcf")], n)
		}

		writer, err := zipWriter.Create("contacts/" + name)
		if err != nil {
			return nil, fmt.Errorf("add %s to archive: %w", name, err)
		}
		if _, err := writer.Write([]byte(GenerateVCard(contact))); err != nil {
			return nil, fmt.Errorf("write %s to archive: %w", name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
