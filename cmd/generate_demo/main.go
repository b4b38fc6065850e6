// Command generate_demo creates a demo database with sample contacts.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/database"
	contactsrepo "github.com/cognicard/cognicard/internal/database/contacts"
	"github.com/cognicard/cognicard/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	// Create database at demo path
	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	service := contacts.NewService(contactsrepo.NewRepository(db.DB))

	// Saving through the service assigns IDs, timestamps, and photo URLs the
	// same way the import flow does.
	for _, contact := range demoContacts() {
		saved, err := service.Save(contact)
		if err != nil {
			log.Printf("Failed to save contact %s: %v", contact.Name, err)
			continue
		}
		log.Printf("Saved: %s (%s)", saved.Name, saved.Company)
	}

	log.Println("Demo database generated successfully!")
}

func demoContacts() []entities.Contact {
	return []entities.Contact{
		{
			Name:      "Jane Cooper",
			Email:     "jane.cooper@acme.com",
			PhoneWork: "+1 555 0101",
			Company:   "Acme Corporation",
			Title:     "VP of Engineering",
			Website:   "https://acme.com",
			Address:   "100 Market St, San Francisco, CA",
			Groups:    entities.StringList{"Work", "Conferences"},
			Notes:     "Met at GopherCon 2025. Interested in the import pipeline.",
		},
		{
			Name:      "John Smith",
			Email:     "john@initech.io",
			PhoneWork: "+1 555 0102",
			Company:   "Initech",
			Title:     "CTO",
			Website:   "https://initech.io",
			Groups:    entities.StringList{"Work"},
		},
		{
			Name:      "Maria Garcia",
			Email:     "maria.garcia@globex.org",
			PhoneWork: "+34 600 000 103",
			Company:   "Globex",
			Title:     "Head of Product",
			Address:   "Calle Mayor 12, Madrid",
			Groups:    entities.StringList{"Work", "Partners"},
			Notes:     "Prefers email over phone.",
		},
		{
			Name:        "Chen Wei",
			Email:       "chen.wei@example.com",
			PhoneMobile: "+86 10 5550 0104",
			Groups:      entities.StringList{"Friends"},
		},
		{
			Name:    "Amara Okafor",
			Email:   "amara@soylent.dev",
			Company: "Soylent Labs",
			Title:   "Research Lead",
			Website: "https://soylent.dev",
			Groups:  entities.StringList{"Conferences"},
			Notes:   "Gave the keynote on edge caching.",
		},
		{
			Name:        "Lucas Moreau",
			PhoneMobile: "+33 1 5550 0106",
			Notes:       "Neighbor, feeds the cat when we travel.",
		},
		{
			Name:      "Priya Sharma",
			Email:     "priya.sharma@umbrella.co",
			PhoneWork: "+91 98 5550 0107",
			Company:   "Umbrella Co",
			Title:     "Account Manager",
			Groups:    entities.StringList{"Work", "Partners"},
		},
		{
			Name:   "Tomás Rivera",
			Email:  "tomas@rivera.family",
			Groups: entities.StringList{"Family"},
		},
	}
}
