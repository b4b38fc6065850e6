package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cognicard/cognicard/internal/config"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/database"
	contactsrepo "github.com/cognicard/cognicard/internal/database/contacts"
	"github.com/cognicard/cognicard/internal/entities"
	"github.com/cognicard/cognicard/internal/exporters"
)

// ExportCSVCommand handles exporting all contacts to a CSV file.
type ExportCSVCommand struct {
	DatabasePath string
	OutputPath   string
}

func NewExportCSVCommand() *ExportCSVCommand {
	return &ExportCSVCommand{}
}

func (cmd *ExportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.OutputPath, "output", "contacts.csv", "Output path for the CSV file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-csv [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export all stored contacts to a CSV file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCSVCommand) Run() error {
	stored, err := loadContacts(cmd.DatabasePath)
	if err != nil {
		return err
	}

	csv := exporters.GenerateCSV(stored)
	if err := os.WriteFile(cmd.OutputPath, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	fmt.Printf("Exported %d contacts to %s\n", len(stored), cmd.OutputPath)
	return nil
}

// ExportVCFCommand handles exporting all contacts as vCard files in a zip
// archive.
type ExportVCFCommand struct {
	DatabasePath string
	OutputPath   string
}

func NewExportVCFCommand() *ExportVCFCommand {
	return &ExportVCFCommand{}
}

func (cmd *ExportVCFCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-vcf", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.OutputPath, "output", "contacts.zip", "Output path for the zip archive of vCard files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-vcf [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export all stored contacts as vCard 4.0 files in a zip archive.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportVCFCommand) Run() error {
	stored, err := loadContacts(cmd.DatabasePath)
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("No contacts to export")
		return nil
	}

	archive, err := exporters.ArchiveVCards(stored)
	if err != nil {
		return fmt.Errorf("failed to build vCard archive: %w", err)
	}
	if err := os.WriteFile(cmd.OutputPath, archive, 0o644); err != nil {
		return fmt.Errorf("failed to write zip archive: %w", err)
	}

	fmt.Printf("Exported %d contacts to %s\n", len(stored), cmd.OutputPath)
	return nil
}

func loadContacts(dbPath string) ([]entities.Contact, error) {
	absDBPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	if _, err := os.Stat(absDBPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s", absDBPath)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	service := contacts.NewService(contactsrepo.NewRepository(db.DB))
	return service.List()
}
