package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cognicard/cognicard/internal/config"
	"github.com/cognicard/cognicard/internal/contacts"
	"github.com/cognicard/cognicard/internal/database"
	contactsrepo "github.com/cognicard/cognicard/internal/database/contacts"
	"github.com/cognicard/cognicard/internal/importer"
)

// ImportCommand handles importing contacts from a vCard or CSV file.
type ImportCommand struct {
	FilePath     string
	DatabasePath string
	Verbose      bool
	DryRun       bool
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a .vcf or .csv contact file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file for storing imported contacts")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import contacts from a vCard (.vcf) or CSV (.csv) file to a local database.\n\n")
		fmt.Fprintf(os.Stderr, "Rows that cannot be parsed are reported individually and skipped; the\n")
		fmt.Fprintf(os.Stderr, "remaining contacts are imported.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import a vCard export from another contact manager:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file contacts.vcf\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be imported:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file contacts.csv -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	fmt.Println("Contact Import")
	fmt.Println("==============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	if _, err := os.Stat(cmd.FilePath); os.IsNotExist(err) {
		return fmt.Errorf("contact file not found: %s", cmd.FilePath)
	}

	fmt.Printf("File: %s\n", cmd.FilePath)

	content, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read contact file: %w", err)
	}

	// Parse without a store first so the preview works in dry-run mode too.
	fmt.Println("\nParsing contacts...")

	preview := importer.New(nil, nil).Parse(context.Background(), filepath.Base(cmd.FilePath), string(content))

	fmt.Printf("Found %d contacts, %d rows with errors\n", len(preview.Contacts), len(preview.Errors))

	if cmd.Verbose && len(preview.Contacts) > 0 {
		fmt.Println("\n=== Contacts Found ===")
		for i, contact := range preview.Contacts {
			companyStr := contact.Company
			if companyStr == "" {
				companyStr = "(no company)"
			}
			fmt.Printf("%d. %s - %s\n", i+1, contact.Name, companyStr)
		}
	}

	if len(preview.Errors) > 0 {
		fmt.Println("\n=== Rows Skipped ===")
		for _, parseErr := range preview.Errors {
			fmt.Printf("  [ROW %d] %s\n", parseErr.RowIndex, parseErr.Message)
		}
	}

	if len(preview.Contacts) == 0 {
		fmt.Println("\nNo importable contacts found")
		return nil
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("\nSaving to database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	service := contacts.NewService(contactsrepo.NewRepository(db.DB))

	saved, err := service.SaveMany(preview.Contacts)
	if err != nil {
		return fmt.Errorf("failed to import contacts: %w", err)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Contacts imported: %d\n", len(saved))
	if len(preview.Errors) > 0 {
		fmt.Printf("Rows skipped: %d\n", len(preview.Errors))
	}

	fmt.Println("\nImport complete!")
	return nil
}
