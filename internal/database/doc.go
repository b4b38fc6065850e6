// Package database provides the data access layer for the application.
//
// The layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── contacts/        # The contact store: ReadAll / WriteAll plus lookups
//	└── audit/           # Append-only audit event log
//
// The contacts repository deliberately exposes a whole-set read/write
// surface: every mutation in the pipeline reads the full contact set,
// transforms it in memory, and writes the full set back. There is no
// partial update path and no cross-process locking; concurrent writers can
// overwrite each other's last write.
package database
