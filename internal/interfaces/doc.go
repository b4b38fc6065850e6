// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// The application uses several categories of interfaces:
//
// ## Data Access Interfaces
//
//   - contacts.Store: Whole-set contact persistence (internal/contacts/service.go)
//
// ## External Service Interfaces
//
//   - ai.Extractor: Contact extraction from images and text (internal/ai/ai.go)
//   - ai.Researcher: Web-grounded contact research (internal/ai/ai.go)
//
// ## Task Queue Interfaces
//
//   - tasks.ContactLister: Contact set for fan-out tasks (internal/tasks/refresh_all.go)
//   - tasks.TaskEnqueuer: Follow-up task enqueueing (internal/tasks/refresh_all.go)
//   - tasks.AuditEventCleaner: Audit retention cleanup (internal/tasks/cleanup_audit.go)
//
// # Adding a New Import Format
//
// To add support for a new contact file format:
//
//  1. Create a parser in internal/parsers/ returning entities.ParseOutcome.
//     Collect per-row failures as entities.ParseError values rather than
//     aborting the batch.
//
//  2. Register the file extension in the dispatch switch of
//     internal/importer.Parse.
//
// # Adding a New AI Provider
//
// To back the extraction and research capabilities with a different model
// provider:
//
//  1. Implement ai.Extractor and ai.Researcher in internal/ai/
//
//     var _ ai.Extractor = (*MyClient)(nil)
//     var _ ai.Researcher = (*MyClient)(nil)
//
//  2. Construct it in internal/entrypoint and pass it through RouterConfig.
//
// # Adding a New Database Domain
//
// To add a new data domain:
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check in checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
