// Package parsers turns raw import file text into contact records.
//
// Both parsers are line-oriented and deliberately forgiving: a malformed
// entry or row is reported as a ParseError with its 1-based index and the
// rest of the batch continues. Only a document that cannot be recognised at
// all produces a file-level error (RowIndex 0) and an empty contact list.
//
// The CSV parser splits on bare commas and is NOT quote-aware. Files with
// commas inside quoted fields will produce misaligned columns. This is a
// known, accepted limitation of the import path; the CSV exporter in
// internal/exporters still writes fully escaped output.
package parsers
