// Package repository defines the record source abstraction for paxflow.
//
// A Source yields already-parsed ActivityRecords; the analysis core never
// touches files or databases itself.
//
// # Implementations
//
// The csvfile subpackage reads a delimited export with a header row, mapping
// configured column names (or the SFO "Air Traffic Passenger Statistics"
// header aliases) to record fields.
//
// The sqlite subpackage reads the same four columns from a table in a SQLite
// database and can stage records into that table from another source.
//
// # Activity Types
//
// Sources classify raw activity labels with domain.ParseActivityType and pass
// unknown kinds through unchanged. Filtering is left to the consumers.
package repository
