// Package journal records executed operations in a SQLite database.
//
// Every devflow invocation gets a ULID run id. The [Recorder] observes the
// engine and writes one [Entry] per operation, including nested steps of
// custom commands. `devflow history` reads the entries back with
// [Store.List].
package journal
