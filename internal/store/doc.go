// Package store persists grievance collections.
//
// Two backends implement the same Store interface:
//
//   - FileStore: a single pretty-printed JSON array on disk. Every
//     operation is a full load → mutate → save cycle. This is the
//     default backend and the on-disk format is a compatibility
//     contract.
//   - SQLiteStore: the same operations over a SQLite database, for
//     installations that outgrow the flat file.
//
// # Behavioral contracts
//
//   - Ids are assigned as max(existing)+1 at mutation time, never from a
//     persisted counter. Two processes mutating the same backing file can
//     race and lose updates (last writer wins); no locking is attempted.
//     The tool assumes a single user and a single process.
//   - Malformed persisted content loads as an empty collection. The
//     condition is reported as a *MalformedStorageError through the
//     store's logger, never as an operation failure.
//   - Status only ever transitions open → resolved. Resolve is
//     idempotent. Vote counters only increment.
//   - No operation partially applies: a mutation is either fully
//     persisted or not persisted at all.
package store
