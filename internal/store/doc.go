// Package store provides a SQLite-backed cache of compiled query templates.
//
// A compiled query is split the way a prepared statement is:
//   - Templates: the compiled text, keyed by its fingerprint, plus the
//     ordered label names it expects
//   - Binding sets: one row per execution, holding the values bound to a
//     template's labels
//
// Template ids are content addressed (dialect + text), so storing the same
// compilation twice is a no-op. Binding-set ids come from an injected
// generator and default to UUIDv7.
//
// # Ordering
//
// Every row carries a seq INTEGER from a logical clock. List queries order
// by seq ASC, id ASC COLLATE BINARY so results are identical across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
