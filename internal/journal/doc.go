// Package journal provides a SQLite-backed record of filter runs.
//
// Each row captures what went in, what came out and where the pause landed:
//   - settings (as JSON, message unnormalized) and their digest
//   - input and output stream digests
//   - insertion location and the number of layers scanned
//
// # Ordering
//
// Rows carry a monotonically increasing seq assigned at write time. All
// queries order by seq ASC, id ASC COLLATE BINARY so listings are stable.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Digests are computed by package digest.
package journal
