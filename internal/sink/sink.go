// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sink writes extracted records to their destination. Three
// interchangeable modes exist: JSON Lines appended to a file, an in-memory
// table, and a SQLite database.
package sink

import (
	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

// Sink consumes records one at a time. Implementations are exclusively
// owned by the extraction loop; none are safe for concurrent use.
type Sink interface {
	// Write appends one record.
	Write(rec dblp.Record) error
	// Close flushes buffered output and releases the destination.
	Close() error
}
