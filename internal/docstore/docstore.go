// Package docstore is the single-slot document store behind the scrape and
// import pipelines. Each key holds one JSON document; writes are whole-document
// overwrites with last-write-wins semantics — no locking, no versioning, no
// history. That is a deliberate property of the pipeline, not an accident of
// the backing implementation.
package docstore

import "context"

// Store reads and replaces whole JSON documents by key.
type Store interface {
	// Get returns the raw document for key, with ok=false when the key has
	// never been written.
	Get(ctx context.Context, key string) (doc []byte, ok bool, err error)

	// Put replaces the document for key in full.
	Put(ctx context.Context, key string, doc []byte) error
}
