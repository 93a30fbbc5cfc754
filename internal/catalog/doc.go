// Package catalog provides durable storage for validated model documents.
//
// The catalog is a CLI-layer collaborator around the pure assembly core: only
// documents that passed validation are admitted, keyed by their canonical
// content hash, with a per-shape index for inspection queries. Uses SQLite
// with WAL mode for concurrent read access.
package catalog
