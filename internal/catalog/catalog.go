package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/castlebridge/smithyast/internal/ast"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a document hash is not in the catalog.
var ErrNotFound = errors.New("document not found")

// Catalog is a SQLite-backed store of validated model documents.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens a catalog database at the given path. Applies
// required pragmas and the schema automatically; safe to call repeatedly.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; keep a single connection to
	// avoid SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// DocumentRecord describes one imported document.
type DocumentRecord struct {
	Hash          string `json:"hash"`
	SmithyVersion string `json:"smithy_version"`
	Source        string `json:"source"`
	ImportID      string `json:"import_id"`
	ShapeCount    int    `json:"shape_count"`
}

// ShapeRecord describes one shape of an imported document.
type ShapeRecord struct {
	ShapeID     string `json:"shape_id"`
	ShapeType   string `json:"shape_type"`
	MemberCount int    `json:"member_count"`
}

// newImportID generates an identifier for one import operation. UUIDv7 is
// time-ordered, so import IDs sort chronologically.
func newImportID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Put stores a validated document and its shape index. Import is idempotent
// on content hash: re-importing an identical document returns the existing
// record unchanged.
func (c *Catalog) Put(ctx context.Context, doc *ast.Document, source string) (DocumentRecord, error) {
	hash, err := ast.DocumentHash(doc)
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("put document: %w", err)
	}

	if existing, err := c.Get(ctx, hash); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return DocumentRecord{}, err
	}

	rec := DocumentRecord{
		Hash:          hash,
		SmithyVersion: doc.Smithy,
		Source:        source,
		ImportID:      newImportID(),
		ShapeCount:    len(doc.Shapes),
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("put document: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (hash, smithy_version, source, import_id, shape_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, rec.Hash, rec.SmithyVersion, rec.Source, rec.ImportID, rec.ShapeCount)
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("put document: %w", err)
	}

	for _, id := range doc.ShapeIDs() {
		shape := doc.Shapes[id]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO shapes (document_hash, shape_id, shape_type, member_count)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(document_hash, shape_id) DO NOTHING
		`, rec.Hash, string(id), string(shape.Type()), shapeMemberCount(shape))
		if err != nil {
			return DocumentRecord{}, fmt.Errorf("put shape %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return DocumentRecord{}, fmt.Errorf("put document: %w", err)
	}
	return rec, nil
}

// Get returns the record for a document hash.
func (c *Catalog) Get(ctx context.Context, hash string) (DocumentRecord, error) {
	var rec DocumentRecord
	err := c.db.QueryRowContext(ctx, `
		SELECT hash, smithy_version, source, import_id, shape_count
		FROM documents WHERE hash = ?
	`, hash).Scan(&rec.Hash, &rec.SmithyVersion, &rec.Source, &rec.ImportID, &rec.ShapeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("get document: %w", err)
	}
	return rec, nil
}

// Documents lists every imported document, newest first.
func (c *Catalog) Documents(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT hash, smithy_version, source, import_id, shape_count
		FROM documents ORDER BY imported_at DESC, hash
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var recs []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		if err := rows.Scan(&rec.Hash, &rec.SmithyVersion, &rec.Source, &rec.ImportID, &rec.ShapeCount); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Shapes lists the shape index of one document in ID order.
func (c *Catalog) Shapes(ctx context.Context, hash string) ([]ShapeRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT shape_id, shape_type, member_count
		FROM shapes WHERE document_hash = ? ORDER BY shape_id
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("list shapes: %w", err)
	}
	defer rows.Close()

	var recs []ShapeRecord
	for rows.Next() {
		var rec ShapeRecord
		if err := rows.Scan(&rec.ShapeID, &rec.ShapeType, &rec.MemberCount); err != nil {
			return nil, fmt.Errorf("list shapes: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// shapeMemberCount reports the member count recorded in the shape index.
// Only the aggregate variants carry members.
func shapeMemberCount(s ast.Shape) int {
	switch shape := s.(type) {
	case *ast.StructureShape:
		return len(shape.Members)
	case *ast.UnionShape:
		return len(shape.Members)
	case *ast.EnumShape:
		return len(shape.Members)
	case *ast.ListShape:
		return 1
	case *ast.MapShape:
		return 2
	default:
		return 0
	}
}
