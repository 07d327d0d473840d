package docs

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists documents in SQLite and publishes lifecycle events on
// an optional bus.
type Store struct {
	db  *sql.DB
	bus *Bus
}

// Open opens (or creates) the document database at path with WAL mode
// enabled. A nil bus disables event publication.
func Open(ctx context.Context, path string, bus *Bus) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for concurrent readers alongside the single writer
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, bus: bus}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	doc_type TEXT NOT NULL,
	marker_json TEXT,
	marker_digest TEXT
);

CREATE TABLE IF NOT EXISTS facets (
	doc_id TEXT NOT NULL,
	facet TEXT NOT NULL,
	UNIQUE(doc_id, facet),
	FOREIGN KEY(doc_id) REFERENCES documents(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS blobs (
	doc_id TEXT NOT NULL,
	field TEXT NOT NULL,
	filename TEXT,
	mime_type TEXT,
	data BLOB,
	digest TEXT NOT NULL,
	UNIQUE(doc_id, field),
	FOREIGN KEY(doc_id) REFERENCES documents(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Create inserts a new document and publishes EventDocumentCreated.
func (s *Store) Create(ctx context.Context, doc *Document) error {
	if err := s.write(ctx, doc, true); err != nil {
		return err
	}
	s.publish(ctx, Event{Name: EventDocumentCreated, Document: doc})
	return nil
}

// Update rewrites a document's content and publishes EventDocumentModified.
func (s *Store) Update(ctx context.Context, doc *Document) error {
	if err := s.write(ctx, doc, false); err != nil {
		return err
	}
	s.publish(ctx, Event{Name: EventDocumentModified, Document: doc})
	return nil
}

// SaveMarker persists only the processing marker columns. No lifecycle
// event is published: marker writes must not retrigger the listener.
func (s *Store) SaveMarker(ctx context.Context, doc *Document) error {
	var markerJSON, markerDigest sql.NullString
	if m := doc.Marker(); m != nil {
		markerJSON = sql.NullString{String: m.ResultJSON, Valid: true}
		markerDigest = sql.NullString{String: m.SourceDigest, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET marker_json = ?, marker_digest = ? WHERE id = ?",
		markerJSON, markerDigest, doc.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document %s not found", doc.ID)
	}
	return nil
}

// Get loads one document by ID.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	doc := &Document{ID: id, blobs: make(map[string]*Blob)}

	var markerJSON, markerDigest sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT doc_type, marker_json, marker_digest FROM documents WHERE id = ?", id).
		Scan(&doc.Type, &markerJSON, &markerDigest)
	if err != nil {
		return nil, err
	}
	if markerJSON.Valid || markerDigest.Valid {
		doc.marker = &Marker{ResultJSON: markerJSON.String, SourceDigest: markerDigest.String}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT facet FROM facets WHERE doc_id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var facet string
		if err := rows.Scan(&facet); err != nil {
			return nil, err
		}
		doc.Facets = append(doc.Facets, facet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	blobRows, err := s.db.QueryContext(ctx,
		"SELECT field, filename, mime_type, data, digest FROM blobs WHERE doc_id = ?", id)
	if err != nil {
		return nil, err
	}
	defer blobRows.Close()
	for blobRows.Next() {
		var field string
		b := &Blob{}
		if err := blobRows.Scan(&field, &b.Filename, &b.MimeType, &b.Data, &b.Digest); err != nil {
			return nil, err
		}
		doc.blobs[field] = b
	}
	if err := blobRows.Err(); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Store) write(ctx context.Context, doc *Document, create bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if create {
		var markerJSON, markerDigest sql.NullString
		if m := doc.Marker(); m != nil {
			markerJSON = sql.NullString{String: m.ResultJSON, Valid: true}
			markerDigest = sql.NullString{String: m.SourceDigest, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, doc_type, marker_json, marker_digest) VALUES (?, ?, ?, ?)",
			doc.ID, doc.Type, markerJSON, markerDigest); err != nil {
			return err
		}
	} else {
		res, err := tx.ExecContext(ctx,
			"UPDATE documents SET doc_type = ? WHERE id = ?", doc.Type, doc.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("document %s not found", doc.ID)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM facets WHERE doc_id = ?", doc.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM blobs WHERE doc_id = ?", doc.ID); err != nil {
			return err
		}
	}

	for _, facet := range doc.Facets {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO facets (doc_id, facet) VALUES (?, ?)", doc.ID, facet); err != nil {
			return err
		}
	}
	for field, b := range doc.blobs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO blobs (doc_id, field, filename, mime_type, data, digest) VALUES (?, ?, ?, ?, ?, ?)",
			doc.ID, field, b.Filename, b.MimeType, b.Data, b.Digest); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) publish(ctx context.Context, ev Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, ev)
	}
}
