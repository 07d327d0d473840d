// Package docs models the stored documents this application analyzes:
// typed documents with facets, named binary blobs, and the processing
// marker left behind by a successful analysis. It stands in for the
// content-management platform hosting the analysis pipeline.
package docs

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// PrimaryBlobField is the default field holding a document's main content.
const PrimaryBlobField = "file:content"

// Marker field paths on a document, as persisted by the store.
const (
	MarkerJSONField   = "natural_language:json"
	MarkerDigestField = "natural_language:source_digest"
)

// Blob is a named piece of binary content attached to a document.
type Blob struct {
	Filename string
	MimeType string
	Data     []byte

	// Digest is the SHA-256 hex digest of Data, computed on construction.
	// It is compared against a document's marker digest to detect
	// unchanged content.
	Digest string
}

// NewBlob builds a blob and computes its content digest.
func NewBlob(filename, mimeType string, data []byte) *Blob {
	sum := sha256.Sum256(data)
	return &Blob{
		Filename: filename,
		MimeType: mimeType,
		Data:     data,
		Digest:   hex.EncodeToString(sum[:]),
	}
}

// Marker records that a document was analyzed: the serialized analysis
// response and the content digest of the blob at analysis time.
type Marker struct {
	ResultJSON   string
	SourceDigest string
}

// Document is a snapshot of one stored document.
type Document struct {
	ID     string
	Type   string
	Facets []string

	blobs  map[string]*Blob
	marker *Marker
}

// NewDocument creates a document of the given type with a fresh ID.
func NewDocument(docType string, facets ...string) *Document {
	return &Document{
		ID:     uuid.NewString(),
		Type:   docType,
		Facets: facets,
		blobs:  make(map[string]*Blob),
	}
}

// HasFacet reports whether the document carries the named facet.
func (d *Document) HasFacet(name string) bool {
	for _, f := range d.Facets {
		if f == name {
			return true
		}
	}
	return false
}

// AttachBlob stores a blob under the given field. A blank field means
// PrimaryBlobField.
func (d *Document) AttachBlob(field string, b *Blob) {
	if field == "" {
		field = PrimaryBlobField
	}
	if d.blobs == nil {
		d.blobs = make(map[string]*Blob)
	}
	d.blobs[field] = b
}

// BlobAt returns the blob stored under field, or nil. A blank field means
// PrimaryBlobField.
func (d *Document) BlobAt(field string) *Blob {
	if field == "" {
		field = PrimaryBlobField
	}
	return d.blobs[field]
}

// BlobFields returns the fields that currently hold a blob.
func (d *Document) BlobFields() []string {
	fields := make([]string, 0, len(d.blobs))
	for field := range d.blobs {
		fields = append(fields, field)
	}
	return fields
}

// Marker returns the processing marker, or nil when the document was
// never analyzed.
func (d *Document) Marker() *Marker {
	return d.marker
}

// SetMarker records the processing marker on the document snapshot. The
// store persists it separately from content updates.
func (d *Document) SetMarker(m *Marker) {
	d.marker = m
}
