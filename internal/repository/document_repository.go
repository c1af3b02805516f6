package repository

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"shamba-ai/backend/internal/model"
)

type sqliteDocumentRepository struct {
	db *sql.DB
}

func NewSQLiteDocumentRepository(db *sql.DB) DocumentRepository {
	return &sqliteDocumentRepository{db: db}
}

// UpsertDocument stores the document text, metadata and vector under its id,
// replacing any previous version so re-ingestion cannot create duplicates.
func (r *sqliteDocumentRepository) UpsertDocument(ctx context.Context, doc *model.Document, embedding []float32) error {
	query := `
		INSERT INTO documents (id, text, metadata, embedding, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			metadata = excluded.metadata,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Text, rawToNullString(doc.Metadata), encodeVector(embedding), time.Now().UTC())
	return err
}

func (r *sqliteDocumentRepository) ListDocuments(ctx context.Context) ([]StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, text, metadata, embedding FROM documents")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []StoredDocument
	for rows.Next() {
		var d StoredDocument
		var metadata sql.NullString
		var blob []byte
		if err := rows.Scan(&d.Document.ID, &d.Document.Text, &metadata, &blob); err != nil {
			return nil, err
		}
		if metadata.Valid {
			d.Document.Metadata = json.RawMessage(metadata.String)
		}
		d.Embedding, err = decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", d.Document.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *sqliteDocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

// Vectors are stored as little-endian float32 blobs.

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("malformed embedding blob of %d bytes", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
