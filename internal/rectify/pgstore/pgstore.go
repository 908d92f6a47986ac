// Package pgstore is an optional PostgreSQL-backed persistence layer for
// [github.com/MrWong99/zhcorrect/internal/rectify] knowledge bases, for
// deployments that want the rectification records to survive restarts and
// be shared across instances instead of living only in a loaded text file.
//
// Exact fragment scoring still happens in the rectify package itself via
// phoneme edit distance; this store only adds a pgvector-backed coarse
// filter so a large knowledge base doesn't require rescoring every record
// against every query.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

// schemaTemplate is the SQL DDL for the rectify_records table; its %d is
// filled with the vector dimensionality passed to [NewStore]. Execute it
// via [Store.Migrate] before issuing queries.
const schemaTemplate = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS rectify_records (
    id         BIGSERIAL PRIMARY KEY,
    wrong      TEXT NOT NULL,
    "right"    TEXT NOT NULL,
    sketch     vector(%d) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_rectify_records_sketch
    ON rectify_records USING hnsw (sketch vector_l2_ops);
`

// DB is the database interface used by [Store]. Both *pgxpool.Pool and
// *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Candidate is one coarse-filtered row returned by [Store.Search], to be
// rescored precisely by the caller (e.g. against fragment phoneme
// sequences) before being surfaced to the end user.
type Candidate struct {
	ID    int64
	Wrong string
	Right string
}

// Store is a PostgreSQL-backed persistence layer for rectification records.
// Every record is indexed by a fixed-dimension "phoneme sketch" -- a
// feature-hashed bag of phoneme-atom codes -- so an approximate-nearest-
// -neighbour query via pgvector can narrow a large table down to a
// manageable candidate set before exact phoneme-distance rescoring.
type Store struct {
	db   DB
	dims int
}

// NewStore returns a [Store] using db for storage, with sketches of the
// given dimensionality (must match an already-migrated schema's vector
// column width).
func NewStore(db DB, dims int) *Store {
	return &Store{db: db, dims: dims}
}

// Migrate executes the schema DDL, creating the rectify_records table, its
// HNSW index, and the pgvector extension if they do not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(schemaTemplate, s.dims))
	if err != nil {
		return fmt.Errorf("pgstore: migrate: %w", err)
	}
	return nil
}

// Upsert inserts a new rectification record, computing its sketch from the
// phoneme sequence of wrong+right concatenated (the union of both sides'
// phonetic content, so a query resembling either side can retrieve it).
func (s *Store) Upsert(ctx context.Context, wrong, right string) (int64, error) {
	sketch := phonemeSketch(phonemizer.Phonemize(wrong+right), s.dims)

	const query = `
		INSERT INTO rectify_records (wrong, "right", sketch)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := s.db.QueryRow(ctx, query, wrong, right, pgvector.NewVector(sketch)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("pgstore: upsert: %w", err)
	}
	return id, nil
}

// Delete removes a record by ID. Deleting a non-existent ID is not an
// error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM rectify_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgstore: delete %d: %w", id, err)
	}
	return nil
}

// Search returns the topK records whose sketch is closest (L2 distance) to
// query's phoneme sketch. Callers should treat these as candidates and
// rescore them precisely (e.g. with matcher.FuzzySubstringDistance against
// each record's extracted fragments) before applying a real threshold.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]Candidate, error) {
	sketch := phonemeSketch(phonemizer.Phonemize(query), s.dims)

	const q = `
		SELECT id, wrong, "right"
		FROM rectify_records
		ORDER BY sketch <-> $1
		LIMIT $2`

	rows, err := s.db.Query(ctx, q, pgvector.NewVector(sketch), topK)
	if err != nil {
		return nil, fmt.Errorf("pgstore: search: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Candidate, error) {
		var c Candidate
		if err := row.Scan(&c.ID, &c.Wrong, &c.Right); err != nil {
			return Candidate{}, err
		}
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pgstore: scan rows: %w", err)
	}
	if results == nil {
		results = []Candidate{}
	}
	return results, nil
}

// All returns every stored record, for reconstructing an in-memory
// [github.com/MrWong99/zhcorrect/internal/rectify.Store] at startup.
func (s *Store) All(ctx context.Context) ([]Candidate, error) {
	rows, err := s.db.Query(ctx, `SELECT id, wrong, "right" FROM rectify_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pgstore: all: %w", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Candidate, error) {
		var c Candidate
		if err := row.Scan(&c.ID, &c.Wrong, &c.Right); err != nil {
			return Candidate{}, err
		}
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pgstore: scan rows: %w", err)
	}
	if results == nil {
		results = []Candidate{}
	}
	return results, nil
}

// phonemeSketch feature-hashes a phoneme sequence's atom values into a
// fixed-dimension vector: each atom contributes +1 to the bucket its value
// hashes into, giving a cheap bag-of-phonemes sketch suitable for
// approximate-nearest-neighbour pre-filtering.
func phonemeSketch(seq phonemizer.Sequence, dims int) []float32 {
	sketch := make([]float32, dims)
	if dims == 0 {
		return sketch
	}
	for _, atom := range seq {
		bucket := fnv32(atom.Value) % uint32(dims)
		sketch[bucket]++
	}
	return sketch
}

// fnv32 is the 32-bit FNV-1a hash, used to bucket phoneme atom values.
func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
