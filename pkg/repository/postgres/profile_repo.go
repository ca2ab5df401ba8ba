package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumic/pkg/resume"
)

// ProfileRepository stores the merged profile document as JSONB plus one
// row per connected source. Save writes both in a single transaction so a
// reader never sees a document ahead of its source metadata.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	user_id UUID PRIMARY KEY,
	document JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS profile_sources (
	user_id UUID NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
	source TEXT NOT NULL,
	connected BOOLEAN NOT NULL,
	ref TEXT NOT NULL DEFAULT '',
	last_updated TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, source)
);
`)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (resume.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT document FROM profiles WHERE user_id = $1`, userID)
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Profile{}, resume.ErrNotFound
		}
		return resume.Profile{}, err
	}

	var p resume.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return resume.Profile{}, fmt.Errorf("decode profile document: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT source, connected, ref, last_updated FROM profile_sources WHERE user_id = $1
`, userID)
	if err != nil {
		return resume.Profile{}, err
	}
	defer rows.Close()

	p.Sources = make(map[resume.SourceTag]resume.SourceMeta)
	for rows.Next() {
		var tag string
		var meta resume.SourceMeta
		var last time.Time
		if err := rows.Scan(&tag, &meta.Connected, &meta.Ref, &last); err != nil {
			return resume.Profile{}, err
		}
		meta.LastUpdated = last.UTC()
		p.Sources[resume.SourceTag(tag)] = meta
	}
	return p, rows.Err()
}

func (r *ProfileRepository) Save(ctx context.Context, userID uuid.UUID, p resume.Profile) error {
	// Source rows live in their own table; the document keeps only the
	// resume content.
	sources := p.Sources
	p.Sources = nil

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile document: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
INSERT INTO profiles (user_id, document, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
`, userID, doc, now); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profile_sources WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for tag, meta := range sources {
		if _, err := tx.Exec(ctx, `
INSERT INTO profile_sources (user_id, source, connected, ref, last_updated)
VALUES ($1, $2, $3, $4, $5)
`, userID, string(tag), meta.Connected, meta.Ref, meta.LastUpdated); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
