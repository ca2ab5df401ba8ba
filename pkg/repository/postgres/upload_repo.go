package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumic/pkg/resume"
)

// UploadRepository stores metadata of uploaded resume files.
type UploadRepository struct {
	pool *pgxpool.Pool
}

func NewUploadRepository(pool *pgxpool.Pool) (*UploadRepository, error) {
	r := &UploadRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UploadRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS uploads (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	size_bytes BIGINT NOT NULL,
	storage_key TEXT NOT NULL,
	storage_url TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS uploads_owner_idx ON uploads (owner_id, created_at DESC);
`)
	return err
}

func (r *UploadRepository) Create(ctx context.Context, u resume.Upload) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO uploads (id, owner_id, filename, mime_type, size_bytes, storage_key, storage_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, u.ID, u.OwnerID, u.Filename, u.MimeType, u.Size, u.StorageKey, u.StorageURL, u.CreatedAt)
	return err
}

func (r *UploadRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Upload, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, filename, mime_type, size_bytes, storage_key, storage_url, created_at
FROM uploads WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return scanUpload(row)
}

func (r *UploadRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Upload, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, filename, mime_type, size_bytes, storage_key, storage_url, created_at
FROM uploads WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []resume.Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *UploadRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Upload, error) {
	row := r.pool.QueryRow(ctx, `
DELETE FROM uploads WHERE id = $1 AND owner_id = $2
RETURNING id, owner_id, filename, mime_type, size_bytes, storage_key, storage_url, created_at
`, id, ownerID)
	return scanUpload(row)
}

func scanUpload(row pgx.Row) (resume.Upload, error) {
	var u resume.Upload
	var created time.Time
	err := row.Scan(&u.ID, &u.OwnerID, &u.Filename, &u.MimeType, &u.Size, &u.StorageKey, &u.StorageURL, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Upload{}, resume.ErrNotFound
		}
		return resume.Upload{}, err
	}
	u.CreatedAt = created.UTC()
	return u, nil
}
