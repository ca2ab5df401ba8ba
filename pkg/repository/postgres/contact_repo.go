package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumic/pkg/contact"
)

// ContactRepository stores contact form submissions.
type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) (*ContactRepository, error) {
	r := &ContactRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ContactRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS contact_messages (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ContactRepository) Create(ctx context.Context, m contact.Message) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO contact_messages (id, name, email, subject, body, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, m.ID, m.Name, m.Email, m.Subject, m.Body, m.CreatedAt)
	return err
}
