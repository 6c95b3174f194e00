package session

import (
	"context"
	"database/sql"
	"time"
)

// PostgresStore keeps sessions in the sessions table so login state survives
// a restart.
type PostgresStore struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, TTL: DefaultTTL}
}

func (s *PostgresStore) Bind(ctx context.Context, sessionID, token string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
		sessionID, token, time.Now().Add(s.TTL),
	)
	return err
}

func (s *PostgresStore) Current(ctx context.Context, sessionID string) (string, error) {
	var token string
	err := s.DB.QueryRowContext(ctx,
		`SELECT token FROM sessions WHERE id = $1 AND expires_at > now()`,
		sessionID,
	).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
