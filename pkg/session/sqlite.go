package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/pricing"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	catalog_id  TEXT NOT NULL,
	status      TEXT NOT NULL,
	selections  TEXT NOT NULL,
	price       TEXT,
	valid       INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions (status, expires_at);
`

// SQLStore persists sessions in a SQL database. It is written against
// database/sql and exercised with SQLite in production.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) a SQLite-backed store at path.
// The connection runs in WAL mode so readers do not block the write path.
func OpenSQLite(path string) (*SQLStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("session: open sqlite %s: %w", path, err)
	}
	store, err := NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an existing database handle and ensures the schema.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("session: apply schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Put implements Store.
func (s *SQLStore) Put(ctx context.Context, sess *Session) error {
	selections, err := json.Marshal(sess.Selections)
	if err != nil {
		return fmt.Errorf("session: encode selections: %w", err)
	}

	var price sql.NullString
	if sess.Price != nil {
		raw, err := json.Marshal(sess.Price)
		if err != nil {
			return fmt.Errorf("session: encode price: %w", err)
		}
		price = sql.NullString{String: string(raw), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, catalog_id, status, selections, price, valid, created_at, updated_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			selections = excluded.selections,
			price = excluded.price,
			valid = excluded.valid,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`,
		sess.ID, sess.CatalogID, string(sess.Status), string(selections), price, boolToInt(sess.Valid),
		sess.CreatedAt.Unix(), sess.UpdatedAt.Unix(), sess.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("session: put %s: %w", sess.ID, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, catalog_id, status, selections, price, valid, created_at, updated_at, expires_at
		FROM sessions WHERE id = ?`, id)

	var (
		sess       Session
		status     string
		selections string
		price      sql.NullString
		valid      int
		createdAt  int64
		updatedAt  int64
		expiresAt  int64
	)
	err := row.Scan(&sess.ID, &sess.CatalogID, &status, &selections, &price, &valid, &createdAt, &updatedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}

	sess.Status = Status(status)
	sess.Valid = valid != 0
	sess.CreatedAt = time.Unix(createdAt, 0).UTC()
	sess.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	sess.ExpiresAt = time.Unix(expiresAt, 0).UTC()

	sess.Selections = catalog.SelectionState{}
	if err := json.Unmarshal([]byte(selections), &sess.Selections); err != nil {
		return nil, fmt.Errorf("session: decode selections for %s: %w", id, err)
	}
	if price.Valid {
		var breakdown pricing.Breakdown
		if err := json.Unmarshal([]byte(price.String), &breakdown); err != nil {
			return nil, fmt.Errorf("session: decode price for %s: %w", id, err)
		}
		sess.Price = &breakdown
	}
	return &sess, nil
}

// Delete implements Store.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireBefore implements Store.
func (s *SQLStore) ExpireBefore(ctx context.Context, deadline time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET status = ?, updated_at = ?
		WHERE status IN (?, ?) AND expires_at < ?`,
		string(StatusExpired), deadline.Unix(),
		string(StatusActive), string(StatusSaved), deadline.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("session: expire: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("session: expire: %w", err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
