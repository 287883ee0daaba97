// File: smarttravel/services/session/sqlite.go
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const credentialsSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	scope      TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	user_json  TEXT,
	updated_at INTEGER NOT NULL
);`

// OpenSQLite opens (creating if needed) the local credential database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential db: %w", err)
	}
	if _, err := db.Exec(credentialsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init credential db: %w", err)
	}
	return db, nil
}

// SQLiteStore is the local single-user CredentialStore. There is no
// second writer to watch for, so Watch is a no-op.
type SQLiteStore struct {
	db    *sql.DB
	scope string
}

func NewSQLiteStore(db *sql.DB, scope string) *SQLiteStore {
	return &SQLiteStore{db: db, scope: scope}
}

func (s *SQLiteStore) Load(ctx context.Context) (*Credentials, error) {
	var token string
	var userJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT token, user_json FROM credentials WHERE scope = ?`, s.scope,
	).Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	creds := &Credentials{Token: token}
	if userJSON.Valid && userJSON.String != "" {
		if err := json.Unmarshal([]byte(userJSON.String), &creds.User); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached user: %w", err)
		}
	}
	return creds, nil
}

func (s *SQLiteStore) Save(ctx context.Context, creds Credentials) error {
	var userJSON []byte
	if creds.User != nil {
		var err error
		userJSON, err = json.Marshal(creds.User)
		if err != nil {
			return fmt.Errorf("failed to marshal cached user: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (scope, token, user_json, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(scope) DO UPDATE SET token = excluded.token,
		   user_json = excluded.user_json, updated_at = excluded.updated_at`,
		s.scope, creds.Token, string(userJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE scope = ?`, s.scope); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Watch(ctx context.Context, fn func(Event)) error {
	return nil
}
