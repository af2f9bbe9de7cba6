package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Credential, error) {
	var (
		c         models.Credential
		expiresAt int64
		savedAt   int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, user_id, email, name, expires_at, saved_at
		FROM session WHERE id = 1
	`).Scan(&c.AccessToken, &c.RefreshToken, &c.User.ID, &c.User.Email, &c.User.Name, &expiresAt, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if expiresAt > 0 {
		c.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	}
	c.SavedAt = time.Unix(savedAt, 0).UTC()
	return &c, nil
}

// Insert stores cred as the single session row. It fails if a row is
// already present; callers replace a session with Clear + Insert.
func (r *SQLiteRepository) Insert(ctx context.Context, cred *models.Credential) error {
	var expiresAt int64
	if !cred.ExpiresAt.IsZero() {
		expiresAt = cred.ExpiresAt.Unix()
	}
	savedAt := cred.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, access_token, refresh_token, user_id, email, name, expires_at, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
	`, cred.AccessToken, cred.RefreshToken, cred.User.ID, cred.User.Email, cred.User.Name, expiresAt, savedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
