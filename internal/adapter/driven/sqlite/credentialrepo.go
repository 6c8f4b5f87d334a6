package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ericfisherdev/passop/internal/domain/model"
	"github.com/ericfisherdev/passop/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port interface.
// Rows carry an autoincrement seq column so "first match" means first inserted,
// the same order a document collection scan returns.
type CredentialRepo struct {
	db *DB
}

// NewCredentialRepo creates a new CredentialRepo backed by the given DB.
func NewCredentialRepo(db *DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

// List returns all credentials in insertion order.
func (r *CredentialRepo) List(ctx context.Context) ([]model.Credential, error) {
	const query = `SELECT id, site, username, password FROM credentials ORDER BY seq`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		var cred model.Credential
		if err := rows.Scan(&cred.ID, &cred.Site, &cred.Username, &cred.Password); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	return creds, nil
}

// Insert stores a new credential, generating an ID when none is set.
// Duplicate (site, username) pairs are allowed.
func (r *CredentialRepo) Insert(ctx context.Context, cred model.Credential) (model.InsertResult, error) {
	const query = `INSERT INTO credentials (id, site, username, password) VALUES (?, ?, ?, ?)`

	id := cred.ID
	if id == "" {
		id = uuid.New().String()
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, id, cred.Site, cred.Username, cred.Password); err != nil {
		return model.InsertResult{}, fmt.Errorf("insert credential %s: %w", id, err)
	}

	return model.InsertResult{InsertedID: id}, nil
}

// UpdatePassword sets the password of the first credential matching key.
// Writing the value already stored counts as matched but not modified.
func (r *CredentialRepo) UpdatePassword(ctx context.Context, key model.CredentialKey, password string) (model.UpdateResult, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := firstMatchQuery(`SELECT seq, password FROM credentials`, key)

	var seq int64
	var current string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&seq, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UpdateResult{}, nil
	}
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("find credential %s/%s: %w", key.Site, key.Username, err)
	}

	if current == password {
		return model.UpdateResult{Matched: 1}, nil
	}

	result, err := tx.ExecContext(ctx, `UPDATE credentials SET password = ? WHERE seq = ?`, password, seq)
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("update credential %s/%s: %w", key.Site, key.Username, err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("check rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.UpdateResult{}, fmt.Errorf("commit update: %w", err)
	}

	return model.UpdateResult{Matched: 1, Modified: modified}, nil
}

// Delete removes the first credential matching key.
func (r *CredentialRepo) Delete(ctx context.Context, key model.CredentialKey) (int64, error) {
	sub, args := firstMatchQuery(`SELECT seq FROM credentials`, key)
	query := `DELETE FROM credentials WHERE seq = (` + sub + `)`

	result, err := r.db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete credential %s/%s: %w", key.Site, key.Username, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return rows, nil
}

// Ping checks the writer connection.
func (r *CredentialRepo) Ping(ctx context.Context) error {
	return r.db.Writer.PingContext(ctx)
}

// Close closes the underlying database.
func (r *CredentialRepo) Close(_ context.Context) error {
	return r.db.Close()
}

// firstMatchQuery appends the key filter and first-inserted ordering to base.
func firstMatchQuery(base string, key model.CredentialKey) (string, []any) {
	query := base + ` WHERE site = ? AND username = ?`
	args := []any{key.Site, key.Username}
	if key.ID != "" {
		query += ` AND id = ?`
		args = append(args, key.ID)
	}
	return query + ` ORDER BY seq LIMIT 1`, args
}
