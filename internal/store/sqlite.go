package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/sl4wa/outages-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Save inserts or overwrites a subscription. The notified-outage snapshot is
// part of the record: saving a user without one clears it.
func (r *SQLiteRepo) Save(ctx context.Context, u domain.User) error {
	start, end, comment := outageColumns(u.OutageInfo)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (
			chat_id, street_id, street_name, building, city,
			outage_start, outage_end, outage_comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			street_id      = excluded.street_id,
			street_name    = excluded.street_name,
			building       = excluded.building,
			city           = excluded.city,
			outage_start   = excluded.outage_start,
			outage_end     = excluded.outage_end,
			outage_comment = excluded.outage_comment`,
		u.ChatID, u.Address.StreetID, u.Address.StreetName, u.Address.Building,
		u.Address.City, start, end, comment, time.Now().UTC().Unix(),
	)
	return err
}

// Find returns the subscription for chatID, or (nil, nil) if none exists.
func (r *SQLiteRepo) Find(ctx context.Context, chatID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, street_id, street_name, building, city,
		       outage_start, outage_end, outage_comment, created_at
		FROM subscriptions
		WHERE chat_id = ?`,
		chatID,
	)

	var sr subscriptionRow
	if err := row.Scan(
		&sr.chatID, &sr.streetID, &sr.streetName, &sr.building, &sr.city,
		&sr.outageStart, &sr.outageEnd, &sr.outageComment, &sr.createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	u := sr.toUser()
	return &u, nil
}

// FindAll returns all subscriptions ordered by chat id.
func (r *SQLiteRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, street_id, street_name, building, city,
		       outage_start, outage_end, outage_comment, created_at
		FROM subscriptions
		ORDER BY chat_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.User
	for rows.Next() {
		var sr subscriptionRow
		if err := rows.Scan(
			&sr.chatID, &sr.streetID, &sr.streetName, &sr.building, &sr.city,
			&sr.outageStart, &sr.outageEnd, &sr.outageComment, &sr.createdAt,
		); err != nil {
			return nil, err
		}
		res = append(res, sr.toUser())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Remove deletes the subscription and reports whether a row was removed.
func (r *SQLiteRepo) Remove(ctx context.Context, chatID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM subscriptions
		WHERE chat_id = ?`,
		chatID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
