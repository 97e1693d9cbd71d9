package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sweet-shop/internal/domain"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const sweetsSchema = `
CREATE TABLE IF NOT EXISTS sweets (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	price TEXT NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	CHECK(quantity >= 0)
);

CREATE INDEX IF NOT EXISTS idx_sweets_category ON sweets(category);
`

// SQLiteSweetRepository persists sweets in a SQLite database.
// Insertion order is the AUTOINCREMENT sequence, which is never reused.
type SQLiteSweetRepository struct {
	db *sql.DB
}

// NewSQLiteSweetRepository opens (or creates) the database at dbPath
func NewSQLiteSweetRepository(dbPath string) (*SQLiteSweetRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writes are serialized by inventory.Store; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(sweetsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteSweetRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteSweetRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteSweetRepository) Save(ctx context.Context, sweet *domain.Sweet) error {
	query := `
		INSERT INTO sweets (id, name, category, price, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			price = excluded.price,
			quantity = excluded.quantity,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		sweet.ID, sweet.Name, sweet.Category,
		sweet.Price.String(), sweet.Quantity,
		sweet.CreatedAt.UTC().Format(time.RFC3339Nano),
		sweet.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save sweet: %w", err)
	}
	return nil
}

func (r *SQLiteSweetRepository) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	query := `
		SELECT id, name, category, price, quantity, created_at, updated_at
		FROM sweets
		WHERE id = ?
	`

	sweet, err := scanSweet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to find sweet by ID: %w", err)
	}
	return sweet, nil
}

func (r *SQLiteSweetRepository) FindAll(ctx context.Context) ([]domain.Sweet, error) {
	query := `
		SELECT id, name, category, price, quantity, created_at, updated_at
		FROM sweets
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweets: %w", err)
	}
	defer rows.Close()

	sweets := make([]domain.Sweet, 0)
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet: %w", err)
		}
		sweets = append(sweets, *sweet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sweets: %w", err)
	}
	return sweets, nil
}

func (r *SQLiteSweetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sweets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSweet(row rowScanner) (*domain.Sweet, error) {
	var sweet domain.Sweet
	var priceStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&priceStr,
		&sweet.Quantity,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", priceStr, err)
	}
	sweet.Price = price

	if createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr); err == nil {
		sweet.CreatedAt = createdAt
	}
	if updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr); err == nil {
		sweet.UpdatedAt = updatedAt
	}

	return &sweet, nil
}
