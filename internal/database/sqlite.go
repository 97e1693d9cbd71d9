package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Movement kinds
const (
	MovementPurchase = "purchase"
	MovementRestock  = "restock"
)

var ErrInvalidMovement = errors.New("invalid stock movement")

// Movement is one purchase or restock recorded in the stock ledger
type Movement struct {
	ID            string
	SweetID       string
	SweetName     string
	Kind          string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalCost     decimal.Decimal
	PreviousStock int
	NewStock      int
	OccurredAt    time.Time
}

// SingleWriterDB is the SQLite stock ledger. Writers are serialized by a
// mutex so only one connection ever writes at a time.
type SingleWriterDB struct {
	db     *sql.DB
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSingleWriterDB opens (or creates) the ledger at path
func NewSingleWriterDB(path string, logger *zap.Logger) (*SingleWriterDB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	swdb := &SingleWriterDB{
		db:     db,
		logger: logger,
	}

	if err := swdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return swdb, nil
}

func (swdb *SingleWriterDB) initSchema() error {
	schema := `
	-- One row per purchase or restock. id is the originating event id,
	-- so redelivered events are recorded once.
	CREATE TABLE IF NOT EXISTS stock_movements (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT UNIQUE NOT NULL,
		sweet_id TEXT NOT NULL,
		sweet_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		total_cost TEXT NOT NULL,
		previous_stock INTEGER NOT NULL,
		new_stock INTEGER NOT NULL,
		occurred_at TEXT NOT NULL,
		CHECK(kind IN ('purchase', 'restock')),
		CHECK(quantity > 0),
		CHECK(new_stock >= 0)
	);

	CREATE INDEX IF NOT EXISTS idx_stock_movements_sweet_id ON stock_movements(sweet_id);
	`

	_, err := swdb.db.Exec(schema)
	return err
}

// Ping checks the database connection
func (swdb *SingleWriterDB) Ping() error {
	return swdb.db.Ping()
}

// Close closes the database connection
func (swdb *SingleWriterDB) Close() error {
	return swdb.db.Close()
}

// RecordMovement appends a movement to the ledger (Single Writer).
// A movement whose id is already recorded is ignored.
func (swdb *SingleWriterDB) RecordMovement(ctx context.Context, m *Movement) error {
	if m.ID == "" || m.SweetID == "" {
		return fmt.Errorf("%w: id and sweet id are required", ErrInvalidMovement)
	}
	if m.Kind != MovementPurchase && m.Kind != MovementRestock {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMovement, m.Kind)
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidMovement)
	}

	swdb.mu.Lock()
	defer swdb.mu.Unlock()

	query := `
		INSERT INTO stock_movements (id, sweet_id, sweet_name, kind, quantity, unit_price, total_cost, previous_stock, new_stock, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	occurredAt := m.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	result, err := swdb.db.ExecContext(ctx, query,
		m.ID, m.SweetID, m.SweetName, m.Kind, m.Quantity,
		m.UnitPrice.String(), m.TotalCost.String(),
		m.PreviousStock, m.NewStock,
		occurredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); err == nil && rowsAffected == 0 {
		swdb.logger.Debug("Movement already recorded", zap.String("movement_id", m.ID))
	}
	return nil
}

// ListMovements returns the most recent movements first. An empty sweetID
// lists every sweet; limit <= 0 means no limit.
func (swdb *SingleWriterDB) ListMovements(ctx context.Context, sweetID string, limit int) ([]Movement, error) {
	query := `
		SELECT id, sweet_id, sweet_name, kind, quantity, unit_price, total_cost, previous_stock, new_stock, occurred_at
		FROM stock_movements
		WHERE (? = '' OR sweet_id = ?)
		ORDER BY seq DESC
		LIMIT ?
	`

	if limit <= 0 {
		limit = -1
	}

	rows, err := swdb.db.QueryContext(ctx, query, sweetID, sweetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	movements := make([]Movement, 0)
	for rows.Next() {
		var m Movement
		var unitPrice, totalCost, occurredAt string

		if err := rows.Scan(
			&m.ID, &m.SweetID, &m.SweetName, &m.Kind, &m.Quantity,
			&unitPrice, &totalCost, &m.PreviousStock, &m.NewStock, &occurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}

		if m.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("invalid stored unit price %q: %w", unitPrice, err)
		}
		if m.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
			return nil, fmt.Errorf("invalid stored total cost %q: %w", totalCost, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, occurredAt); err == nil {
			m.OccurredAt = t
		}

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movements: %w", err)
	}
	return movements, nil
}
