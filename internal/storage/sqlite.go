package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"wedding-guestlist/internal/models"
)

// DefaultSQLiteDSN is a process-lifetime, in-memory database. The shared cache
// keeps every pooled connection on the same database.
const DefaultSQLiteDSN = "file:guests?mode=memory&cache=shared"

// AUTOINCREMENT keeps sqlite from handing out the rowid of a deleted row again.
const schema = `
CREATE TABLE IF NOT EXISTS guests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	association TEXT NOT NULL CHECK (association IN ('James', 'Molly')),
	family INTEGER NOT NULL,
	dietary_restrictions TEXT NOT NULL DEFAULT '',
	bringing_guest INTEGER NULL,
	additional_guest_name TEXT NOT NULL DEFAULT '',
	additional_guest_dietary_restrictions TEXT NOT NULL DEFAULT ''
)`

const selectGuests = `SELECT id, name, association, family, dietary_restrictions, bringing_guest,
	additional_guest_name, additional_guest_dietary_restrictions FROM guests`

// SQLite is a registry backed by database/sql and go-sqlite3.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens dsn and ensures the guests table exists
func NewSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time gives every operation the same atomicity as the
	// in-memory registry.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Add inserts a new guest
func (s *SQLite) Add(ctx context.Context, in models.GuestInput) (models.Guest, error) {
	if err := in.Validate(); err != nil {
		return models.Guest{}, err
	}

	g := in.ToGuest("")
	res, err := s.db.ExecContext(ctx, `INSERT INTO guests (name, association, family, dietary_restrictions,
		bringing_guest, additional_guest_name, additional_guest_dietary_restrictions)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Name, string(g.Association), g.Family, g.DietaryRestrictions,
		plusOneToNull(g.BringingGuest), g.AdditionalGuestName, g.AdditionalGuestDietaryRestrictions)
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to insert guest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to read guest id: %w", err)
	}
	g.ID = strconv.FormatInt(id, 10)
	return g, nil
}

// Update replaces the mutable fields of an existing guest
func (s *SQLite) Update(ctx context.Context, id string, in models.GuestInput) (models.Guest, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return models.Guest{}, ErrGuestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM guests WHERE id = ?`, rowID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Guest{}, ErrGuestNotFound
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to look up guest: %w", err)
	}
	if err := in.Validate(); err != nil {
		return models.Guest{}, err
	}

	g := in.ToGuest(id)
	_, err = tx.ExecContext(ctx, `UPDATE guests SET name = ?, association = ?, family = ?,
		dietary_restrictions = ?, bringing_guest = ?, additional_guest_name = ?,
		additional_guest_dietary_restrictions = ? WHERE id = ?`,
		g.Name, string(g.Association), g.Family, g.DietaryRestrictions,
		plusOneToNull(g.BringingGuest), g.AdditionalGuestName, g.AdditionalGuestDietaryRestrictions, rowID)
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to update guest: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Guest{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return g, nil
}

// Remove deletes a guest by id
func (s *SQLite) Remove(ctx context.Context, id string) ([]models.Guest, error) {
	if rowID, ok := parseRowID(id); ok {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, rowID); err != nil {
			return nil, fmt.Errorf("failed to delete guest: %w", err)
		}
	}
	return s.List(ctx)
}

// List returns all guests in insertion order
func (s *SQLite) List(ctx context.Context) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, selectGuests+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := make([]models.Guest, 0)
	for rows.Next() {
		var (
			g           models.Guest
			id          int64
			association string
			bringing    sql.NullBool
		)
		if err := rows.Scan(&id, &g.Name, &association, &g.Family, &g.DietaryRestrictions, &bringing,
			&g.AdditionalGuestName, &g.AdditionalGuestDietaryRestrictions); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		g.ID = strconv.FormatInt(id, 10)
		g.Association = models.Association(association)
		if bringing.Valid {
			g.BringingGuest = models.PlusOneFromBool(bringing.Bool)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guests: %w", err)
	}
	return guests, nil
}

// Close closes the underlying database
func (s *SQLite) Close() error {
	return s.db.Close()
}

func plusOneToNull(p models.PlusOne) sql.NullBool {
	switch p {
	case models.PlusOneYes:
		return sql.NullBool{Bool: true, Valid: true}
	case models.PlusOneNo:
		return sql.NullBool{Bool: false, Valid: true}
	default:
		return sql.NullBool{}
	}
}

// Ids are decimal rowids; anything else cannot name a stored guest.
func parseRowID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
