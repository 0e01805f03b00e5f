package stores

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// bookingColumns selects one booking row. Flag columns are normalised to 0/1
// so rows holding NULL, '' or free text still scan.
var bookingColumns = `
	id_cliente,
	COALESCE(Cliente, ''),
	` + flagColumn("Banho") + `,
	` + flagColumn("Tosa") + `,
	` + flagColumn("Transporte") + `,
	COALESCE(Data, ''),
	COALESCE(creche, ''),
	` + flagColumn("Hotel")

// flagColumn reads a flag as true when it holds a non-zero number or one of
// the words true, yes or sim. Anything else, NULL included, is false.
func flagColumn(name string) string {
	return fmt.Sprintf(
		`CASE WHEN CAST(%[1]s AS INTEGER) <> 0 OR lower(trim(%[1]s)) IN ('true', 'yes', 'sim') THEN 1 ELSE 0 END`,
		name,
	)
}

// SQLiteStore implements the BookingStore interface using SQLite
type SQLiteStore struct {
	db   *sql.DB
	path string
	cfg  Config
}

var _ BookingStore = (*SQLiteStore)(nil)

// Config holds SQLite store configuration
type Config struct {
	Path string

	// BusyTimeout is how long, in milliseconds, SQLite waits on a locked file.
	BusyTimeout int

	// JournalMode is the SQLite journal mode (DELETE, WAL, ...).
	JournalMode string
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	// Set defaults
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5000
	}
	if cfg.JournalMode == "" {
		cfg.JournalMode = "DELETE"
	}

	return &SQLiteStore{
		path: cfg.Path,
		cfg:  cfg,
	}, nil
}

// Init opens (or creates) the database file and ensures the pethotel table
// exists. On failure the store keeps no handle and every later call returns
// ErrNotInitialized.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if isFilePath(s.path) {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection for the lifetime of the store. This also keeps a
	// :memory: database alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := s.applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database path the store was configured with.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", s.cfg.BusyTimeout),
		fmt.Sprintf("PRAGMA journal_mode = %s", s.cfg.JournalMode),
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// ensureSchema creates the pethotel table if it does not exist.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateBooking inserts a new booking and sets booking.ID to the assigned id
func (s *SQLiteStore) CreateBooking(ctx context.Context, booking *Booking) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	if booking == nil {
		return fmt.Errorf("failed to create booking: booking is nil")
	}

	query := `
		INSERT INTO pethotel (Cliente, Banho, Tosa, Transporte, Data, creche, Hotel)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		booking.ClientName,
		booking.Bath,
		booking.Grooming,
		booking.Transport,
		booking.Date,
		JoinDaycareDates(booking.DaycareDates),
		booking.HotelStay,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get booking ID: %w", err)
	}

	booking.ID = id
	return nil
}

// UpdateBooking overwrites every mutable column of the booking with the given
// id. An unknown id matches no row and is not an error.
func (s *SQLiteStore) UpdateBooking(ctx context.Context, id int64, booking *Booking) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	if booking == nil {
		return fmt.Errorf("failed to update booking: booking is nil")
	}

	query := `
		UPDATE pethotel
		SET Cliente = ?, Banho = ?, Tosa = ?, Transporte = ?, Data = ?, creche = ?, Hotel = ?
		WHERE id_cliente = ?
	`

	_, err := s.db.ExecContext(ctx, query,
		booking.ClientName,
		booking.Bath,
		booking.Grooming,
		booking.Transport,
		booking.Date,
		JoinDaycareDates(booking.DaycareDates),
		booking.HotelStay,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// DeleteBooking deletes a booking by ID. An unknown id is not an error.
func (s *SQLiteStore) DeleteBooking(ctx context.Context, id int64) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	query := `DELETE FROM pethotel WHERE id_cliente = ?`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

// DeleteAllBookings removes every booking and returns how many were removed.
func (s *SQLiteStore) DeleteAllBookings(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrNotInitialized
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM pethotel`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete all bookings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// SetDaycareDates joins dates with commas and stores them in the creche
// column of the booking. An unknown id is not an error.
func (s *SQLiteStore) SetDaycareDates(ctx context.Context, id int64, dates []string) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	query := `UPDATE pethotel SET creche = ? WHERE id_cliente = ?`

	if _, err := s.db.ExecContext(ctx, query, JoinDaycareDates(dates), id); err != nil {
		return fmt.Errorf("failed to set daycare dates: %w", err)
	}

	return nil
}

// GetBooking retrieves a booking by ID
func (s *SQLiteStore) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	query := `SELECT` + bookingColumns + ` FROM pethotel WHERE id_cliente = ?`

	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// ListBookings lists every booking
func (s *SQLiteStore) ListBookings(ctx context.Context) ([]*Booking, error) {
	return s.listBookings(ctx, "list bookings", "")
}

// ListBookingsByYear lists bookings whose date starts with the four-digit year.
func (s *SQLiteStore) ListBookingsByYear(ctx context.Context, year int) ([]*Booking, error) {
	return s.listBookings(ctx, "list bookings by year",
		`WHERE substr(Data, 1, 4) = ?`,
		fmt.Sprintf("%04d", year),
	)
}

// ListBookingsByMonth lists bookings whose date has both the year and the
// zero-padded two-digit month.
func (s *SQLiteStore) ListBookingsByMonth(ctx context.Context, year, month int) ([]*Booking, error) {
	return s.listBookings(ctx, "list bookings by month",
		`WHERE substr(Data, 1, 4) = ? AND substr(Data, 6, 2) = ?`,
		fmt.Sprintf("%04d", year),
		fmt.Sprintf("%02d", month),
	)
}

// ListBookingsByDate lists bookings whose date equals date exactly.
func (s *SQLiteStore) ListBookingsByDate(ctx context.Context, date string) ([]*Booking, error) {
	return s.listBookings(ctx, "list bookings by date", `WHERE Data = ?`, date)
}

// CountBookings returns the number of bookings
func (s *SQLiteStore) CountBookings(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrNotInitialized
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pethotel`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

// HealthCheck verifies the database connection is healthy
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) listBookings(ctx context.Context, op, where string, args ...any) ([]*Booking, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	query := `SELECT` + bookingColumns + ` FROM pethotel ` + where + ` ORDER BY id_cliente ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	booking := &Booking{}
	var daycare string
	err := row.Scan(
		&booking.ID,
		&booking.ClientName,
		&booking.Bath,
		&booking.Grooming,
		&booking.Transport,
		&booking.Date,
		&daycare,
		&booking.HotelStay,
	)
	if err != nil {
		return nil, err
	}

	booking.DaycareDates = SplitDaycareDates(daycare)
	return booking, nil
}

// isFilePath reports whether path names a file on disk rather than an
// in-memory database or a URI.
func isFilePath(path string) bool {
	return path != ":memory:" && !strings.HasPrefix(path, "file:")
}
