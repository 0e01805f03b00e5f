package stores

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotInitialized is returned by every operation when the store has no
	// open database handle, either because Init was never called, Init
	// failed, or the store was closed.
	ErrNotInitialized = errors.New("database not initialized")

	// ErrBookingNotFound is returned by GetBooking when no row has the id.
	ErrBookingNotFound = errors.New("booking not found")
)

// DateLayout is the layout of Booking.Date and of each daycare date.
const DateLayout = "2006-01-02"

// daycareSeparator joins daycare dates in the creche column.
const daycareSeparator = ","

// Booking represents one row of the pethotel table.
//
// DaycareDates is stored as a single comma-joined column, so a nil and an
// empty list are the same value: both are written as "" and read back as nil.
type Booking struct {
	ID           int64    `json:"id" yaml:"id"`
	ClientName   string   `json:"client_name" yaml:"client_name"`
	Bath         bool     `json:"bath" yaml:"bath"`
	Grooming     bool     `json:"grooming" yaml:"grooming"`
	Transport    bool     `json:"transport" yaml:"transport"`
	Date         string   `json:"date" yaml:"date"` // YYYY-MM-DD, not enforced
	DaycareDates []string `json:"daycare_dates,omitempty" yaml:"daycare_dates,omitempty"`
	HotelStay    bool     `json:"hotel_stay" yaml:"hotel_stay"`
}

// BookingStore defines the interface for booking persistence
type BookingStore interface {
	// Lifecycle
	Close() error
	HealthCheck(ctx context.Context) error

	// Writes
	CreateBooking(ctx context.Context, booking *Booking) error
	UpdateBooking(ctx context.Context, id int64, booking *Booking) error
	DeleteBooking(ctx context.Context, id int64) error
	DeleteAllBookings(ctx context.Context) (int64, error)
	SetDaycareDates(ctx context.Context, id int64, dates []string) error

	// Reads
	GetBooking(ctx context.Context, id int64) (*Booking, error)
	ListBookings(ctx context.Context) ([]*Booking, error)
	ListBookingsByYear(ctx context.Context, year int) ([]*Booking, error)
	ListBookingsByMonth(ctx context.Context, year, month int) ([]*Booking, error)
	ListBookingsByDate(ctx context.Context, date string) ([]*Booking, error)
	CountBookings(ctx context.Context) (int64, error)
}

// JoinDaycareDates encodes a daycare date list the way it is stored.
func JoinDaycareDates(dates []string) string {
	return strings.Join(dates, daycareSeparator)
}

// SplitDaycareDates decodes the creche column. Empty elements are dropped,
// so an empty column yields a nil slice, never an empty non-nil one.
func SplitDaycareDates(value string) []string {
	if value == "" {
		return nil
	}

	var dates []string
	for _, d := range strings.Split(value, daycareSeparator) {
		d = strings.TrimSpace(d)
		if d != "" {
			dates = append(dates, d)
		}
	}
	return dates
}
