package stores

import (
	"context"
	"errors"

	"github.com/deleonhotel/pethotel/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

const component = "booking"

// Error kinds recorded by the errors_total metric.
const (
	errorKindConnection = "connection"
	errorKindStatement  = "statement"
)

// InstrumentedStore decorates a BookingStore with logs, spans, metrics and
// audit events. Errors from the inner store are returned unchanged.
type InstrumentedStore struct {
	inner BookingStore
	tel   *telemetry.Telemetry
}

var _ BookingStore = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps inner with the given telemetry.
func NewInstrumentedStore(inner BookingStore, tel *telemetry.Telemetry) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, tel: tel}
}

// Unwrap returns the decorated store.
func (s *InstrumentedStore) Unwrap() BookingStore {
	return s.inner
}

func (s *InstrumentedStore) start(ctx context.Context, op string, attrs ...attribute.KeyValue) *telemetry.InstrumentedContext {
	return s.tel.StartOperation(ctx, component, op, attrs...)
}

// finish ends the operation, classifying err for the status label.
func (s *InstrumentedStore) finish(ic *telemetry.InstrumentedContext, err error) {
	switch {
	case err == nil:
		ic.End(nil)
	case errors.Is(err, ErrBookingNotFound):
		ic.EndWithStatus(telemetry.StatusNotFound, nil)
	case errors.Is(err, ErrNotInitialized):
		s.tel.Metrics.RecordError(errorKindConnection)
		_ = s.tel.Events.PublishStoreUnavailable(err.Error())
		ic.EndWithStatus(telemetry.StatusUnavailable, err)
	default:
		s.tel.Metrics.RecordError(errorKindStatement)
		ic.End(err)
	}
}

func (s *InstrumentedStore) publish(ic *telemetry.InstrumentedContext, err error) {
	if err != nil {
		ic.Logger.WithError(err).Warn("failed to publish audit event")
	}
}

// Close closes the inner store.
func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

// HealthCheck pings the inner store.
func (s *InstrumentedStore) HealthCheck(ctx context.Context) error {
	ic := s.start(ctx, "health_check")
	err := s.inner.HealthCheck(ic.Ctx)
	s.finish(ic, err)
	return err
}

// CreateBooking inserts a booking and publishes booking.created.
func (s *InstrumentedStore) CreateBooking(ctx context.Context, booking *Booking) error {
	var attrs []attribute.KeyValue
	if booking != nil {
		attrs = append(attrs, telemetry.AttrBookingDate.String(booking.Date))
	}
	ic := s.start(ctx, "create", attrs...)

	err := s.inner.CreateBooking(ic.Ctx, booking)
	if err == nil {
		ic.Span.SetAttributes(telemetry.AttrBookingID.Int64(booking.ID))
		ic.Logger = ic.Logger.WithBookingID(booking.ID)
		s.publish(ic, s.tel.Events.PublishBookingCreated(booking.ID, booking.ClientName, booking.Date))
	}
	s.finish(ic, err)
	return err
}

// UpdateBooking overwrites a booking and publishes booking.updated.
func (s *InstrumentedStore) UpdateBooking(ctx context.Context, id int64, booking *Booking) error {
	ic := s.start(ctx, "update", telemetry.AttrBookingID.Int64(id))
	ic.Logger = ic.Logger.WithBookingID(id)

	err := s.inner.UpdateBooking(ic.Ctx, id, booking)
	if err == nil {
		s.publish(ic, s.tel.Events.PublishBookingUpdated(id, booking.ClientName, booking.Date))
	}
	s.finish(ic, err)
	return err
}

// DeleteBooking deletes a booking and publishes booking.deleted.
func (s *InstrumentedStore) DeleteBooking(ctx context.Context, id int64) error {
	ic := s.start(ctx, "delete", telemetry.AttrBookingID.Int64(id))
	ic.Logger = ic.Logger.WithBookingID(id)

	err := s.inner.DeleteBooking(ic.Ctx, id)
	if err == nil {
		s.publish(ic, s.tel.Events.PublishBookingDeleted(id))
	}
	s.finish(ic, err)
	return err
}

// DeleteAllBookings deletes every booking and publishes booking.purged.
func (s *InstrumentedStore) DeleteAllBookings(ctx context.Context) (int64, error) {
	ic := s.start(ctx, "delete_all")

	n, err := s.inner.DeleteAllBookings(ic.Ctx)
	if err == nil {
		ic.Span.SetAttributes(telemetry.AttrRowCount.Int64(n))
		s.tel.Metrics.SetBookingCount(0)
		s.publish(ic, s.tel.Events.PublishBookingsPurged(n))
	}
	s.finish(ic, err)
	return n, err
}

// SetDaycareDates stores daycare dates and publishes booking.daycare_set.
func (s *InstrumentedStore) SetDaycareDates(ctx context.Context, id int64, dates []string) error {
	ic := s.start(ctx, "set_daycare_dates", telemetry.AttrBookingID.Int64(id))
	ic.Logger = ic.Logger.WithBookingID(id)

	err := s.inner.SetDaycareDates(ic.Ctx, id, dates)
	if err == nil {
		s.publish(ic, s.tel.Events.PublishDaycareDatesSet(id, dates))
	}
	s.finish(ic, err)
	return err
}

// GetBooking reads one booking.
func (s *InstrumentedStore) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	ic := s.start(ctx, "get", telemetry.AttrBookingID.Int64(id))
	ic.Logger = ic.Logger.WithBookingID(id)

	booking, err := s.inner.GetBooking(ic.Ctx, id)
	s.finish(ic, err)
	return booking, err
}

// ListBookings reads every booking.
func (s *InstrumentedStore) ListBookings(ctx context.Context) ([]*Booking, error) {
	ic := s.start(ctx, "list")
	bookings, err := s.inner.ListBookings(ic.Ctx)
	if err == nil {
		s.tel.Metrics.SetBookingCount(int64(len(bookings)))
	}
	return s.finishList(ic, bookings, err)
}

// ListBookingsByYear reads the bookings of one year.
func (s *InstrumentedStore) ListBookingsByYear(ctx context.Context, year int) ([]*Booking, error) {
	ic := s.start(ctx, "list_by_year", attribute.Int("booking.year", year))
	bookings, err := s.inner.ListBookingsByYear(ic.Ctx, year)
	return s.finishList(ic, bookings, err)
}

// ListBookingsByMonth reads the bookings of one month.
func (s *InstrumentedStore) ListBookingsByMonth(ctx context.Context, year, month int) ([]*Booking, error) {
	ic := s.start(ctx, "list_by_month",
		attribute.Int("booking.year", year),
		attribute.Int("booking.month", month),
	)
	bookings, err := s.inner.ListBookingsByMonth(ic.Ctx, year, month)
	return s.finishList(ic, bookings, err)
}

// ListBookingsByDate reads the bookings of one exact date.
func (s *InstrumentedStore) ListBookingsByDate(ctx context.Context, date string) ([]*Booking, error) {
	ic := s.start(ctx, "list_by_date", telemetry.AttrBookingDate.String(date))
	bookings, err := s.inner.ListBookingsByDate(ic.Ctx, date)
	return s.finishList(ic, bookings, err)
}

// CountBookings counts bookings and updates the bookings gauge.
func (s *InstrumentedStore) CountBookings(ctx context.Context) (int64, error) {
	ic := s.start(ctx, "count")
	n, err := s.inner.CountBookings(ic.Ctx)
	if err == nil {
		s.tel.Metrics.SetBookingCount(n)
	}
	s.finish(ic, err)
	return n, err
}

func (s *InstrumentedStore) finishList(ic *telemetry.InstrumentedContext, bookings []*Booking, err error) ([]*Booking, error) {
	if err == nil {
		ic.Span.SetAttributes(telemetry.AttrRowCount.Int(len(bookings)))
	}
	s.finish(ic, err)
	return bookings, err
}
