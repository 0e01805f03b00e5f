// Package stores provides the persistence layer for pethotel bookings.
// It includes a SQLite-backed BookingStore that owns a single connection
// to a local database file, creates the pethotel table on first use, and
// exposes CRUD operations plus year, month and exact-date queries.
//
// InstrumentedStore decorates any BookingStore with logging, tracing,
// metrics and audit events from the telemetry package.
package stores
