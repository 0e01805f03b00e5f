// Package telemetry provides observability instrumentation for pethotel.
//
// It integrates structured logging (zerolog), tracing (OpenTelemetry),
// metrics (Prometheus) and an audit event publisher.
//
// # Usage
//
//	tel, err := telemetry.NewTelemetry(telemetry.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(context.Background())
//
//	ic := tel.StartOperation(ctx, "booking", "create",
//	    telemetry.AttrBookingDate.String("2024-03-15"))
//	err = doWork(ic.Ctx)
//	ic.End(err)
//
// StartOperation opens a span named "<component>.<operation>", derives a
// component logger carrying the trace and span ids, and starts a timer. End
// closes the span, records pethotel_store_operations_total and
// pethotel_store_operation_duration_seconds, and logs the outcome: errors at
// error level, successes at debug level.
//
// # Metrics
//
// Metrics live in a private registry. A command-line process is short-lived,
// so instead of serving /metrics the registry is written on Shutdown to
// MetricsConfig.Textfile for the node_exporter textfile collector.
//
// # Events
//
// The event publisher delivers audit events (booking.created,
// booking.updated, booking.deleted, booking.purged, booking.daycare_set)
// to subscribers in publish order. In async mode a single goroutine drains a
// buffered channel; Shutdown delivers anything still buffered.
//
// # Exporters
//
//   - "stdout": print spans to stdout (development)
//   - "otlp": export via OTLP/gRPC to TracingConfig.Endpoint
//   - "none": generate spans but do not export them
package telemetry
