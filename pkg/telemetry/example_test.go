package telemetry_test

import (
	"context"
	"fmt"

	"github.com/deleonhotel/pethotel/pkg/telemetry"
)

// Example_basicSetup demonstrates basic telemetry setup.
func Example_basicSetup() {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = "1.0.0"

	tel, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		panic(err)
	}
	defer tel.Shutdown(context.Background())

	ctx := tel.WithContext(context.Background())

	logger := telemetry.FromContext(ctx)
	logger.Info("Application started")

	// Output can vary, so we don't specify output for this example
}

// Example_operation demonstrates instrumenting one store operation.
func Example_operation() {
	tel, _ := telemetry.NewTelemetry(telemetry.TestingConfig())
	defer tel.Shutdown(context.Background())

	ic := tel.StartOperation(context.Background(), "booking", "get",
		telemetry.AttrBookingID.Int64(42))

	// ... run the query with ic.Ctx ...

	ic.EndWithStatus(telemetry.StatusNotFound, nil)
}

// Example_eventSubscription demonstrates subscribing to audit events.
func Example_eventSubscription() {
	cfg := telemetry.TestingConfig()
	tel, _ := telemetry.NewTelemetry(cfg)
	defer tel.Shutdown(context.Background())

	tel.Events.Subscribe(func(e telemetry.Event) {
		fmt.Printf("%s: %s\n", e.Type, e.Message)
	}, telemetry.FilterByLevel(telemetry.EventLevelWarning))

	_ = tel.Events.PublishBookingCreated(1, "Bidu", "2024-03-15")
	_ = tel.Events.PublishBookingDeleted(1)
	_ = tel.Events.PublishStoreUnavailable("database not initialized")

	// Output:
	// booking.deleted: Booking 1 deleted
	// store.unavailable: Booking store unavailable: database not initialized
}
