package stores_test

import (
	"context"
	"fmt"
	"log"

	"github.com/deleonhotel/pethotel/pkg/stores"
)

// ExampleNewSQLiteStore demonstrates creating and initializing a new SQLite store.
func ExampleNewSQLiteStore() {
	store, err := stores.NewSQLiteStore(stores.Config{
		Path: ":memory:", // Use in-memory database for example
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	fmt.Println("Store initialized successfully")
	// Output: Store initialized successfully
}

// ExampleSQLiteStore_CreateBooking demonstrates creating and reading a booking.
func ExampleSQLiteStore_CreateBooking() {
	store, _ := stores.NewSQLiteStore(stores.Config{Path: ":memory:"})
	ctx := context.Background()
	_ = store.Init(ctx)
	defer store.Close()

	booking := &stores.Booking{
		ClientName: "Bidu",
		Bath:       true,
		Date:       "2024-03-15",
		HotelStay:  true,
	}

	if err := store.CreateBooking(ctx, booking); err != nil {
		log.Fatal(err)
	}

	retrieved, err := store.GetBooking(ctx, booking.ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Booking %d: %s on %s, bath=%t hotel=%t\n",
		retrieved.ID, retrieved.ClientName, retrieved.Date, retrieved.Bath, retrieved.HotelStay)
	// Output: Booking 1: Bidu on 2024-03-15, bath=true hotel=true
}

// ExampleSQLiteStore_SetDaycareDates demonstrates recording daycare days.
func ExampleSQLiteStore_SetDaycareDates() {
	store, _ := stores.NewSQLiteStore(stores.Config{Path: ":memory:"})
	ctx := context.Background()
	_ = store.Init(ctx)
	defer store.Close()

	booking := &stores.Booking{ClientName: "Luna", Date: "2024-03-15"}
	_ = store.CreateBooking(ctx, booking)

	_ = store.SetDaycareDates(ctx, booking.ID, []string{"2024-03-18", "2024-03-19"})

	retrieved, _ := store.GetBooking(ctx, booking.ID)
	for _, d := range retrieved.DaycareDates {
		fmt.Println(d)
	}
	// Output:
	// 2024-03-18
	// 2024-03-19
}

// ExampleSQLiteStore_ListBookingsByMonth demonstrates filtering by month.
func ExampleSQLiteStore_ListBookingsByMonth() {
	store, _ := stores.NewSQLiteStore(stores.Config{Path: ":memory:"})
	ctx := context.Background()
	_ = store.Init(ctx)
	defer store.Close()

	for _, b := range []*stores.Booking{
		{ClientName: "Rex", Date: "2024-03-01"},
		{ClientName: "Luna", Date: "2024-04-10"},
		{ClientName: "Thor", Date: "2024-03-28"},
	} {
		_ = store.CreateBooking(ctx, b)
	}

	march, err := store.ListBookingsByMonth(ctx, 2024, 3)
	if err != nil {
		log.Fatal(err)
	}

	for _, b := range march {
		fmt.Printf("%d %s %s\n", b.ID, b.ClientName, b.Date)
	}
	// Output:
	// 1 Rex 2024-03-01
	// 3 Thor 2024-03-28
}
