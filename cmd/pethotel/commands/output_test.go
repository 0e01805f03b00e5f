package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenBookings() []*stores.Booking {
	return []*stores.Booking{
		{
			ID:           1,
			ClientName:   "Bidu",
			Bath:         true,
			Transport:    true,
			Date:         "2024-03-15",
			DaycareDates: []string{"2024-03-16", "2024-03-17"},
			HotelStay:    true,
		},
		{
			ID:         2,
			ClientName: "Luna",
			Grooming:   true,
			Date:       "2024-04-01",
		},
	}
}

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestOutputFormatterTextTable(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(goldenBookings()))

	newGolden(t).Assert(t, "booking_table", buf.Bytes())
}

func TestOutputFormatterJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(goldenBookings()[0]))

	newGolden(t).Assert(t, "booking_json", buf.Bytes())
}

func TestOutputFormatterMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(message{Text: "Deleted 3 bookings", Fields: map[string]interface{}{"deleted": 3}}))
	assert.Equal(t, "Deleted 3 bookings\n", buf.String())

	buf.Reset()
	f.Format = "yaml"
	require.NoError(t, f.Success(message{Text: "Deleted 3 bookings", Fields: map[string]interface{}{"deleted": 3}}))
	assert.Contains(t, buf.String(), "message: Deleted 3 bookings")
	assert.Contains(t, buf.String(), "deleted: 3")
}

func TestOutputFormatterEmptyList(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success([]*stores.Booking{}))
	assert.Equal(t, "No bookings found\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestOutputFormatterWriteErrors(t *testing.T) {
	for _, format := range validFormats {
		t.Run(format, func(t *testing.T) {
			f := &OutputFormatter{Format: format, Writer: failingWriter{}}
			assert.Error(t, f.Success(goldenBookings()))
		})
	}
}
