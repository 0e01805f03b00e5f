package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/deleonhotel/pethotel/pkg/stores"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess  = 0 // Successful execution
	ExitFailure  = 1 // Store or configuration failure
	ExitNotFound = 2 // Booking does not exist
	ExitUsage    = 2 // Bad arguments or flags
)

// Output formats accepted by --output.
var validFormats = []string{"text", "json", "yaml"}

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the exit code from an error. Errors that are not an
// ExitError map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func usageError(format string, args ...interface{}) *ExitError {
	return NewExitError(ExitUsage, fmt.Sprintf(format, args...))
}

// response is the envelope for json output.
type response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// OutputFormatter renders command results as text, json or yaml.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success writes data in the configured format. Text output of bookings is
// a table; anything else is printed with fmt.
func (f *OutputFormatter) Success(data interface{}) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(response{Status: "ok", Data: data})
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	switch v := data.(type) {
	case *stores.Booking:
		return writeBookingTable(f.Writer, []*stores.Booking{v})
	case []*stores.Booking:
		if len(v) == 0 {
			_, err := fmt.Fprintln(f.Writer, "No bookings found")
			return err
		}
		return writeBookingTable(f.Writer, v)
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.Writer, v.String())
		return err
	default:
		_, err := fmt.Fprintln(f.Writer, v)
		return err
	}
}

func writeBookingTable(w io.Writer, bookings []*stores.Booking) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tDATE\tBATH\tGROOMING\tTRANSPORT\tHOTEL\tDAYCARE")
	for _, b := range bookings {
		daycare := "-"
		if len(b.DaycareDates) > 0 {
			daycare = strings.Join(b.DaycareDates, ",")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.ClientName, b.Date,
			yesNo(b.Bath), yesNo(b.Grooming), yesNo(b.Transport), yesNo(b.HotelStay),
			daycare,
		)
	}
	return tw.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// message is a one-line result with optional structured fields for json
// and yaml output.
type message struct {
	Text   string                 `json:"message" yaml:"message"`
	Fields map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

func (m message) String() string {
	return m.Text
}
