package storage

import (
	"context"

	"github.com/roman-kulish/altimeter/internal/flight"
	"github.com/roman-kulish/altimeter/internal/trace"
)

// Store provides an interface for persisting decoded flights and their
// altitude traces. All operations that write to the database are atomic.
type Store interface {
	// CreateFlight registers a new flight and returns its unique identifier.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - mode: Profile mode name (e.g., "rocket", "kite")
	//   - source: Origin of the raw bytes (file path, "stdin", serial port)
	//   - rawBytes: Length of the raw byte stream
	//   - profile: Optional profile. Can be string, []byte, or JSON-serializable object
	CreateFlight(ctx context.Context, mode, source string, rawBytes int, profile any) (flightID int64, err error)

	// Flight retrieves a specific flight by its ID.
	Flight(ctx context.Context, id int64) (*flight.Flight, error)

	// Flights returns all flights stored in the database, ordered by ID.
	Flights(ctx context.Context) ([]*flight.Flight, error)

	// StoreSamples saves the samples of a flight in a single transaction.
	// Samples are numbered in order, starting from 0.
	StoreSamples(ctx context.Context, flightID int64, samples []trace.Sample) error

	// ReadSamples returns a reader over the samples of a flight.
	ReadSamples(ctx context.Context, flightID int64, opts ...ReaderOption) (SampleReader, error)

	// Close releases all database connections and resources.
	// It is safe to call Close multiple times.
	Close() error
}
