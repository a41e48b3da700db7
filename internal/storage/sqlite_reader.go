package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roman-kulish/altimeter/internal/flight"
	"github.com/roman-kulish/altimeter/internal/trace"
)

// SampleReader provides an iterator-based interface for reading the samples
// of a flight with optional time filtering.
type SampleReader interface {
	// Flight returns metadata about the flight this reader is accessing.
	Flight() *flight.Flight

	// Next advances the iterator and returns true if there is another sample
	// to read, false when the iteration is complete or if an error occurred.
	Next(context.Context) bool

	// Current returns the current sample in the iteration.
	// If called after Next() returns false, the behavior is undefined.
	Current() trace.Sample

	// Error returns any error that occurred during iteration.
	// If Next() returns false, Error() should be checked to distinguish between
	// end of data and an error condition.
	Error() error

	// Close releases any resources associated with the reader.
	// After Close is called, the reader should not be used.
	Close() error
}

// ReaderOption configures a SampleReader with specific filtering criteria.
type ReaderOption func(*SqliteSampleReader)

// WithStartTime excludes samples with an elapsed time before t seconds.
func WithStartTime(t float64) ReaderOption {
	return func(r *SqliteSampleReader) {
		r.startTime = &t
	}
}

// WithEndTime excludes samples with an elapsed time after t seconds.
func WithEndTime(t float64) ReaderOption {
	return func(r *SqliteSampleReader) {
		r.endTime = &t
	}
}

// WithTimeRange sets both start and end time filters.
// This is a convenience function equivalent to applying both WithStartTime
// and WithEndTime.
func WithTimeRange(startTime, endTime float64) ReaderOption {
	return func(r *SqliteSampleReader) {
		r.startTime = &startTime
		r.endTime = &endTime
	}
}

// SqliteSampleReader implements SampleReader for SQLite database backend.
type SqliteSampleReader struct {
	db *sql.DB

	flightID int64
	flight   *flight.Flight

	startTime *float64 // Optional start of time range filter
	endTime   *float64 // Optional end of time range filter

	current trace.Sample
	rows    *sql.Rows
	err     error
}

var _ SampleReader = (*SqliteSampleReader)(nil)

func newSqliteSampleReader(ctx context.Context, db *sql.DB, flightID int64, opts ...ReaderOption) (*SqliteSampleReader, error) {
	sr := &SqliteSampleReader{
		db:       db,
		flightID: flightID,
	}
	for _, opt := range opts {
		opt(sr)
	}
	if err := sr.init(ctx); err != nil {
		return nil, fmt.Errorf("initializing reader: %w", err)
	}
	return sr, nil
}

func (sr *SqliteSampleReader) init(ctx context.Context) error {
	if sr.db == nil {
		return errors.New("database connection required")
	}
	if sr.flightID <= 0 {
		return errors.New("flight ID required")
	}

	steps := []struct {
		msg string
		fn  func(context.Context) error
	}{
		{msg: "loading flight", fn: sr.loadFlight},
		{msg: "initializing filters", fn: sr.initFilters},
		{msg: "initializing query", fn: sr.initQuery},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.msg, err)
		}
	}
	return nil
}

func (sr *SqliteSampleReader) loadFlight(ctx context.Context) (err error) {
	stmt, err := sr.db.PrepareContext(ctx, selectFlightSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	if sr.flight, err = scanFlight(stmt.QueryRowContext(ctx, sr.flightID)); err != nil {
		return fmt.Errorf("querying flight: %w", err)
	}
	return
}

func (sr *SqliteSampleReader) initFilters(ctx context.Context) (err error) {
	if sr.startTime != nil && sr.endTime != nil {
		if *sr.startTime > *sr.endTime {
			return fmt.Errorf("start time %gs is after end time %gs", *sr.startTime, *sr.endTime)
		}
		return nil
	}

	stmt, err := sr.db.PrepareContext(ctx, selectTimeBoundsSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	var startTime, endTime float64
	if err = stmt.QueryRowContext(ctx, sr.flightID).Scan(&startTime, &endTime); err != nil {
		return fmt.Errorf("scanning filters data: %w", err)
	}

	if sr.startTime == nil {
		sr.startTime = &startTime
	}
	if sr.endTime == nil {
		sr.endTime = &endTime
	}
	return nil
}

func (sr *SqliteSampleReader) initQuery(ctx context.Context) (err error) {
	stmt, err := sr.db.PrepareContext(ctx, selectSamplesSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	if sr.rows, err = stmt.QueryContext(ctx, sr.flightID, *sr.startTime, *sr.endTime); err != nil {
		return err
	}
	return nil
}

func (sr *SqliteSampleReader) Flight() *flight.Flight {
	return sr.flight
}

func (sr *SqliteSampleReader) Next(ctx context.Context) bool {
	if sr.err != nil || sr.rows == nil {
		return false
	}

	select {
	case <-ctx.Done():
		sr.err = ctx.Err()
		return false
	default:
	}

	if !sr.rows.Next() {
		return false
	}

	var data sampleData
	if sr.err = sr.rows.Scan(&data.Seq, &data.Time, &data.Altitude); sr.err != nil {
		sr.err = fmt.Errorf("scanning sample: %w", sr.err)
		return false
	}

	sr.current = trace.Sample{Time: data.Time, Altitude: data.Altitude}
	return true
}

func (sr *SqliteSampleReader) Current() trace.Sample {
	return sr.current
}

func (sr *SqliteSampleReader) Error() error {
	if sr.err != nil {
		return sr.err
	}
	if sr.rows != nil {
		return sr.rows.Err()
	}
	return nil
}

func (sr *SqliteSampleReader) Close() error {
	if sr.rows != nil {
		err := sr.rows.Close()
		sr.rows = nil
		return err
	}
	return nil
}

// ReadAll drains r into a slice.
func ReadAll(ctx context.Context, r SampleReader) ([]trace.Sample, error) {
	var samples []trace.Sample
	for r.Next(ctx) {
		samples = append(samples, r.Current())
	}
	if err := r.Error(); err != nil {
		return nil, err
	}
	return samples, nil
}
