package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/roman-kulish/altimeter/internal/flight"
	"github.com/roman-kulish/altimeter/internal/trace"
)

// DefaultMaxBatchSize is the number of samples written by a single INSERT
// statement. Each sample binds four parameters, which keeps a batch well
// below the SQLite host parameter limit.
const DefaultMaxBatchSize = 200

// WithMaxBatchSize sets the maximum number of samples inserted by a single
// statement.
func WithMaxBatchSize(size int) func(*SqliteStore) {
	return func(s *SqliteStore) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// SqliteStore handles database operations
type SqliteStore struct {
	dbPath       string
	maxBatchSize int

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

var _ Store = (*SqliteStore)(nil)

// NewSqliteStore creates a new store backed by the SQLite database at dbPath.
// Connections are opened lazily; the schema is created on the first write.
func NewSqliteStore(dbPath string, options ...func(*SqliteStore)) *SqliteStore {
	s := SqliteStore{
		dbPath:       dbPath,
		maxBatchSize: DefaultMaxBatchSize,
	}
	for _, option := range options {
		option(&s)
	}
	return &s
}

func runSQLCommand(db *sql.DB, sql string) error {
	_, err := db.Exec(sql)
	return err
}

func (s *SqliteStore) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}

		if err = runSQLCommand(db, initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *SqliteStore) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

func (s *SqliteStore) CreateFlight(ctx context.Context, mode, source string, rawBytes int, profile any) (flightID int64, err error) {
	profileData, err := toNullString(profile)
	if err != nil {
		return
	}

	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertFlightSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, mode, source, rawBytes, profileData)
	if err != nil {
		err = fmt.Errorf("inserting flight: %w", err)
		return
	}

	flightID, err = result.LastInsertId()
	if err != nil {
		err = fmt.Errorf("getting flight ID: %w", err)
	}
	return
}

func (s *SqliteStore) Flight(ctx context.Context, id int64) (f *flight.Flight, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, selectFlightSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	if f, err = scanFlight(stmt.QueryRowContext(ctx, id)); err != nil {
		err = fmt.Errorf("scanning flight: %w", err)
	}
	return
}

func (s *SqliteStore) Flights(ctx context.Context) (flights []*flight.Flight, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectFlightsSQL)
	if err != nil {
		err = fmt.Errorf("querying flights: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var f *flight.Flight
		if f, err = scanFlight(rows); err != nil {
			err = fmt.Errorf("scanning flight: %w", err)
			return
		}
		flights = append(flights, f)
	}
	err = rows.Err()
	return
}

func (s *SqliteStore) StoreSamples(ctx context.Context, flightID int64, samples []trace.Sample) (err error) {
	if len(samples) == 0 {
		return
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	valuesPlaceholder := "(?, ?, ?, ?)"

	seq := 0
	for chunk := range slices.Chunk(samples, s.maxBatchSize) {
		values := make([]any, 0, len(chunk)*4)

		var sb strings.Builder
		sb.WriteString(insertSamplesSQL)

		for i, sample := range chunk {
			data := toSampleData(flightID, seq, sample)
			values = append(values, data.FlightID, data.Seq, data.Time, data.Altitude)
			seq++

			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(valuesPlaceholder)
		}

		if _, err = tx.ExecContext(ctx, sb.String(), values...); err != nil {
			return fmt.Errorf("batch inserting samples: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ReadSamples creates a new SampleReader over the samples of a flight, in
// sample order. The time filters (WithStartTime, WithEndTime, WithTimeRange)
// default to the full extent of the flight.
//
// The returned reader must be closed after use to release database resources.
// Returns error if reader creation fails or the flight doesn't exist.
func (s *SqliteStore) ReadSamples(ctx context.Context, flightID int64, opts ...ReaderOption) (SampleReader, error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}
	return newSqliteSampleReader(ctx, db, flightID, opts...)
}

func (s *SqliteStore) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			_ = runSQLCommand(s.writeDB, initIndexesSQL)

			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		s.closeErr = errors.Join(writeErr, readErr)
	})

	return s.closeErr
}
