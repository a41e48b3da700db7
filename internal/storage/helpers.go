package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roman-kulish/altimeter/internal/flight"
	"github.com/roman-kulish/altimeter/internal/trace"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if cErr := rb.Rollback(); cErr != nil && cErr != sql.ErrTxDone && *err == nil {
		*err = cErr
	}
}

// toNullString stores config as is when it is a string or []byte and as JSON
// otherwise.
func toNullString(config any) (sql.NullString, error) {
	switch v := config.(type) {
	case nil:
		return sql.NullString{}, nil

	case string:
		return sql.NullString{String: v, Valid: true}, nil

	case []byte:
		return sql.NullString{String: string(v), Valid: true}, nil

	default:
		p, err := json.Marshal(config)
		if err != nil {
			return sql.NullString{}, fmt.Errorf("marshaling config: %w", err)
		}
		return sql.NullString{String: string(p), Valid: true}, nil
	}
}

func toFlight(d *flightData) *flight.Flight {
	f := flight.Flight{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		Mode:      d.Mode,
		Source:    d.Source,
		RawBytes:  d.RawBytes,
	}
	if d.Profile.Valid {
		f.Profile = &d.Profile.String
	}
	return &f
}

func toSampleData(flightID int64, seq int, s trace.Sample) *sampleData {
	return &sampleData{
		FlightID: flightID,
		Seq:      seq,
		Time:     s.Time,
		Altitude: s.Altitude,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner) (*flight.Flight, error) {
	var d flightData
	if err := row.Scan(&d.ID, &d.CreatedAt, &d.Mode, &d.Source, &d.RawBytes, &d.Profile); err != nil {
		return nil, err
	}
	return toFlight(&d), nil
}
