// Package export holds the sinks that consume a synthesized altitude trace:
// CSV tables, plot series and plain text diagnostics.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/roman-kulish/altimeter/internal/trace"
)

// ErrZeroInterval is returned when two consecutive samples share a timestamp
// and the speed between them is undefined.
var ErrZeroInterval = errors.New("zero time interval between samples")

var csvHeader = []string{"time", "altitude", "speed"}

// Row is one line of the tabular export.
type Row struct {
	Time     float64 // Seconds
	Altitude int64   // Feet, rounded
	Speed    int64   // Feet per second, rounded; 0 for the first sample
}

// Rows derives the instantaneous vertical speed of every sample and rounds
// altitude and speed for display.
func Rows(samples []trace.Sample) ([]Row, error) {
	rows := make([]Row, 0, len(samples))
	for i, s := range samples {
		row := Row{
			Time:     s.Time,
			Altitude: int64(math.Round(s.Altitude)),
		}

		if i > 0 {
			prev := samples[i-1]
			dt := s.Time - prev.Time
			if dt == 0 {
				return nil, fmt.Errorf("sample %d at %fs: %w", i, s.Time, ErrZeroInterval)
			}
			row.Speed = int64(math.Round((s.Altitude - prev.Altitude) / dt))
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes samples as time,altitude,speed records with a header line.
func WriteCSV(w io.Writer, samples []trace.Sample) error {
	rows, err := Rows(samples)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(csvHeader))
	for _, row := range rows {
		record[0] = strconv.FormatFloat(row.Time, 'f', 6, 64)
		record[1] = strconv.FormatInt(row.Altitude, 10)
		record[2] = strconv.FormatInt(row.Speed, 10)
		if err = cw.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
