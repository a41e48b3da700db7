package storage

import (
	"database/sql"
	"time"
)

type flightData struct {
	ID        int64
	CreatedAt time.Time
	Mode      string
	Source    string
	RawBytes  int
	Profile   sql.NullString
}

type sampleData struct {
	FlightID int64
	Seq      int
	Time     float64
	Altitude float64
}
