package storage

import (
	_ "embed"
)

const (
	insertFlightSQL = `
INSERT INTO flights (
                     created_at,
                     mode,
                     source,
                     raw_bytes,
                     profile)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?, ?)`

	selectFlightSQL = `
SELECT 
    id, 
    created_at, 
    mode, 
    source, 
    raw_bytes,
    profile 
FROM flights 
WHERE 
    id = ?`

	selectFlightsSQL = `
SELECT 
    id, 
    created_at, 
    mode, 
    source, 
    raw_bytes,
    profile 
FROM flights
ORDER BY id`

	insertSamplesSQL = `
INSERT INTO samples (
                     flight_id,
                     seq,
                     time,
                     altitude)
VALUES `

	selectTimeBoundsSQL = `
SELECT 
    COALESCE(MIN(time), 0), 
    COALESCE(MAX(time), 0)
FROM samples
WHERE flight_id = ?`

	selectSamplesSQL = `
SELECT 
    seq,
    time, 
    altitude
FROM samples
WHERE 
    flight_id = ?
	AND time BETWEEN ? AND ?
ORDER BY seq`

	initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_samples_flight_time ON samples (flight_id, time);
CREATE INDEX IF NOT EXISTS idx_flights_mode ON flights (mode);`
)

//go:embed schema.sql
var initSchemaSQL string
