package flight

import "time"

// Flight represents one decoded recording. Each flight captures metadata
// about where the raw bytes came from and the profile used to rebuild the trace.
type Flight struct {
	ID        int64     `json:"ID"`                // Unique identifier for the flight
	CreatedAt time.Time `json:"createdAt"`         // When the flight was stored
	Mode      string    `json:"mode"`              // Profile mode name (e.g., "rocket", "kite")
	Source    string    `json:"source"`            // Where the raw bytes came from (file path, "stdin", serial port)
	RawBytes  int       `json:"rawBytes"`          // Length of the raw byte stream
	Profile   *string   `json:"profile,omitempty"` // Optional profile scalars in JSON format
}
