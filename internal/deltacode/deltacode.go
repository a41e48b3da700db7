// Package deltacode implements the 4-bit delta code written by the altimeter
// recorder. Every byte carries two nibbles, low nibble first. A nibble maps to
// a value in [MinValue, MaxValue]; the two endpoints are escape markers that
// accumulate into a carry which the next literal nibble closes.
package deltacode

import (
	"errors"
	"fmt"
)

const (
	// MaxValue is the largest value a single nibble can carry. The range is
	// skewed to the positive side because the device climbs faster than it
	// descends.
	MaxValue = 10

	// MinValue is the smallest value a single nibble can carry.
	MinValue = MaxValue - 15
)

// ErrUnterminatedCarry is reported by the strict decoder when the stream ends
// inside an escape run.
var ErrUnterminatedCarry = errors.New("unterminated escape run")

// CarryError describes an escape run left open at the end of the stream.
type CarryError struct {
	Carry  int // Sum of the escape values that were dropped
	Offset int // Nibble offset where the run began
}

func (e *CarryError) Error() string {
	return fmt.Sprintf("%s: carry %d from nibble %d", ErrUnterminatedCarry, e.Carry, e.Offset)
}

func (e *CarryError) Unwrap() error {
	return ErrUnterminatedCarry
}

// IsEscape reports whether v is one of the escape markers.
func IsEscape(v int) bool {
	return v == MaxValue || v == MinValue
}

// Nibbles returns the nibble values of data before escape resolution, two per
// byte, low nibble first.
func Nibbles(data []byte) []int {
	values := make([]int, 0, len(data)*2)
	for _, b := range data {
		values = append(values, int(b&0x0f)+MinValue, int((b>>4)&0x0f)+MinValue)
	}
	return values
}

// Decode turns data into a sequence of deltas. It never fails: an escape run
// still open at the end of data is dropped.
func Decode(data []byte) []int {
	var d Decoder
	_, _ = d.Write(data)
	return d.Deltas()
}

// DecodeStrict decodes like Decode and returns the same deltas, but reports a
// *CarryError when the stream ends inside an escape run.
func DecodeStrict(data []byte) ([]int, error) {
	var d Decoder
	_, _ = d.Write(data)
	return d.Deltas(), d.Close()
}
