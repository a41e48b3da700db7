// Package source supplies the raw byte stream recorded by the altimeter. The
// decoder only ever sees a finished byte slice; where it came from is the
// concern of this package.
package source

import (
	"fmt"
	"io"
	"os"
)

// Stdin is the source name that selects standard input.
const Stdin = "-"

// Read collects everything r yields.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// ReadNamed reads the file at name, or standard input when name is Stdin or
// empty. It returns a label for the source suitable for storing with a flight.
func ReadNamed(name string) (data []byte, label string, err error) {
	if name == "" || name == Stdin {
		data, err = Read(os.Stdin)
		return data, "stdin", err
	}

	data, err = os.ReadFile(name)
	if err != nil {
		return nil, name, fmt.Errorf("reading input file: %w", err)
	}
	return data, name, nil
}
