package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the UART speed of the recorder firmware.
	DefaultBaudRate = 9600

	// DefaultIdleTimeout is how long the line may stay silent, once the dump
	// has started, before the dump is considered complete.
	DefaultIdleTimeout = 2 * time.Second

	// DefaultMaxBytes bounds a single dump. The recorder EEPROM is far smaller.
	DefaultMaxBytes = 64 * 1024

	pollInterval = 100 * time.Millisecond
)

// Port is the subset of a serial port the reader needs.
type Port interface {
	io.ReadCloser

	// SetReadTimeout makes Read return (0, nil) after t without data.
	SetReadTimeout(t time.Duration) error
}

// PortOpener opens the serial device at path.
type PortOpener func(path string, baudRate int) (Port, error)

// OpenSerialPort opens path as an 8N1 serial port.
func OpenSerialPort(path string, baudRate int) (Port, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	return port, nil
}

// WithLogger sets the logger for the serial reader
func WithLogger(logger *slog.Logger) func(r *SerialReader) {
	return func(r *SerialReader) {
		r.logger = logger.With(slog.String("port", r.path))
	}
}

// WithBaudRate sets the port speed.
func WithBaudRate(baudRate int) func(r *SerialReader) {
	return func(r *SerialReader) {
		r.baudRate = baudRate
	}
}

// WithIdleTimeout sets how long the line may stay silent before the dump is
// considered complete.
func WithIdleTimeout(d time.Duration) func(r *SerialReader) {
	return func(r *SerialReader) {
		r.idleTimeout = d
	}
}

// WithMaxBytes bounds the number of bytes collected.
func WithMaxBytes(n int) func(r *SerialReader) {
	return func(r *SerialReader) {
		r.maxBytes = n
	}
}

// WithPortOpener replaces the function used to open the port.
func WithPortOpener(opener PortOpener) func(r *SerialReader) {
	return func(r *SerialReader) {
		r.opener = opener
	}
}

// SerialReader collects a memory dump sent by the recorder over a serial line.
type SerialReader struct {
	path        string
	baudRate    int
	idleTimeout time.Duration
	maxBytes    int

	opener PortOpener
	logger *slog.Logger
}

// NewSerialReader creates a SerialReader for the port at path with a discard
// logger.
func NewSerialReader(path string, options ...func(r *SerialReader)) *SerialReader {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // nil logger

	r := SerialReader{
		path:        path,
		baudRate:    DefaultBaudRate,
		idleTimeout: DefaultIdleTimeout,
		maxBytes:    DefaultMaxBytes,
		opener:      OpenSerialPort,
		logger:      logger,
	}

	for _, option := range options {
		option(&r)
	}

	return &r
}

// Path returns the device path of the port.
func (r *SerialReader) Path() string {
	return r.path
}

// ReadDump waits for the recorder to start sending and collects bytes until
// the line stays idle for the idle timeout, the byte limit is reached, the
// port reports end of stream or ctx is cancelled. Bytes collected before a
// cancellation are returned together with ctx.Err().
func (r *SerialReader) ReadDump(ctx context.Context) (data []byte, err error) {
	if r.maxBytes <= 0 {
		return nil, fmt.Errorf("invalid max bytes: %d", r.maxBytes)
	}
	if r.idleTimeout <= 0 {
		return nil, fmt.Errorf("invalid idle timeout: %s", r.idleTimeout)
	}

	port, err := r.opener(r.path, r.baudRate)
	if err != nil {
		return nil, fmt.Errorf("opening serial port: %w", err)
	}
	defer func() {
		if cErr := port.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing serial port: %w", cErr)
		}
	}()

	if err = port.SetReadTimeout(min(pollInterval, r.idleTimeout)); err != nil {
		return nil, fmt.Errorf("setting read timeout: %w", err)
	}

	r.logger.Info("waiting for recorder dump...", slog.Int("baudRate", r.baudRate))

	buf := make([]byte, 256)
	var lastData time.Time
	for len(data) < r.maxBytes {
		select {
		case <-ctx.Done():
			r.logger.Info("dump interrupted", slog.Int("bytes", len(data)))
			return data, ctx.Err()
		default:
		}

		n, rErr := port.Read(buf[:min(len(buf), r.maxBytes-len(data))])
		if n > 0 {
			if len(data) == 0 {
				r.logger.Info("receiving dump")
			}
			data = append(data, buf[:n]...)
			lastData = time.Now()
		}

		switch {
		case errors.Is(rErr, io.EOF):
			r.logger.Info("port closed by peer", slog.Int("bytes", len(data)))
			return data, nil

		case rErr != nil:
			return data, fmt.Errorf("reading serial port: %w", rErr)
		}

		if n == 0 && len(data) > 0 && time.Since(lastData) >= r.idleTimeout {
			break
		}
	}

	r.logger.Info("dump complete", slog.Int("bytes", len(data)))
	return data, nil
}
