package visca

import (
	"fmt"
	"os"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the usual rate for RS-232 camera links.
const DefaultBaudRate = 9600

// serialStream adapts a serial port to the Stream interface. Deadlines map
// to the port's read timeout; a timed-out read surfaces as a deadline error
// instead of the port's zero-byte success.
type serialStream struct {
	port serial.Port
}

// OpenSerial opens a serial device as a Stream, 8N1 at the given baud rate.
// A zero baud selects DefaultBaudRate.
func OpenSerial(device string, baud int) (Stream, error) {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port: %w", err)
	}
	return &serialStream{port: port}, nil
}

func (s *serialStream) Read(p []byte) (int, error) {
	n, err := s.port.Read(p)
	if n == 0 && err == nil {
		return 0, os.ErrDeadlineExceeded
	}
	return n, err
}

func (s *serialStream) Write(p []byte) (int, error) { return s.port.Write(p) }

func (s *serialStream) Close() error { return s.port.Close() }

func (s *serialStream) SetReadDeadline(t time.Time) error {
	d := time.Until(t)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return s.port.SetReadTimeout(d)
}
