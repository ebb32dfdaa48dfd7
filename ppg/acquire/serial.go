package acquire

import (
	"fmt"
	"io"

	serial "github.com/tarm/goserial"
)

// DefaultBaud is the line rate used when none is configured.
const DefaultBaud = 115200

// SerialSource reads sample lines from a serial port, e.g. a sensor board
// printing "<ir> <red>" at every data-ready interrupt.
type SerialSource struct {
	*LineSource
	port io.ReadWriteCloser
}

// OpenSerial opens the named serial device.
func OpenSerial(name string, baud int) (*SerialSource, error) {
	if name == "" {
		return nil, fmt.Errorf("acquire: serial device name is empty")
	}
	if baud <= 0 {
		baud = DefaultBaud
	}

	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("acquire: open serial %s: %w", name, err)
	}

	return &SerialSource{
		LineSource: NewLineSource(port),
		port:       port,
	}, nil
}

// Close releases the port.
func (s *SerialSource) Close() error {
	return s.port.Close()
}
