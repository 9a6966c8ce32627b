// internal/transceiver/serial.go
package transceiver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// SerialConfig describes a serial link to an ARINC429 interface box that
// frames each bus word as 4 bytes, most significant byte first.
type SerialConfig struct {
	Device   string
	BaudRate int
	Timeout  time.Duration
}

// Serial is a Driver over a serial port. A reader goroutine decodes words
// into a bounded queue; when the queue is full new words are dropped, the
// same way a full hardware FIFO loses data.
//
// The interface box sends each word back to back, so a read timeout in the
// middle of a word means bytes were lost: the partial word is dropped and
// framing restarts on the next byte. Any other read error stops the reader
// for good; ReadWord then reports ErrClosed and the port must be reopened.
type Serial struct {
	port   io.ReadWriteCloser
	words  chan uint32
	filter labelSet

	wmu sync.Mutex

	done    chan struct{}
	errOnce sync.Once
	err     error
}

// OpenSerial opens the port and starts the reader.
func OpenSerial(cfg SerialConfig) (*Serial, error) {
	if cfg.Device == "" {
		return nil, errors.New("transceiver serial: device required")
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transceiver serial: open %s: %w", cfg.Device, err)
	}

	return newSerial(port, FIFODepth), nil
}

func newSerial(port io.ReadWriteCloser, depth int) *Serial {
	s := &Serial{
		port:  port,
		words: make(chan uint32, depth),
		done:  make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *Serial) readLoop() {
	defer close(s.done)

	var buf [4]byte
	n := 0

	for {
		m, err := s.port.Read(buf[n:])
		n += m

		if n == len(buf) {
			w := binary.BigEndian.Uint32(buf[:])
			n = 0
			if s.filter.accepts(w) {
				select {
				case s.words <- w:
				default:
				}
			}
		}

		if err != nil {
			if errors.Is(err, serial.ErrTimeout) {
				// idle line: resync
				n = 0
				continue
			}
			s.fail(err)
			return
		}
	}
}

func (s *Serial) fail(err error) {
	s.errOnce.Do(func() { s.err = err })
}

// Err returns the error that stopped the reader, if any.
func (s *Serial) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

func (s *Serial) WordsAvailable() bool {
	return len(s.words) > 0
}

func (s *Serial) ReadWord() (uint32, error) {
	select {
	case w := <-s.words:
		return w, nil
	default:
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return 0, ErrEmpty
}

func (s *Serial) WriteWord(word uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], word)

	s.wmu.Lock()
	defer s.wmu.Unlock()
	_, err := s.port.Write(buf[:])
	return err
}

func (s *Serial) SetLabelFilter(labels []arinc.Label) error {
	return s.filter.replace(labels)
}

// Close closes the port and waits for the reader to exit.
func (s *Serial) Close() error {
	err := s.port.Close()
	<-s.done
	return err
}
