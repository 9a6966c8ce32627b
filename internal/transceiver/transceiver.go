// internal/transceiver/transceiver.go

// Package transceiver moves raw 32-bit ARINC429 words between the bus
// hardware and the bridge. Words are passed through untouched: bit 31
// carries the hardware parity flag on receive.
package transceiver

import (
	"errors"
	"sync"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// MaxFilterLabels is the depth of the receive label filter.
const MaxFilterLabels = 16

var (
	ErrEmpty         = errors.New("transceiver: receive fifo empty")
	ErrClosed        = errors.New("transceiver: closed")
	ErrTooManyLabels = errors.New("transceiver: too many filter labels")
)

// Receiver is the receive side of one bus channel.
type Receiver interface {
	// WordsAvailable reports the data-ready condition.
	WordsAvailable() bool
	// ReadWord pops one word. It returns ErrEmpty when nothing is queued.
	ReadWord() (uint32, error)
}

// Transmitter is the transmit side of one bus channel.
type Transmitter interface {
	WriteWord(word uint32) error
}

// Driver is a full-duplex channel.
type Driver interface {
	Receiver
	Transmitter
	Close() error
}

// LabelFilter is implemented by receivers that can drop unwanted labels
// before they are queued. An empty list accepts every label.
type LabelFilter interface {
	SetLabelFilter(labels []arinc.Label) error
}

// labelSet is a receive filter shared by the drivers.
type labelSet struct {
	mu  sync.RWMutex
	set map[arinc.Label]struct{}
}

func (s *labelSet) replace(labels []arinc.Label) error {
	if len(labels) > MaxFilterLabels {
		return ErrTooManyLabels
	}

	var set map[arinc.Label]struct{}
	if len(labels) > 0 {
		set = make(map[arinc.Label]struct{}, len(labels))
		for _, l := range labels {
			set[l] = struct{}{}
		}
	}

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	return nil
}

func (s *labelSet) accepts(word uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set == nil {
		return true
	}
	_, ok := s.set[arinc.LabelOf(word)]
	return ok
}
