// internal/transceiver/loopback.go
package transceiver

import (
	"sync"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// FIFODepth matches the receive FIFO of the bus transceiver chip.
const FIFODepth = 32

const txLogDepth = 256

// Loopback is an in-memory driver. Tests and replays push words with
// Inject; transmitted words are kept in a bounded log. With echo enabled
// every transmitted word is also queued for receive, which is the
// transceiver's internal self-test wiring.
type Loopback struct {
	mu     sync.Mutex
	rx     ring
	tx     ring
	echo   bool
	closed bool
	filter labelSet
}

func NewLoopback(echo bool) *Loopback {
	return &Loopback{
		rx:   newRing(FIFODepth),
		tx:   newRing(txLogDepth),
		echo: echo,
	}
}

// Inject queues a received word. When the FIFO is full the oldest word is
// lost. Words rejected by the label filter are dropped.
func (l *Loopback) Inject(words ...uint32) {
	for _, w := range words {
		if !l.filter.accepts(w) {
			continue
		}
		l.mu.Lock()
		l.rx.push(w)
		l.mu.Unlock()
	}
}

func (l *Loopback) WordsAvailable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rx.count > 0
}

func (l *Loopback) ReadWord() (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	w, ok := l.rx.pop()
	if !ok {
		return 0, ErrEmpty
	}
	return w, nil
}

func (l *Loopback) WriteWord(word uint32) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.tx.push(word)
	echo := l.echo
	l.mu.Unlock()

	if echo {
		l.Inject(word)
	}
	return nil
}

func (l *Loopback) SetLabelFilter(labels []arinc.Label) error {
	return l.filter.replace(labels)
}

// Transmitted returns the transmit log, oldest first.
func (l *Loopback) Transmitted() []uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tx.snapshot()
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// ring is a fixed-capacity FIFO that overwrites the oldest entry when full.
type ring struct {
	data       []uint32
	head, tail int // head = next pop, tail = next push
	count      int
}

func newRing(capacity int) ring {
	return ring{data: make([]uint32, capacity)}
}

func (r *ring) push(w uint32) {
	if r.count == len(r.data) {
		r.head = (r.head + 1) % len(r.data)
		r.count--
	}
	r.data[r.tail] = w
	r.tail = (r.tail + 1) % len(r.data)
	r.count++
}

func (r *ring) pop() (uint32, bool) {
	if r.count == 0 {
		return 0, false
	}
	w := r.data[r.head]
	r.head = (r.head + 1) % len(r.data)
	r.count--
	return w, true
}

func (r *ring) snapshot() []uint32 {
	out := make([]uint32, r.count)
	i := r.head
	for c := 0; c < r.count; c++ {
		out[c] = r.data[i]
		i = (i + 1) % len(r.data)
	}
	return out
}
