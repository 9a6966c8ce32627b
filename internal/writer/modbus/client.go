// internal/writer/modbus/client.go
package modbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// EndpointClient is a single TCP connection to one Modbus memory server.
// It serializes requests because it mutates SlaveId per write.
type EndpointClient struct {
	mu       sync.Mutex
	endpoint string
	handler  *modbus.TCPClientHandler
	client   modbus.Client
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &EndpointClient{
		endpoint: cfg.Endpoint,
		handler:  h,
		client:   modbus.NewClient(h),
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// MaxWriteRegisters is the FC16 quantity limit.
const MaxWriteRegisters = 123

// WriteRegisters writes one contiguous register range with FC16. The
// handler reconnects on the next request after a transport error.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	switch {
	case len(regs) == 0:
		return nil
	case len(regs) > MaxWriteRegisters:
		return fmt.Errorf("writer modbus %s: %d registers exceeds %d", c.endpoint, len(regs), MaxWriteRegisters)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID

	if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), registerBytes(regs)); err != nil {
		return fmt.Errorf("writer modbus %s unit=%d addr=%d: %w", c.endpoint, unitID, addr, err)
	}
	return nil
}

// registerBytes lays registers out big-endian, as they travel in the PDU.
func registerBytes(regs []uint16) []byte {
	out := make([]byte, 2*len(regs))
	for i, r := range regs {
		binary.BigEndian.PutUint16(out[2*i:], r)
	}
	return out
}
