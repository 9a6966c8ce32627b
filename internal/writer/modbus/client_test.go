// internal/writer/modbus/client_test.go
package modbus

import (
	"bytes"
	"testing"
)

func TestRegisterBytes_BigEndian(t *testing.T) {
	got := registerBytes([]uint16{0x0102, 0xA0B0})
	want := []byte{0x01, 0x02, 0xA0, 0xB0}
	if !bytes.Equal(got, want) {
		t.Fatalf("registerBytes mismatch: got=% X want=% X", got, want)
	}
}

func TestWriteRegisters_Limits(t *testing.T) {
	c := &EndpointClient{endpoint: "127.0.0.1:1502"}

	if err := c.WriteRegisters(1, 0, nil); err != nil {
		t.Fatalf("empty write should be a no-op, got %v", err)
	}
	if err := c.WriteRegisters(1, 0, make([]uint16, MaxWriteRegisters+1)); err == nil {
		t.Fatalf("expected quantity limit error")
	}
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}
