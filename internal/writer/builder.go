// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/arinc-bridge/internal/config"
	wmodbus "github.com/tamzrod/arinc-bridge/internal/writer/modbus"
)

// BuildPlan converts one bus config into a Writer Plan.
// Assumes config has already passed validation and normalization.
func BuildPlan(b cfg.BusConfig, statusMemory cfg.StatusMemoryConfig) (Plan, error) {
	if b.ID == "" {
		return Plan{}, errors.New("writer: bus.id required")
	}

	plan := Plan{BusID: b.ID}

	for _, t := range b.Targets {
		plan.Targets = append(plan.Targets, TargetEndpoint{
			Endpoint:    t.Endpoint,
			UnitID:      t.UnitID,
			BaseAddress: t.BaseAddress,
		})
	}

	if b.Status != nil {
		plan.Status = &StatusPlan{
			Endpoint:   statusMemory.Endpoint,
			UnitID:     b.Status.UnitID,
			BaseSlot:   b.Status.Slot,
			DeviceName: b.Status.DeviceName,
		}
	}

	return plan, nil
}

// BuildEndpointClients creates one TCP client per unique endpoint, status
// memory included.
func BuildEndpointClients(b cfg.BusConfig, statusMemory cfg.StatusMemoryConfig) (map[string]endpointClient, func() error, error) {
	timeouts := map[string]int{}
	for _, t := range b.Targets {
		if timeouts[t.Endpoint] < t.TimeoutMs {
			timeouts[t.Endpoint] = t.TimeoutMs
		}
	}
	if b.Status != nil && statusMemory.Endpoint != "" {
		if timeouts[statusMemory.Endpoint] < statusMemory.TimeoutMs {
			timeouts[statusMemory.Endpoint] = statusMemory.TimeoutMs
		}
	}

	clients := make(map[string]endpointClient)
	var closers []func() error

	for endpoint, ms := range timeouts {
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: endpoint,
			Timeout:  time.Duration(ms) * time.Millisecond,
		})
		if err != nil {
			for _, fn := range closers {
				_ = fn()
			}
			return nil, nil, err
		}
		clients[endpoint] = c
		closers = append(closers, c.Close)
	}

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	return clients, closeAll, nil
}
