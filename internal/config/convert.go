// internal/config/convert.go
package config

import (
	"fmt"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// ToArinc converts one label definition. It does not run structural
// validation; see arinc.LabelConfig.Validate.
func (l LabelConfig) ToArinc() (arinc.LabelConfig, error) {
	label, err := arinc.ParseLabel(l.Label)
	if err != nil {
		return arinc.LabelConfig{}, err
	}
	kind, err := arinc.ParseKind(l.Kind)
	if err != nil {
		return arinc.LabelConfig{}, fmt.Errorf("label %s: %w", l.Label, err)
	}

	return arinc.LabelConfig{
		Label:         label,
		Kind:          kind,
		SigBits:       l.SigBits,
		SigDigits:     l.SigDigits,
		Resolution:    l.Resolution,
		MinValid:      l.MinValid,
		MaxValid:      l.MaxValid,
		DiscreteBits:  l.DiscreteBits,
		MinIntervalMS: l.MinIntervalMs,
		MaxIntervalMS: l.MaxIntervalMs,
	}, nil
}

// LabelConfigs converts every label of the bus in definition order.
func (b BusConfig) LabelConfigs() ([]arinc.LabelConfig, error) {
	out := make([]arinc.LabelConfig, 0, len(b.Labels))
	for _, l := range b.Labels {
		c, err := l.ToArinc()
		if err != nil {
			return nil, fmt.Errorf("bus %q: %w", b.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// TransmitLabels parses the retransmitted labels.
func (b BusConfig) TransmitLabels() ([]arinc.Label, error) {
	out := make([]arinc.Label, 0, len(b.Transmit.Labels))
	for _, s := range b.Transmit.Labels {
		l, err := arinc.ParseLabel(s)
		if err != nil {
			return nil, fmt.Errorf("bus %q: transmit: %w", b.ID, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// TransmitBus returns the id of the bus whose transmitter is used.
func (b BusConfig) TransmitBus() string {
	if b.Transmit.To == "" {
		return b.ID
	}
	return b.Transmit.To
}
