// internal/publish/publisher.go

// Package publish fans bus snapshots out to NATS as JSON.
//
// Subjects:
//
//	<prefix>.<bus>.status   one BusMessage per snapshot
//	<prefix>.<bus>.<label>  one LabelMessage per label, label in octal
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tamzrod/arinc-bridge/internal/poller"
)

// Config is the NATS connection config.
type Config struct {
	URL           string
	SubjectPrefix string
	Name          string
}

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	nc     conn
	closer func()
	prefix string
	logger *slog.Logger
}

// Connect dials NATS. The connection reconnects forever; publishes made
// while disconnected are buffered by the client.
func Connect(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("publish: nats url required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	name := cfg.Name
	if name == "" {
		name = "arinc-bridge"
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "err", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("publish: connect %s: %w", cfg.URL, err)
	}

	p := newPublisher(nc, cfg.SubjectPrefix, logger)
	p.closer = nc.Close
	return p, nil
}

func newPublisher(nc conn, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{nc: nc, prefix: prefix, logger: logger}
}

// Publish sends the bus status and then every label. It keeps going after
// a failed publish and returns the errors joined.
func (p *Publisher) Publish(res poller.PollResult) error {
	base := subject(p.prefix, token(res.BusID))

	var errs []error

	if err := p.send(base+".status", busMessage(res)); err != nil {
		errs = append(errs, err)
	}

	for _, l := range res.Labels {
		if err := p.send(base+"."+l.Label.String(), labelMessage(res, l)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	p.logger.Debug("snapshot published", "bus", res.BusID, "labels", len(res.Labels))
	return nil
}

func (p *Publisher) send(subj string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("publish %s: marshal: %w", subj, err)
	}
	if err := p.nc.Publish(subj, data); err != nil {
		return fmt.Errorf("publish %s: %w", subj, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}

func subject(prefix, rest string) string {
	if prefix == "" {
		return rest
	}
	return prefix + "." + rest
}

// token makes s usable as a single subject token.
func token(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		}
		return r
	}, s)
}
