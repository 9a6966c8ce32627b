// internal/poller/poller.go
package poller

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
	"github.com/tamzrod/arinc-bridge/internal/clock"
	"github.com/tamzrod/arinc-bridge/internal/metrics"
	"github.com/tamzrod/arinc-bridge/internal/registry"
	"github.com/tamzrod/arinc-bridge/internal/transceiver"
)

// DefaultDrainLimit caps the words read per tick so a babbling bus cannot
// starve the rest of the loop.
const DefaultDrainLimit = 32

// Config is the minimal runtime config the poller needs.
type Config struct {
	BusID            string
	TickInterval     time.Duration
	DrainLimit       int
	PublishInterval  time.Duration
	TransmitInterval time.Duration
	Transmit         []arinc.Label
}

// Option configures optional collaborators.
type Option func(*Poller)

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Poller) { p.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// Poller is the clock-driven owner of one bus registry.
// Only the goroutine running the poller touches the registry.
type Poller struct {
	cfg Config
	reg *registry.Registry
	rx  transceiver.Receiver
	tx  transceiver.Transmitter
	clk clock.Clock

	metrics *metrics.Metrics
	logger  *slog.Logger

	drain    DrainResult
	transmit TransmitResult
}

// New creates a poller with immutable config. tx may be nil when the bus
// retransmits nothing. When rx can filter labels, the registry's labels
// are installed as its filter (if they fit).
func New(cfg Config, reg *registry.Registry, rx transceiver.Receiver, tx transceiver.Transmitter, clk clock.Clock, opts ...Option) (*Poller, error) {
	if cfg.BusID == "" {
		return nil, errors.New("poller: bus id required")
	}
	if cfg.TickInterval <= 0 {
		return nil, errors.New("poller: tick interval must be > 0")
	}
	if cfg.PublishInterval <= 0 {
		return nil, errors.New("poller: publish interval must be > 0")
	}
	if reg == nil || rx == nil || clk == nil {
		return nil, errors.New("poller: registry, receiver and clock required")
	}
	if len(cfg.Transmit) > 0 {
		if tx == nil {
			return nil, errors.New("poller: transmit labels configured without a transmitter")
		}
		if cfg.TransmitInterval <= 0 {
			return nil, errors.New("poller: transmit interval must be > 0")
		}
	}
	if cfg.DrainLimit <= 0 {
		cfg.DrainLimit = DefaultDrainLimit
	}

	p := &Poller{
		cfg:    cfg,
		reg:    reg,
		rx:     rx,
		tx:     tx,
		clk:    clk,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	p.logger = p.logger.With("bus", cfg.BusID)

	if f, ok := rx.(transceiver.LabelFilter); ok {
		labels := reg.Labels()
		if len(labels) <= transceiver.MaxFilterLabels {
			if err := f.SetLabelFilter(labels); err != nil {
				return nil, err
			}
		} else {
			p.logger.Info("receive filter not installed", "labels", len(labels), "max", transceiver.MaxFilterLabels)
		}
	}

	return p, nil
}

// DrainOnce reads up to DrainLimit words and dispatches them. Parity
// flagged words are discarded before dispatch. Per-word failures are
// counted and never stop the drain.
func (p *Poller) DrainOnce() DrainResult {
	var res DrainResult

	for res.Read < p.cfg.DrainLimit && p.rx.WordsAvailable() {
		word, err := p.rx.ReadWord()
		if err != nil {
			if !errors.Is(err, transceiver.ErrEmpty) {
				res.LastErr = err
				p.logger.Warn("receiver read failed", "err", err)
			}
			break
		}
		res.Read++

		if arinc.ParityError(word) {
			res.Parity++
			continue
		}

		label, err := p.reg.Receive(word, p.clk.NowMS())
		switch {
		case err == nil:
			res.OK++
		case errors.Is(err, arinc.ErrNoMatchingLabel):
			res.Unmatched++
		default:
			res.Invalid++
			res.LastErr = err
			p.logger.Debug("word rejected", "label", label.String(), "word", word, "err", err)
		}
	}

	p.drain.add(res)

	p.metrics.Received(p.cfg.BusID, metrics.OutcomeOK, res.OK)
	p.metrics.Received(p.cfg.BusID, metrics.OutcomeParity, res.Parity)
	p.metrics.Received(p.cfg.BusID, metrics.OutcomeUnmatched, res.Unmatched)
	p.metrics.Received(p.cfg.BusID, metrics.OutcomeInvalid, res.Invalid)

	return res
}

// TickOnce advances the bus failure tracker and reports the failed state.
func (p *Poller) TickOnce() bool {
	return p.reg.Tick()
}

// TransmitOnce retransmits every configured label that is currently valid.
// Declined labels are normal: they are stale, babbling or never received.
func (p *Poller) TransmitOnce() TransmitResult {
	var res TransmitResult
	if p.tx == nil {
		return res
	}

	now := p.clk.NowMS()
	for _, label := range p.cfg.Transmit {
		word, ok := p.reg.FetchIfValid(label, now)
		if !ok {
			res.Declined++
			continue
		}
		if err := p.tx.WriteWord(word); err != nil {
			res.Failed++
			res.Err = err
			continue
		}
		res.Sent++
	}

	p.transmit.add(res)

	p.metrics.Transmitted(p.cfg.BusID, metrics.OutcomeSent, res.Sent)
	p.metrics.Transmitted(p.cfg.BusID, metrics.OutcomeDeclined, res.Declined)
	p.metrics.Transmitted(p.cfg.BusID, metrics.OutcomeError, res.Failed)

	return res
}

// Snapshot copies the registry out and resets the drain and transmit
// counters accumulated since the previous snapshot.
func (p *Poller) Snapshot() PollResult {
	now := p.clk.NowMS()

	res := PollResult{
		BusID:        p.cfg.BusID,
		At:           time.Now(),
		NowMS:        now,
		Failed:       p.reg.Failed(),
		FailureCount: p.reg.FailureCount(),
		Labels:       make([]LabelSnapshot, 0, p.reg.Len()),
		Drain:        p.drain,
		Transmit:     p.transmit,
	}

	for i := 0; i < p.reg.Len(); i++ {
		e, _ := p.reg.Entry(i)
		st, err := p.reg.Latest(e.Config.Label, now)
		if err != nil {
			continue
		}
		res.Labels = append(res.Labels, LabelSnapshot{
			Label: e.Config.Label,
			Kind:  e.Config.Kind,
			State: st,
			Valid: st.Received && st.Fresh && st.NotBabbling &&
				(st.InBounds || e.Config.Kind == arinc.KindDiscrete),
		})
	}

	p.drain = DrainResult{}
	p.transmit = TransmitResult{}

	p.metrics.SetBus(p.cfg.BusID, res.Failed, res.FailureCount, res.ValidCount())

	return res
}

func (p *Poller) BusID() string { return p.cfg.BusID }
