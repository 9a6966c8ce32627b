// internal/publish/message.go
package publish

import (
	"time"

	"github.com/tamzrod/arinc-bridge/internal/poller"
)

// BusMessage is published on <prefix>.<bus>.status.
type BusMessage struct {
	Bus              string    `json:"bus"`
	At               time.Time `json:"at"`
	NowMS            uint32    `json:"now_ms"`
	Failed           bool      `json:"failed"`
	FailureCount     uint32    `json:"failure_count"`
	LabelsConfigured int       `json:"labels_configured"`
	LabelsValid      int       `json:"labels_valid"`

	WordsRead      int `json:"words_read"`
	WordsOK        int `json:"words_ok"`
	ParityErrors   int `json:"parity_errors"`
	Unmatched      int `json:"unmatched"`
	Invalid        int `json:"invalid"`
	WordsSent      int `json:"words_sent"`
	WordsDeclined  int `json:"words_declined"`
	TransmitErrors int `json:"transmit_errors"`
}

// LabelMessage is published on <prefix>.<bus>.<label>.
type LabelMessage struct {
	Bus   string    `json:"bus"`
	Label string    `json:"label"`
	Kind  string    `json:"kind"`
	At    time.Time `json:"at"`

	RawWord  uint32  `json:"raw_word"`
	SM       uint8   `json:"sm"`
	SDI      uint8   `json:"sdi"`
	EngFloat float64 `json:"eng_float"`
	EngInt   int32   `json:"eng_int"`
	Discrete uint32  `json:"discrete"`

	LastGoodMS  uint32 `json:"last_good_ms"`
	Received    bool   `json:"received"`
	Fresh       bool   `json:"fresh"`
	NotBabbling bool   `json:"not_babbling"`
	InBounds    bool   `json:"in_bounds"`
	Valid       bool   `json:"valid"`
}

func busMessage(res poller.PollResult) BusMessage {
	return BusMessage{
		Bus:              res.BusID,
		At:               res.At,
		NowMS:            res.NowMS,
		Failed:           res.Failed,
		FailureCount:     res.FailureCount,
		LabelsConfigured: len(res.Labels),
		LabelsValid:      res.ValidCount(),
		WordsRead:        res.Drain.Read,
		WordsOK:          res.Drain.OK,
		ParityErrors:     res.Drain.Parity,
		Unmatched:        res.Drain.Unmatched,
		Invalid:          res.Drain.Invalid,
		WordsSent:        res.Transmit.Sent,
		WordsDeclined:    res.Transmit.Declined,
		TransmitErrors:   res.Transmit.Failed,
	}
}

func labelMessage(res poller.PollResult, l poller.LabelSnapshot) LabelMessage {
	return LabelMessage{
		Bus:         res.BusID,
		Label:       l.Label.String(),
		Kind:        l.Kind.String(),
		At:          res.At,
		RawWord:     l.State.RawWord,
		SM:          uint8(l.State.SM),
		SDI:         uint8(l.State.SDI),
		EngFloat:    l.State.EngFloat,
		EngInt:      l.State.EngInt,
		Discrete:    l.State.Discrete,
		LastGoodMS:  l.State.LastGoodMS,
		Received:    l.State.Received,
		Fresh:       l.State.Fresh,
		NotBabbling: l.State.NotBabbling,
		InBounds:    l.State.InBounds,
		Valid:       l.Valid,
	}
}
