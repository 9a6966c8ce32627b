// internal/status/label.go
package status

// Per-label register block, written to data targets at
// base_address + label_index*SlotsPerLabel.
const SlotsPerLabel = 8

const (
	LabelSlotFlags      = 0
	LabelSlotSMSDI      = 1 // SM in bits 0-1, SDI in bits 2-3
	LabelSlotEngHi      = 2
	LabelSlotEngLo      = 3
	LabelSlotRawHi      = 4
	LabelSlotRawLo      = 5
	LabelSlotDiscreteHi = 6
	LabelSlotDiscreteLo = 7
)

// Flag bits of LabelSlotFlags.
const (
	FlagReceived    uint16 = 1 << 0
	FlagFresh       uint16 = 1 << 1
	FlagNotBabbling uint16 = 1 << 2
	FlagInBounds    uint16 = 1 << 3
	FlagValid       uint16 = 1 << 4
)

// LabelRecord is what the writer may deliver for one label.
type LabelRecord struct {
	Received    bool
	Fresh       bool
	NotBabbling bool
	InBounds    bool
	Valid       bool

	SM  uint8
	SDI uint8

	EngInt   int32
	RawWord  uint32
	Discrete uint32
}

// EncodeLabel converts a LabelRecord into its register block.
// 32-bit values are split high word first; EngInt keeps its two's
// complement bits.
func EncodeLabel(r LabelRecord) []uint16 {
	regs := make([]uint16, SlotsPerLabel)

	var flags uint16
	if r.Received {
		flags |= FlagReceived
	}
	if r.Fresh {
		flags |= FlagFresh
	}
	if r.NotBabbling {
		flags |= FlagNotBabbling
	}
	if r.InBounds {
		flags |= FlagInBounds
	}
	if r.Valid {
		flags |= FlagValid
	}

	regs[LabelSlotFlags] = flags
	regs[LabelSlotSMSDI] = uint16(r.SM&0x3) | uint16(r.SDI&0x3)<<2

	eng := uint32(r.EngInt)
	regs[LabelSlotEngHi] = uint16(eng >> 16)
	regs[LabelSlotEngLo] = uint16(eng)
	regs[LabelSlotRawHi] = uint16(r.RawWord >> 16)
	regs[LabelSlotRawLo] = uint16(r.RawWord)
	regs[LabelSlotDiscreteHi] = uint16(r.Discrete >> 16)
	regs[LabelSlotDiscreteLo] = uint16(r.Discrete)

	return regs
}
