package gb

import "fmt"

// Interrupt identifies one of the five DMG interrupt sources, ordered by
// priority. The bit position in IE/IF equals the numeric value.
type Interrupt uint8

const (
	IntVBlank Interrupt = iota
	IntStat
	IntTimer
	IntSerial
	IntJoypad

	intCount
)

// Vector returns the dispatch address for the interrupt.
func (i Interrupt) Vector() uint16 {
	return 0x0040 + uint16(i)*8
}

func (i Interrupt) String() string {
	switch i {
	case IntVBlank:
		return "VBLANK"
	case IntStat:
		return "STAT"
	case IntTimer:
		return "TIMER"
	case IntSerial:
		return "SERIAL"
	case IntJoypad:
		return "JOYPAD"
	}
	return "???"
}

// InterruptFromBit maps a bit position in IE/IF to an Interrupt.
func InterruptFromBit(bit uint8) (Interrupt, error) {
	if bit >= uint8(intCount) {
		return 0, fmt.Errorf("%w: interrupt bit %d", ErrBadValue, bit)
	}
	return Interrupt(bit), nil
}

// IC holds the IE and IF registers. Only the low 5 bits are
// architecturally meaningful, but the raw bytes are stored and returned.
type IC struct {
	ie    uint8
	iflag uint8
}

func NewIC() *IC {
	return &IC{}
}

// Raise sets the IF bit for the given interrupt source.
func (ic *IC) Raise(i Interrupt) {
	ic.iflag |= 1 << i
}

// Ack clears the IF bit for a serviced interrupt.
func (ic *IC) Ack(i Interrupt) {
	ic.iflag &^= 1 << i
}

// Pending reports whether any enabled interrupt is requested,
// irrespective of IME.
func (ic *IC) Pending() bool {
	return ic.ie&ic.iflag&0x1F != 0
}

// Next returns the highest-priority pending interrupt.
func (ic *IC) Next() (Interrupt, bool) {
	pending := ic.ie & ic.iflag & 0x1F
	if pending == 0 {
		return 0, false
	}
	for bit := Interrupt(0); bit < intCount; bit++ {
		if pending&(1<<bit) != 0 {
			return bit, true
		}
	}
	return 0, false
}

func (ic *IC) ReadIE() uint8 {
	return ic.ie
}

func (ic *IC) WriteIE(data uint8) {
	ic.ie = data
}

func (ic *IC) ReadIF() uint8 {
	return ic.iflag
}

func (ic *IC) WriteIF(data uint8) {
	ic.iflag = data
}
