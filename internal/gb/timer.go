package gb

// Timer register addresses.
const (
	addrDIV  = 0xFF04
	addrTIMA = 0xFF05
	addrTMA  = 0xFF06
	addrTAC  = 0xFF07
)

// tacDividers maps the 2-bit TAC clock selector to the master-clock
// divider for TIMA.
var tacDividers = [4]uint32{1024, 16, 64, 256}

// Timer implements the DIV/TIMA/TMA/TAC register block. A hidden 32-bit
// master clock drives DIV at a fixed /256 and TIMA at the TAC-selected
// divider while the timer is enabled.
type Timer struct {
	ic *IC

	clock uint32 // master clock, wraps at 32 bits
	div   uint8
	tima  uint8
	tma   uint8

	tacRaw     uint8
	tacEnabled bool
	tacDivider uint32
}

func NewTimer(ic *IC) *Timer {
	return &Timer{
		ic:         ic,
		tacDivider: tacDividers[0],
	}
}

// Step advances the master clock by n cycles.
func (t *Timer) Step(n int) {
	for i := 0; i < n; i++ {
		t.tic()
	}
}

func (t *Timer) tic() {
	t.clock++
	if t.clock%256 == 0 {
		t.div++
	}
	if t.tacEnabled && t.clock%t.tacDivider == 0 {
		t.tima++
		if t.tima == 0 {
			// Overflow: reload from TMA and request the interrupt.
			t.tima = t.tma
			t.ic.Raise(IntTimer)
		}
	}
}

func (t *Timer) ReadIO(addr uint16) uint8 {
	switch addr {
	case addrDIV:
		return t.div
	case addrTIMA:
		return t.tima
	case addrTMA:
		return t.tma
	case addrTAC:
		return t.tacRaw
	}
	logger.Warn("timer: read of unhandled register", "addr", addr)
	return 0
}

func (t *Timer) WriteIO(addr uint16, data uint8) {
	switch addr {
	case addrDIV:
		// Any write resets DIV, the value is ignored.
		t.div = 0
	case addrTIMA:
		t.tima = data
	case addrTMA:
		t.tma = data
	case addrTAC:
		t.tacRaw = data
		t.tacEnabled = data&0x04 != 0
		t.tacDivider = tacDividers[data&0x03]
	default:
		logger.Warn("timer: write to unhandled register", "addr", addr)
	}
}
