package gb

// Button identifies one of the eight DMG inputs.
type Button uint8

const (
	BtnA Button = iota
	BtnB
	BtnStart
	BtnSelect
	BtnRight
	BtnLeft
	BtnUp
	BtnDown
)

func (b Button) String() string {
	switch b {
	case BtnA:
		return "A"
	case BtnB:
		return "B"
	case BtnStart:
		return "START"
	case BtnSelect:
		return "SELECT"
	case BtnRight:
		return "RIGHT"
	case BtnLeft:
		return "LEFT"
	case BtnUp:
		return "UP"
	case BtnDown:
		return "DOWN"
	}
	return "???"
}

const (
	joypSelectDpad    = uint8(1 << 4) // 0 = d-pad visible in the low nibble
	joypSelectButtons = uint8(1 << 5) // 0 = buttons visible in the low nibble
)

// Joypad implements the P1 register at 0xFF00. The two 4-bit latches
// hold 1 for released and 0 for pressed.
type Joypad struct {
	ic *IC

	buttons uint8 // A, B, Start, Select at bits 0-3
	dpad    uint8 // Right, Left, Up, Down at bits 0-3
	sel     uint8 // select bits 4-5 as last written
}

func NewJoypad(ic *IC) *Joypad {
	return &Joypad{
		ic:      ic,
		buttons: 0x0F,
		dpad:    0x0F,
		sel:     joypSelectDpad | joypSelectButtons,
	}
}

func (j *Joypad) Read() uint8 {
	v := 0xC0 | j.sel | 0x0F
	if j.sel&joypSelectDpad == 0 {
		v &= 0xF0 | j.dpad
	}
	if j.sel&joypSelectButtons == 0 {
		v &= 0xF0 | j.buttons
	}
	return v
}

func (j *Joypad) Write(data uint8) {
	j.sel = data & (joypSelectDpad | joypSelectButtons)
}

// Press clears the latch bit for the button. A press on the currently
// selected group requests the Joypad interrupt (high-to-low rule).
func (j *Joypad) Press(b Button) {
	latch, bit := j.latchFor(b)
	was := *latch & bit
	*latch &^= bit
	if was == 0 {
		return
	}
	selected := (latch == &j.dpad && j.sel&joypSelectDpad == 0) ||
		(latch == &j.buttons && j.sel&joypSelectButtons == 0)
	if selected {
		j.ic.Raise(IntJoypad)
	}
}

// Release sets the latch bit for the button.
func (j *Joypad) Release(b Button) {
	latch, bit := j.latchFor(b)
	*latch |= bit
}

func (j *Joypad) latchFor(b Button) (*uint8, uint8) {
	switch b {
	case BtnA, BtnB, BtnStart, BtnSelect:
		return &j.buttons, 1 << b
	default:
		return &j.dpad, 1 << (b - BtnRight)
	}
}
