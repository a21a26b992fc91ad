package gb

// GameBoy owns every component and interleaves their steps. It is the
// single driver the concurrency model requires: exactly one step is in
// flight at any time.
type GameBoy struct {
	cart   *Cart
	ic     *IC
	timer  *Timer
	joypad *Joypad
	ppu    *PPU
	bus    *Bus
	cpu    *CPU
}

// New wires a machine around a loaded cartridge. The sink receives the
// rendered frames.
func New(cart *Cart, sink PixelSink, palette Palette) *GameBoy {
	ic := NewIC()
	timer := NewTimer(ic)
	joypad := NewJoypad(ic)
	ppu := NewPPU(ic, sink, palette)
	bus := NewBus(cart, ppu, timer, ic, joypad)
	cpu := NewCPU(bus, ic)

	return &GameBoy{
		cart:   cart,
		ic:     ic,
		timer:  timer,
		joypad: joypad,
		ppu:    ppu,
		bus:    bus,
		cpu:    cpu,
	}
}

// SkipBoot drops the boot-ROM overlay and puts the CPU in the post-boot
// state, starting execution at the cartridge entry point.
func (gb *GameBoy) SkipBoot() {
	gb.cart.DisableBoot()
	gb.cpu.ResetNoBoot()
}

// Step executes one CPU instruction (or interrupt dispatch) and advances
// the timer and the PPU by the same number of cycles. Timer and PPU
// interrupts raised here become visible to the CPU at its next step
// boundary.
func (gb *GameBoy) Step() (int, error) {
	cycles, err := gb.cpu.Step()
	gb.timer.Step(cycles)
	gb.ppu.Step(cycles)
	return cycles, err
}

// StepFrame runs the machine for one full frame of dots.
func (gb *GameBoy) StepFrame() error {
	for dots := 0; dots < DotsPerFrame; {
		cycles, err := gb.Step()
		if err != nil {
			return err
		}
		dots += cycles
	}
	return nil
}

// Joypad exposes the input source for the host.
func (gb *GameBoy) Joypad() *Joypad {
	return gb.joypad
}

// Cart exposes the loaded cartridge, e.g. for battery saves.
func (gb *GameBoy) Cart() *Cart {
	return gb.cart
}

// History returns the last executed instruction addresses, oldest
// first, for postmortems after a step error.
func (gb *GameBoy) History() []uint16 {
	return gb.cpu.History()
}
