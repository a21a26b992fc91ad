package gb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// nullSink discards pixels.
type nullSink struct{}

func (nullSink) SetPixel(int, int, Color) {}

// countSink records every pixel it receives.
type countSink struct {
	calls  int
	colors map[Color]int
}

func newCountSink() *countSink {
	return &countSink{colors: map[Color]int{}}
}

func (s *countSink) SetPixel(x, y int, c Color) {
	s.calls++
	s.colors[c]++
}

// buildTestROM returns a minimal two-bank ROM-only image with a valid
// header and the program placed at 0x0000.
func buildTestROM(program []uint8) []uint8 {
	rom := make([]uint8, 2*romBankSizeBytes)
	copy(rom, program)
	copy(rom[0x0134:], "TEST")
	rom[0x0147] = cartTypeRomOnly
	rom[0x0148] = 0x01 // 1<<1 = two banks
	rom[0x0149] = 0x00
	rom[0x014D] = checksum(rom)
	return rom
}

// testGameBoy wires a machine around the program with the boot ROM
// switched out, so execution starts at 0x0000.
func testGameBoy(t *testing.T, program []uint8) *GameBoy {
	t.Helper()
	cart, err := NewCartFromBytes(buildTestROM(program))
	require.NoError(t, err)
	machine := New(cart, nullSink{}, PaletteGray)
	machine.cart.DisableBoot()
	return machine
}

// run executes n CPU steps, failing the test on any error.
func run(t *testing.T, machine *GameBoy, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := machine.Step()
		require.NoError(t, err)
	}
}
