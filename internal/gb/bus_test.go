package gb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBus(t *testing.T) *Bus {
	t.Helper()
	cart, err := NewCartFromBytes(buildTestROM(nil))
	require.NoError(t, err)
	cart.DisableBoot()
	ic := NewIC()
	return NewBus(cart, NewPPU(ic, nullSink{}, PaletteGray), NewTimer(ic), ic, NewJoypad(ic))
}

func Test_BusRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		addr uint16
	}{
		{name: "wram low", addr: 0xC000},
		{name: "wram high", addr: 0xDFFF},
		{name: "vram", addr: 0x8123},
		{name: "oam", addr: 0xFE00},
		{name: "oam last", addr: 0xFE9F},
		{name: "hram", addr: 0xFF80},
		{name: "hram last", addr: 0xFFFE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := testBus(t)
			bus.Write8(tt.addr, 0xA5)
			assert.Equal(t, uint8(0xA5), bus.Read8(tt.addr))
		})
	}
}

func Test_BusEchoRAM(t *testing.T) {
	bus := testBus(t)

	bus.Write8(0xC123, 0x77)
	assert.Equal(t, uint8(0x77), bus.Read8(0xE123), "echo mirrors wram")

	bus.Write8(0xFDFF, 0x99)
	assert.Equal(t, uint8(0x99), bus.Read8(0xDDFF), "writes through the echo land in wram")
}

func Test_Bus16BitLittleEndian(t *testing.T) {
	bus := testBus(t)

	bus.Write16(0xC000, 0xBEEF)
	assert.Equal(t, uint8(0xEF), bus.Read8(0xC000), "low byte first")
	assert.Equal(t, uint8(0xBE), bus.Read8(0xC001))
	assert.Equal(t, uint16(0xBEEF), bus.Read16(0xC000))
}

func Test_BusSerialRegisters(t *testing.T) {
	bus := testBus(t)

	bus.Write8(addrSB, 0x41)
	bus.Write8(addrSC, 0x81)
	assert.Equal(t, uint8(0x41), bus.Read8(addrSB))
	assert.Equal(t, uint8(0x81), bus.Read8(addrSC))
}

func Test_BusUnmapped(t *testing.T) {
	bus := testBus(t)

	// 0xFEA0-0xFEFF is unusable, 0xFF4C-0xFF4F has no register.
	assert.Equal(t, uint8(0), bus.Read8(0xFEA0))
	assert.Equal(t, uint8(0), bus.Read8(0xFF4C))
	bus.Write8(0xFEA0, 0xFF) // dropped, must not fault
	assert.NoError(t, bus.TakeFault())
}

func Test_BusAudioRangeIsSilent(t *testing.T) {
	bus := testBus(t)

	bus.Write8(0xFF11, 0xBF)
	assert.Equal(t, uint8(0), bus.Read8(0xFF11))
	assert.Equal(t, uint8(0), bus.Read8(0xFF26))
}

func Test_BusRomWritesReachMapper(t *testing.T) {
	bus := testBus(t)

	// ROM-only carts drop control writes without faulting.
	bus.Write8(0x2000, 0x03)
	assert.NoError(t, bus.TakeFault())
}

func Test_BusFaultLatch(t *testing.T) {
	bus := testBus(t)

	bus.fault(ErrOutOfBounds)
	bus.fault(ErrBadValue) // second fault must not overwrite the first

	err := bus.TakeFault()
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.NoError(t, bus.TakeFault(), "latch clears once taken")
}

func Test_BusInterruptRegisters(t *testing.T) {
	bus := testBus(t)

	bus.Write8(addrIE, 0x1F)
	bus.Write8(addrIF, 0x04)
	assert.Equal(t, uint8(0x1F), bus.Read8(addrIE))
	assert.Equal(t, uint8(0x04), bus.Read8(addrIF))
}
