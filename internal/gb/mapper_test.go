package gb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBankedROM returns a ROM image where the first byte of every bank
// is the bank number, so reads reveal which bank is switched in.
func buildBankedROM(banks int, typeCode, ramCode uint8) []uint8 {
	rom := make([]uint8, banks*romBankSizeBytes)
	for bank := 0; bank < banks; bank++ {
		rom[bank*romBankSizeBytes] = uint8(bank)
	}
	copy(rom[0x0134:], "BANKS")
	rom[0x0147] = typeCode
	code := uint8(0)
	for 1<<code < banks {
		code++
	}
	rom[0x0148] = code
	rom[0x0149] = ramCode
	rom[0x014D] = checksum(rom)
	return rom
}

func readByte(t *testing.T, m Mapper, addr uint16) uint8 {
	t.Helper()
	data, err := m.Read(addr)
	require.NoError(t, err)
	return data
}

func Test_NoMBC(t *testing.T) {
	rom := buildTestROM([]uint8{0x12})
	rom[0x7FFF] = 0x34
	m := newNoMBC(rom, nil)

	assert.Equal(t, uint8(0x12), readByte(t, m, 0x0000))
	assert.Equal(t, uint8(0x34), readByte(t, m, 0x7FFF))

	// ROM writes are dropped silently.
	require.NoError(t, m.Write(0x0000, 0xFF))
	assert.Equal(t, uint8(0x12), readByte(t, m, 0x0000))

	_, err := m.Read(0xC000)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, m.Write(0xC000, 0), ErrOutOfBounds)
}

func Test_MBC1_BankSelect(t *testing.T) {
	rom := buildBankedROM(8, cartTypeMbc1, 0x00)
	m := newMBC1(rom, nil)

	// Power-on state maps bank 1 to the switchable window.
	assert.Equal(t, uint8(0), readByte(t, m, 0x0000))
	assert.Equal(t, uint8(1), readByte(t, m, 0x4000))

	require.NoError(t, m.Write(0x2000, 0x03))
	assert.Equal(t, uint8(3), readByte(t, m, 0x4000))

	require.NoError(t, m.Write(0x2000, 0x06))
	assert.Equal(t, uint8(6), readByte(t, m, 0x4000))

	// Writing 0 aliases to bank 1.
	require.NoError(t, m.Write(0x2000, 0x00))
	assert.Equal(t, uint8(1), readByte(t, m, 0x4000))

	// Bank 0 stays fixed at the low window throughout.
	assert.Equal(t, uint8(0), readByte(t, m, 0x0000))
}

func Test_MBC1_RamGate(t *testing.T) {
	rom := buildBankedROM(2, cartTypeMbc1Ram, 0x02)
	ram := make([]uint8, ramBankSizeBytes)
	m := newMBC1(rom, ram)

	// Disabled RAM reads 0xFF and swallows writes.
	assert.Equal(t, uint8(0xFF), readByte(t, m, 0xA000))
	require.NoError(t, m.Write(0xA000, 0x55))
	assert.Equal(t, uint8(0), ram[0])

	require.NoError(t, m.Write(0x0000, 0x0A))
	require.NoError(t, m.Write(0xA000, 0x55))
	assert.Equal(t, uint8(0x55), readByte(t, m, 0xA000))

	// Any low nibble other than 0xA closes the gate again.
	require.NoError(t, m.Write(0x0000, 0x00))
	assert.Equal(t, uint8(0xFF), readByte(t, m, 0xA000))
}

func Test_MBC1_AdvancedMode(t *testing.T) {
	rom := buildBankedROM(128, cartTypeMbc1Ram, 0x03)
	ram := make([]uint8, 4*ramBankSizeBytes)
	m := newMBC1(rom, ram)

	// bank2 selects high ROM banks for the switchable window regardless
	// of mode.
	require.NoError(t, m.Write(0x2000, 0x01))
	require.NoError(t, m.Write(0x4000, 0x02))
	assert.Equal(t, uint8(0x41), readByte(t, m, 0x4000), "bank 0x41 = (2<<5)|1")

	// In simple mode the low window stays on bank 0 and RAM bank 0.
	assert.Equal(t, uint8(0), readByte(t, m, 0x0000))
	require.NoError(t, m.Write(0x0000, 0x0A))
	require.NoError(t, m.Write(0xA000, 0xAA))
	assert.Equal(t, uint8(0xAA), ram[0])

	// Advanced mode applies bank2 to the low window and to RAM banking.
	require.NoError(t, m.Write(0x6000, 0x01))
	assert.Equal(t, uint8(0x40), readByte(t, m, 0x0000), "low window follows bank2<<5")
	require.NoError(t, m.Write(0xA000, 0xBB))
	assert.Equal(t, uint8(0xBB), ram[2*ramBankSizeBytes])
}

func Test_MBC3_BankSelect(t *testing.T) {
	rom := buildBankedROM(8, cartTypeMbc3, 0x00)
	m := newMBC3(rom, nil)

	assert.Equal(t, uint8(1), readByte(t, m, 0x4000))

	require.NoError(t, m.Write(0x2000, 0x05))
	assert.Equal(t, uint8(5), readByte(t, m, 0x4000))

	require.NoError(t, m.Write(0x2000, 0x00))
	assert.Equal(t, uint8(1), readByte(t, m, 0x4000), "bank 0 aliases to 1")
}

func Test_MBC3_RamBanks(t *testing.T) {
	rom := buildBankedROM(2, cartTypeMbc3Ram, 0x03)
	ram := make([]uint8, 4*ramBankSizeBytes)
	m := newMBC3(rom, ram)

	require.NoError(t, m.Write(0x0000, 0x0A))
	require.NoError(t, m.Write(0x4000, 0x02)) // RAM bank 2
	require.NoError(t, m.Write(0xA000, 0x77))

	assert.Equal(t, uint8(0x77), ram[2*ramBankSizeBytes])
	assert.Equal(t, uint8(0x77), readByte(t, m, 0xA000))

	require.NoError(t, m.Write(0x4000, 0x00))
	assert.Equal(t, uint8(0), readByte(t, m, 0xA000), "bank 0 untouched")
}

func Test_MBC3_RTCLatch(t *testing.T) {
	rom := buildBankedROM(2, cartTypeMbc3TimerBat, 0x00)
	m := newMBC3(rom, nil)

	require.NoError(t, m.Write(0x0000, 0x0A))
	require.NoError(t, m.Write(0x4000, 0x08)) // seconds register
	require.NoError(t, m.Write(0xA000, 0x2A))

	// Written but not latched yet: reads still see the old snapshot.
	assert.Equal(t, uint8(0x00), readByte(t, m, 0xA000))

	require.NoError(t, m.Write(0x6000, 0x01))
	assert.Equal(t, uint8(0x2A), readByte(t, m, 0xA000))

	// A later write to the live register leaves the latch alone.
	require.NoError(t, m.Write(0xA000, 0x3B))
	assert.Equal(t, uint8(0x2A), readByte(t, m, 0xA000))
}

func Test_MBC3_DisabledGate(t *testing.T) {
	rom := buildBankedROM(2, cartTypeMbc3Ram, 0x02)
	ram := make([]uint8, ramBankSizeBytes)
	m := newMBC3(rom, ram)

	assert.Equal(t, uint8(0xFF), readByte(t, m, 0xA000))
	require.NoError(t, m.Write(0xA000, 0x11))
	assert.Equal(t, uint8(0), ram[0])
}

func Test_RamEnableValue(t *testing.T) {
	assert.True(t, ramEnableValue(0x0A))
	assert.True(t, ramEnableValue(0x1A))
	assert.True(t, ramEnableValue(0xFA))
	assert.False(t, ramEnableValue(0x00))
	assert.False(t, ramEnableValue(0x01))
	assert.False(t, ramEnableValue(0xA0))
}
