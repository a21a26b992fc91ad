package gb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseHeader(t *testing.T) {
	rom := buildTestROM(nil)
	rom[0x0147] = cartTypeMbc1RamBat
	rom[0x0149] = 0x03
	rom[0x014E] = 0x12
	rom[0x014F] = 0x34
	rom[0x014D] = checksum(rom)

	h, err := parseHeader(rom)
	require.NoError(t, err)

	assert.Equal(t, "TEST", h.Title)
	assert.Equal(t, "MBC1", h.TypeName)
	assert.Equal(t, 2, h.RomBanks)
	assert.Equal(t, 4, h.RamBanks)
	assert.True(t, h.Battery)
	assert.Equal(t, uint16(0x1234), h.GlobalChecksum)
	assert.Equal(t, rom[0x014D], h.HeaderChecksum)
}

func Test_ParseHeader_TooShort(t *testing.T) {
	_, err := parseHeader(make([]uint8, 0x100))
	assert.ErrorIs(t, err, ErrRomSize)
}

func Test_ParseHeader_BadRamCode(t *testing.T) {
	rom := buildTestROM(nil)
	rom[0x0149] = 0x07

	_, err := parseHeader(rom)
	assert.ErrorIs(t, err, ErrBadValue)
}

func Test_NewCart_SizeMismatch(t *testing.T) {
	rom := buildTestROM(nil)
	rom[0x0148] = 0x02 // header claims four banks, image has two

	_, err := NewCartFromBytes(rom)
	assert.ErrorIs(t, err, ErrRomSize)
}

func Test_NewCart_UnsupportedMapper(t *testing.T) {
	tests := []struct {
		name string
		code uint8
	}{
		{name: "mbc2", code: cartTypeMbc2},
		{name: "mbc5", code: cartTypeMbc5},
		{name: "huc1", code: cartTypeHuc1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := buildTestROM(nil)
			rom[0x0147] = tt.code

			_, err := NewCartFromBytes(rom)
			assert.ErrorIs(t, err, ErrUnsupportedMapper)
		})
	}
}

func Test_Checksum(t *testing.T) {
	rom := buildTestROM(nil)
	// The helper stamps the checksum, so the image must verify.
	assert.Equal(t, rom[0x014D], checksum(rom))

	rom[0x0134] = 'X'
	assert.NotEqual(t, rom[0x014D], checksum(rom))
}

func Test_BootOverlay(t *testing.T) {
	rom := buildTestROM([]uint8{0xAA, 0xBB})
	cart, err := NewCartFromBytes(rom)
	require.NoError(t, err)

	// While boot mode is on, the low 256 bytes answer from the boot ROM.
	data, err := cart.Read(0x0000)
	require.NoError(t, err)
	assert.Equal(t, bootROM[0], data)
	assert.Equal(t, uint8(0), cart.ReadBootFlag())

	// Writes into the boot window are a hard error.
	err = cart.Write(0x0042, 0x00)
	assert.ErrorIs(t, err, ErrBootRomWrite)

	// Addresses past the window always hit the mapper.
	data, err = cart.Read(0x0100)
	require.NoError(t, err)
	assert.Equal(t, rom[0x0100], data)

	cart.WriteBootFlag(0x01)
	assert.Equal(t, uint8(1), cart.ReadBootFlag())
	data, err = cart.Read(0x0000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAA), data)
}

func Test_BootFlagIsSticky(t *testing.T) {
	cart, err := NewCartFromBytes(buildTestROM(nil))
	require.NoError(t, err)

	cart.WriteBootFlag(0x01)
	cart.WriteBootFlag(0x00) // cannot re-enable
	assert.Equal(t, uint8(1), cart.ReadBootFlag())
}

func Test_CartRAMExposed(t *testing.T) {
	rom := buildTestROM(nil)
	rom[0x0147] = cartTypeMbc1Ram
	rom[0x0149] = 0x02
	rom[0x014D] = checksum(rom)
	cart, err := NewCartFromBytes(rom)
	require.NoError(t, err)

	assert.Len(t, cart.RAM(), ramBankSizeBytes)
}
