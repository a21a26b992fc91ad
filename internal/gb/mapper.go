package gb

import "fmt"

const (
	romBankSizeBytes = 0x4000
	ramBankSizeBytes = 0x2000
)

// Mapper translates 16-bit cartridge addresses into bank-aware ROM/RAM
// offsets and interprets control-register writes. Accesses outside any
// declared range return ErrOutOfBounds.
type Mapper interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, data uint8) error
}

// cartridge-type codes from header byte 0x0147
const (
	cartTypeRomOnly       = 0x00
	cartTypeMbc1          = 0x01
	cartTypeMbc1Ram       = 0x02
	cartTypeMbc1RamBat    = 0x03
	cartTypeRomRam        = 0x08
	cartTypeRomRamBat     = 0x09
	cartTypeMbc3TimerBat  = 0x0F
	cartTypeMbc3TimerRam  = 0x10
	cartTypeMbc3          = 0x11
	cartTypeMbc3Ram       = 0x12
	cartTypeMbc3RamBat    = 0x13
	cartTypeMbc2          = 0x05
	cartTypeMbc2Bat       = 0x06
	cartTypeMmm01         = 0x0B
	cartTypeMbc5          = 0x19
	cartTypeMbc6          = 0x20
	cartTypeMbc7          = 0x22
	cartTypeHuc3          = 0xFE
	cartTypeHuc1          = 0xFF
)

func newMapper(typeCode uint8, rom, ram []uint8) (Mapper, error) {
	switch typeCode {
	case cartTypeRomOnly, cartTypeRomRam, cartTypeRomRamBat:
		return newNoMBC(rom, ram), nil
	case cartTypeMbc1, cartTypeMbc1Ram, cartTypeMbc1RamBat:
		return newMBC1(rom, ram), nil
	case cartTypeMbc3TimerBat, cartTypeMbc3TimerRam, cartTypeMbc3, cartTypeMbc3Ram, cartTypeMbc3RamBat:
		return newMBC3(rom, ram), nil
	}
	return nil, fmt.Errorf("%w: cartridge type 0x%02X (%s)", ErrUnsupportedMapper, typeCode, cartTypeName(typeCode))
}

func cartTypeName(typeCode uint8) string {
	switch typeCode {
	case cartTypeRomOnly:
		return "ROM ONLY"
	case cartTypeMbc1, cartTypeMbc1Ram, cartTypeMbc1RamBat:
		return "MBC1"
	case cartTypeMbc2, cartTypeMbc2Bat:
		return "MBC2"
	case cartTypeRomRam, cartTypeRomRamBat:
		return "ROM+RAM"
	case cartTypeMmm01:
		return "MMM01"
	case cartTypeMbc3TimerBat, cartTypeMbc3TimerRam, cartTypeMbc3, cartTypeMbc3Ram, cartTypeMbc3RamBat:
		return "MBC3"
	case cartTypeMbc5:
		return "MBC5"
	case cartTypeMbc6:
		return "MBC6"
	case cartTypeMbc7:
		return "MBC7"
	case cartTypeHuc1:
		return "HuC1"
	case cartTypeHuc3:
		return "HuC3"
	}
	return "UNKNOWN"
}

// ramEnableValue reports whether a RAM-enable register write enables
// the RAM gate. The latch opens when the low nibble equals 0xA.
func ramEnableValue(data uint8) bool {
	return data&0x0F == 0x0A
}
