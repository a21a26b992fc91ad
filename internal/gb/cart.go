package gb

import (
	"fmt"
	"os"
	"strings"
)

const (
	headerEnd       = 0x0150
	addrBootDisable = 0xFF50
)

// Header is the cartridge metadata parsed once from ROM bytes
// 0x0100-0x014F. It is immutable after load.
type Header struct {
	Title          string
	TypeCode       uint8
	TypeName       string
	RomBanks       int
	RamBanks       int
	Battery        bool
	HeaderChecksum uint8
	GlobalChecksum uint16
}

// ramBankCounts maps header byte 0x0149 to the number of 8 KiB RAM banks.
var ramBankCounts = map[uint8]int{
	0x00: 0,
	0x01: 0,
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

func parseHeader(rom []uint8) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, fmt.Errorf("%w: rom is %d bytes, need at least 0x%04X for the header", ErrRomSize, len(rom), headerEnd)
	}

	title := strings.TrimRight(string(rom[0x0134:0x0144]), "\x00")
	ramBanks, ok := ramBankCounts[rom[0x0149]]
	if !ok {
		return Header{}, fmt.Errorf("%w: ram size code 0x%02X", ErrBadValue, rom[0x0149])
	}

	typeCode := rom[0x0147]
	h := Header{
		Title:          title,
		TypeCode:       typeCode,
		TypeName:       cartTypeName(typeCode),
		RomBanks:       1 << rom[0x0148],
		RamBanks:       ramBanks,
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: uint16(rom[0x014E])<<8 | uint16(rom[0x014F]),
	}
	switch typeCode {
	case cartTypeMbc1RamBat, cartTypeRomRamBat, cartTypeMbc3TimerBat, cartTypeMbc3TimerRam, cartTypeMbc3RamBat:
		h.Battery = true
	}
	return h, nil
}

// checksum computes the header checksum over bytes 0x0134-0x014C the way
// the boot ROM does.
func checksum(rom []uint8) uint8 {
	var sum uint8
	for _, b := range rom[0x0134:0x014D] {
		sum = sum - b - 1
	}
	return sum
}

// Cart wraps the parsed header, the selected mapper, and the boot-mode
// latch. While boot mode is on, reads from 0x0000-0x00FF answer from the
// embedded boot ROM regardless of the mapper.
type Cart struct {
	header   Header
	mapper   Mapper
	ram      []uint8
	bootMode bool
}

// NewCartFromFile reads a raw ROM image and returns a Cart.
func NewCartFromFile(path string) (*Cart, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the rom file: %w", err)
	}
	cart, err := NewCartFromBytes(rom)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cart, nil
}

// NewCartFromBytes parses the header, validates the ROM size against it,
// selects the mapper variant, and allocates zeroed external RAM of the
// declared size.
func NewCartFromBytes(rom []uint8) (*Cart, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	wantSize := header.RomBanks * romBankSizeBytes
	if wantSize < 2*romBankSizeBytes {
		return nil, fmt.Errorf("%w: header declares %d banks, minimum is 2", ErrRomSize, header.RomBanks)
	}
	if len(rom) != wantSize {
		return nil, fmt.Errorf("%w: header declares %d banks (%d bytes), rom is %d bytes",
			ErrRomSize, header.RomBanks, wantSize, len(rom))
	}
	if sum := checksum(rom); sum != header.HeaderChecksum {
		logger.Warn("cart: header checksum mismatch",
			"want", header.HeaderChecksum, "got", sum)
	}

	ram := make([]uint8, header.RamBanks*ramBankSizeBytes)
	mapper, err := newMapper(header.TypeCode, rom, ram)
	if err != nil {
		return nil, err
	}

	logger.Info("cart: loaded",
		"title", header.Title,
		"mapper", header.TypeName,
		"romBanks", header.RomBanks,
		"ramBanks", header.RamBanks,
		"battery", header.Battery)

	return &Cart{
		header:   header,
		mapper:   mapper,
		ram:      ram,
		bootMode: true,
	}, nil
}

func (c *Cart) Header() Header {
	return c.header
}

// RAM exposes the external RAM slab so the host can implement battery
// saves by persisting it byte-for-byte.
func (c *Cart) RAM() []uint8 {
	return c.ram
}

func (c *Cart) Read(addr uint16) (uint8, error) {
	if c.bootMode && addr < 0x0100 {
		return bootROM[addr], nil
	}
	return c.mapper.Read(addr)
}

func (c *Cart) Write(addr uint16, data uint8) error {
	if c.bootMode && addr < 0x0100 {
		return fmt.Errorf("%w: at 0x%04X", ErrBootRomWrite, addr)
	}
	return c.mapper.Write(addr, data)
}

// ReadBootFlag services bus reads of 0xFF50.
func (c *Cart) ReadBootFlag() uint8 {
	if c.bootMode {
		return 0
	}
	return 1
}

// WriteBootFlag services bus writes of 0xFF50. Writing 0x01 switches the
// boot ROM out; the cleared state is sticky.
func (c *Cart) WriteBootFlag(data uint8) {
	if data&0x01 != 0 && c.bootMode {
		c.bootMode = false
		logger.Debug("cart: boot rom disabled")
	}
}

// DisableBoot drops the boot-ROM overlay without running it. Used by
// embedders that start straight from the cartridge entry point.
func (c *Cart) DisableBoot() {
	c.bootMode = false
}
