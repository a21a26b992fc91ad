package gb

import "fmt"

// NoMBC is a plain cartridge of at most 32 KiB of ROM and an optional
// 8 KiB of RAM. There are no bank registers.
type NoMBC struct {
	rom []uint8
	ram []uint8
}

func newNoMBC(rom, ram []uint8) *NoMBC {
	return &NoMBC{rom: rom, ram: ram}
}

func (m *NoMBC) Read(addr uint16) (uint8, error) {
	switch {
	case addr < 0x8000:
		if int(addr) >= len(m.rom) {
			return 0xFF, nil
		}
		return m.rom[addr], nil
	case addr >= 0xA000 && addr < 0xC000:
		offset := int(addr - 0xA000)
		if offset >= len(m.ram) {
			return 0xFF, nil
		}
		return m.ram[offset], nil
	}
	return 0, fmt.Errorf("%w: nombc read at 0x%04X", ErrOutOfBounds, addr)
}

func (m *NoMBC) Write(addr uint16, data uint8) error {
	switch {
	case addr < 0x8000:
		// Stray ROM writes are common on real cartridges; drop them.
		return nil
	case addr >= 0xA000 && addr < 0xC000:
		offset := int(addr - 0xA000)
		if offset < len(m.ram) {
			m.ram[offset] = data
		}
		return nil
	}
	return fmt.Errorf("%w: nombc write at 0x%04X", ErrOutOfBounds, addr)
}
