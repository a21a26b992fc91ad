package gb

import "fmt"

// MBC1 supports up to 2 MiB of ROM and 32 KiB of RAM. The 5-bit primary
// register selects the ROM bank for 0x4000-0x7FFF, the 2-bit secondary
// register selects either high ROM banks or the RAM bank depending on
// the banking mode.
type MBC1 struct {
	rom []uint8
	ram []uint8

	romBank    uint8 // 5 bits, writing 0 reads as 1
	bank2      uint8 // 2-bit secondary register
	advanced   bool  // banking-mode select, bit 0 of 0x6000-0x7FFF
	ramEnabled bool
}

func newMBC1(rom, ram []uint8) *MBC1 {
	return &MBC1{rom: rom, ram: ram, romBank: 1}
}

func (m *MBC1) Read(addr uint16) (uint8, error) {
	switch {
	case addr < 0x4000:
		offset := int(addr)
		if m.advanced {
			// On large carts the secondary register selects high ROM
			// banks for the low window too.
			offset += romBankSizeBytes * (int(m.bank2) << 5)
		}
		return m.rom[offset%len(m.rom)], nil

	case addr < 0x8000:
		bank := (int(m.bank2) << 5) | int(m.romBank)
		offset := int(addr-0x4000) + romBankSizeBytes*bank
		return m.rom[offset%len(m.rom)], nil

	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF, nil
		}
		return m.ram[m.ramOffset(addr)], nil
	}
	return 0, fmt.Errorf("%w: mbc1 read at 0x%04X", ErrOutOfBounds, addr)
}

func (m *MBC1) Write(addr uint16, data uint8) error {
	switch {
	case addr < 0x2000:
		m.ramEnabled = ramEnableValue(data)
		return nil
	case addr < 0x4000:
		m.romBank = data & 0x1F
		if m.romBank == 0 {
			// Banks 0x00/0x20/0x40/0x60 are never directly selectable.
			m.romBank = 1
		}
		return nil
	case addr < 0x6000:
		m.bank2 = data & 0x03
		return nil
	case addr < 0x8000:
		m.advanced = data&0x01 != 0
		return nil
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return nil
		}
		m.ram[m.ramOffset(addr)] = data
		return nil
	}
	return fmt.Errorf("%w: mbc1 write at 0x%04X", ErrOutOfBounds, addr)
}

func (m *MBC1) ramOffset(addr uint16) int {
	offset := int(addr - 0xA000)
	if m.advanced {
		offset += ramBankSizeBytes * int(m.bank2)
	}
	return offset % len(m.ram)
}
