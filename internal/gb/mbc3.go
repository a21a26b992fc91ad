package gb

import "fmt"

// rtc register indices, in 0x6000-latch snapshot order
const (
	rtcS = iota
	rtcM
	rtcH
	rtcDL
	rtcDH
	rtcRegCount
)

// MBC3 supports up to 2 MiB of ROM, 32 KiB of RAM, and a battery-backed
// real-time clock. The RTC registers are addressable and latchable but
// do not advance in this implementation.
type MBC3 struct {
	rom []uint8
	ram []uint8

	romBank uint8 // 7 bits, writing 0 reads as 1
	ramSel  uint8 // 0-3 select a RAM bank, 0x08-0x0C select an RTC register
	enabled bool  // RAM-and-timer enable latch

	rtc        [rtcRegCount]uint8
	rtcLatched [rtcRegCount]uint8
}

func newMBC3(rom, ram []uint8) *MBC3 {
	return &MBC3{rom: rom, ram: ram, romBank: 1}
}

func (m *MBC3) Read(addr uint16) (uint8, error) {
	switch {
	case addr < 0x4000:
		return m.rom[int(addr)%len(m.rom)], nil

	case addr < 0x8000:
		offset := int(addr-0x4000) + romBankSizeBytes*int(m.romBank)
		return m.rom[offset%len(m.rom)], nil

	case addr >= 0xA000 && addr < 0xC000:
		if !m.enabled {
			return 0xFF, nil
		}
		switch {
		case m.ramSel <= 0x03:
			if len(m.ram) == 0 {
				return 0xFF, nil
			}
			return m.ram[m.ramOffset(addr)], nil
		case m.ramSel >= 0x08 && m.ramSel <= 0x0C:
			return m.rtcLatched[m.ramSel-0x08], nil
		}
		logger.Warn("mbc3: read with unmapped ram/rtc selector", "sel", m.ramSel)
		return 0xFF, nil
	}
	return 0, fmt.Errorf("%w: mbc3 read at 0x%04X", ErrOutOfBounds, addr)
}

func (m *MBC3) Write(addr uint16, data uint8) error {
	switch {
	case addr < 0x2000:
		m.enabled = ramEnableValue(data)
		return nil
	case addr < 0x4000:
		m.romBank = data & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
		return nil
	case addr < 0x6000:
		m.ramSel = data
		return nil
	case addr < 0x8000:
		// Latch clock: snapshot the live RTC into the latched registers.
		m.rtcLatched = m.rtc
		return nil
	case addr >= 0xA000 && addr < 0xC000:
		if !m.enabled {
			return nil
		}
		switch {
		case m.ramSel <= 0x03:
			if len(m.ram) != 0 {
				m.ram[m.ramOffset(addr)] = data
			}
		case m.ramSel >= 0x08 && m.ramSel <= 0x0C:
			m.rtc[m.ramSel-0x08] = data
		default:
			logger.Warn("mbc3: write with unmapped ram/rtc selector", "sel", m.ramSel)
		}
		return nil
	}
	return fmt.Errorf("%w: mbc3 write at 0x%04X", ErrOutOfBounds, addr)
}

func (m *MBC3) ramOffset(addr uint16) int {
	return (int(addr-0xA000) + ramBankSizeBytes*int(m.ramSel)) % len(m.ram)
}
