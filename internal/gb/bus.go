package gb

// IO addresses the bus routes itself.
const (
	addrJOYP = 0xFF00
	addrSB   = 0xFF01
	addrSC   = 0xFF02
	addrIF   = 0xFF0F
	addrIE   = 0xFFFF
)

// Bus is the single fan-out point for the 16-bit address space. Every
// memory access the CPU performs goes through it.
//
// Mapper range faults cannot be threaded through every opcode handler,
// so the bus latches the first one; the CPU collects the latch when the
// instruction retires and aborts the step with it.
type Bus struct {
	cart   *Cart
	ppu    *PPU
	timer  *Timer
	ic     *IC
	joypad *Joypad

	wram *RAM
	hram *RAM
	oam  *RAM

	sb, sc uint8

	err error
}

func NewBus(cart *Cart, ppu *PPU, timer *Timer, ic *IC, joypad *Joypad) *Bus {
	return &Bus{
		cart:   cart,
		ppu:    ppu,
		timer:  timer,
		ic:     ic,
		joypad: joypad,
		wram:   NewRAM(wramSizeBytes),
		hram:   NewRAM(hramSizeBytes),
		oam:    NewRAM(oamSizeBytes),
	}
}

func (b *Bus) fault(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// TakeFault returns and clears the latched component error, if any.
func (b *Bus) TakeFault() error {
	err := b.err
	b.err = nil
	return err
}

func (b *Bus) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x8000: // cartridge ROM
		data, err := b.cart.Read(addr)
		b.fault(err)
		return data
	case addr < 0xA000: // VRAM
		return b.ppu.ReadVRAM(addr - 0x8000)
	case addr < 0xC000: // external RAM
		data, err := b.cart.Read(addr)
		b.fault(err)
		return data
	case addr < 0xE000: // WRAM
		return b.wram.Read8(addr - 0xC000)
	case addr < 0xFE00: // echo of WRAM
		return b.wram.Read8(addr - 0xE000)
	case addr < 0xFEA0: // OAM
		return b.oam.Read8(addr - 0xFE00)
	case addr == addrJOYP:
		return b.joypad.Read()
	case addr == addrSB:
		return b.sb
	case addr == addrSC:
		return b.sc
	case addr >= addrDIV && addr <= addrTAC:
		return b.timer.ReadIO(addr)
	case addr == addrIF:
		return b.ic.ReadIF()
	case addr >= 0xFF10 && addr <= 0xFF3F: // audio, not emulated
		return 0
	case addr >= addrLCDC && addr <= addrWX:
		return b.ppu.ReadIO(addr)
	case addr == addrBootDisable:
		return b.cart.ReadBootFlag()
	case addr >= 0xFF80 && addr <= 0xFFFE: // HRAM
		return b.hram.Read8(addr - 0xFF80)
	case addr == addrIE:
		return b.ic.ReadIE()
	}

	logger.Warn("bus: read of unmapped address", "addr", addr)
	return 0
}

func (b *Bus) Write8(addr uint16, data uint8) {
	switch {
	case addr < 0x8000: // cartridge control registers
		b.fault(b.cart.Write(addr, data))
	case addr < 0xA000: // VRAM
		b.ppu.WriteVRAM(addr-0x8000, data)
	case addr < 0xC000: // external RAM
		b.fault(b.cart.Write(addr, data))
	case addr < 0xE000: // WRAM
		b.wram.Write8(addr-0xC000, data)
	case addr < 0xFE00: // echo of WRAM
		b.wram.Write8(addr-0xE000, data)
	case addr < 0xFEA0: // OAM
		b.oam.Write8(addr-0xFE00, data)
	case addr == addrJOYP:
		b.joypad.Write(data)
	case addr == addrSB:
		b.sb = data
	case addr == addrSC:
		b.sc = data
	case addr >= addrDIV && addr <= addrTAC:
		b.timer.WriteIO(addr, data)
	case addr == addrIF:
		b.ic.WriteIF(data)
	case addr >= 0xFF10 && addr <= 0xFF3F: // audio, not emulated
	case addr >= addrLCDC && addr <= addrWX:
		b.ppu.WriteIO(addr, data)
	case addr == addrBootDisable:
		b.cart.WriteBootFlag(data)
	case addr >= 0xFF80 && addr <= 0xFFFE: // HRAM
		b.hram.Write8(addr-0xFF80, data)
	case addr == addrIE:
		b.ic.WriteIE(data)
	default:
		logger.Warn("bus: write to unmapped address", "addr", addr, "data", data)
	}
}

// Read16 reads two consecutive bytes in little-endian order.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read8(addr))
	hi := uint16(b.Read8(addr + 1))
	return lo | hi<<8
}

// Write16 writes two consecutive bytes in little-endian order.
func (b *Bus) Write16(addr uint16, data uint16) {
	b.Write8(addr, uint8(data))
	b.Write8(addr+1, uint8(data>>8))
}
