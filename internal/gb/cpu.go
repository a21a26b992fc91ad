package gb

import "fmt"

const (
	flagZ = uint8(1 << 7) // Zero
	flagN = uint8(1 << 6) // Subtract
	flagH = uint8(1 << 5) // Half-carry
	flagC = uint8(1 << 4) // Carry
)

// historyCap is the size of the PC postmortem ring.
const historyCap = 5

type instr struct {
	name   string
	fn     func()
	cycles uint8
}

// CPU is the SM83 interpreter. Two 256-entry tables map opcode bytes to
// handler closures; 0xCB is a prefix into the secondary table.
type CPU struct {
	a, f uint8
	b, c uint8
	d, e uint8
	h, l uint8

	sp uint16
	pc uint16

	ime    bool
	halted bool

	bus *Bus
	ic  *IC

	instrs   [0x100]instr
	cbInstrs [0x100]instr

	// cycles consumed by the instruction currently executing; handlers
	// of taken branches add their extra cost here.
	stepCycles int

	history [historyCap]uint16
	histPos int
	histLen int
}

func NewCPU(bus *Bus, ic *IC) *CPU {
	c := &CPU{
		bus: bus,
		ic:  ic,
	}
	c.initInstructions()
	c.initCBInstructions()
	return c
}

// ResetNoBoot sets the registers to the state the boot ROM leaves
// behind, for embedders that skip it.
func (c *CPU) ResetNoBoot() {
	c.a, c.f = 0x01, 0xB0
	c.b, c.c = 0x00, 0x13
	c.d, c.e = 0x00, 0xD8
	c.h, c.l = 0x01, 0x4D
	c.sp = 0xFFFE
	c.pc = 0x0100
	c.ime = false
	c.halted = false
}

// Step services a pending interrupt or fetches, decodes, and executes
// one instruction. It returns the number of cycles consumed.
func (c *CPU) Step() (int, error) {
	if c.ime {
		if irq, ok := c.ic.Next(); ok {
			c.serviceInterrupt(irq)
			return 20, c.bus.TakeFault()
		}
	}

	if c.halted {
		if !c.ic.Pending() {
			return 4, nil
		}
		c.halted = false
	}

	c.recordPC()
	opcode := c.fetch8()
	in := c.instrs[opcode]
	if in.fn == nil {
		return 0, fmt.Errorf("%w: opcode 0x%02X at 0x%04X", ErrInvalidOpcode, opcode, c.pc-1)
	}
	c.stepCycles = int(in.cycles)
	in.fn()
	return c.stepCycles, c.bus.TakeFault()
}

// serviceInterrupt acknowledges the highest-priority pending interrupt
// and transfers control to its vector.
func (c *CPU) serviceInterrupt(irq Interrupt) {
	c.ime = false
	c.halted = false
	c.ic.Ack(irq)
	c.push16(c.pc)
	c.pc = irq.Vector()
	logger.Debug("cpu: interrupt dispatched", "irq", irq.String(), "vector", c.pc)
}

func (c *CPU) recordPC() {
	c.history[c.histPos] = c.pc
	c.histPos = (c.histPos + 1) % historyCap
	if c.histLen < historyCap {
		c.histLen++
	}
}

// History returns the most recent instruction addresses, oldest first.
func (c *CPU) History() []uint16 {
	out := make([]uint16, 0, c.histLen)
	start := (c.histPos - c.histLen + historyCap) % historyCap
	for i := 0; i < c.histLen; i++ {
		out = append(out, c.history[(start+i)%historyCap])
	}
	return out
}

// memory access

func (c *CPU) read8(addr uint16) uint8 {
	return c.bus.Read8(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return c.bus.Read16(addr)
}

func (c *CPU) write8(addr uint16, data uint8) {
	c.bus.Write8(addr, data)
}

func (c *CPU) write16(addr uint16, data uint16) {
	c.bus.Write16(addr, data)
}

func (c *CPU) fetch8() uint8 {
	data := c.read8(c.pc)
	c.pc++
	return data
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return lo | hi<<8
}

// register pairs

func (c *CPU) af() uint16 { return uint16(c.a)<<8 | uint16(c.f) }
func (c *CPU) bc() uint16 { return uint16(c.b)<<8 | uint16(c.c) }
func (c *CPU) de() uint16 { return uint16(c.d)<<8 | uint16(c.e) }
func (c *CPU) hl() uint16 { return uint16(c.h)<<8 | uint16(c.l) }

// setAF masks the low nibble of F, which is hardwired to zero.
func (c *CPU) setAF(v uint16) { c.a = uint8(v >> 8); c.f = uint8(v) & 0xF0 }
func (c *CPU) setBC(v uint16) { c.b = uint8(v >> 8); c.c = uint8(v) }
func (c *CPU) setDE(v uint16) { c.d = uint8(v >> 8); c.e = uint8(v) }
func (c *CPU) setHL(v uint16) { c.h = uint8(v >> 8); c.l = uint8(v) }

// flags

func (c *CPU) getFlag(flag uint8) bool {
	return c.f&flag != 0
}

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.f |= flag
		return
	}
	c.f &^= flag
}

func (c *CPU) setZNHC(z, n, h, carry bool) {
	var f uint8
	if z {
		f |= flagZ
	}
	if n {
		f |= flagN
	}
	if h {
		f |= flagH
	}
	if carry {
		f |= flagC
	}
	c.f = f
}

// stack

func (c *CPU) push16(v uint16) {
	c.sp -= 2
	c.write16(c.sp, v)
}

func (c *CPU) pop16() uint16 {
	v := c.read16(c.sp)
	c.sp += 2
	return v
}

// 8-bit ALU. Half-carry is computed on the unwrapped nibble sums.

func (c *CPU) add8(b uint8, carryIn bool) {
	ci := uint8(0)
	if carryIn {
		ci = 1
	}
	r := uint16(c.a) + uint16(b) + uint16(ci)
	h := (c.a&0x0F)+(b&0x0F)+ci > 0x0F
	c.a = uint8(r)
	c.setZNHC(c.a == 0, false, h, r > 0xFF)
}

func (c *CPU) sub8(b uint8, carryIn bool) uint8 {
	ci := uint8(0)
	if carryIn {
		ci = 1
	}
	r := uint16(c.a) - uint16(b) - uint16(ci)
	h := uint16(c.a&0x0F) < uint16(b&0x0F)+uint16(ci)
	res := uint8(r)
	c.setZNHC(res == 0, true, h, r > 0xFF)
	return res
}

func (c *CPU) and8(b uint8) {
	c.a &= b
	c.setZNHC(c.a == 0, false, true, false)
}

func (c *CPU) or8(b uint8) {
	c.a |= b
	c.setZNHC(c.a == 0, false, false, false)
}

func (c *CPU) xor8(b uint8) {
	c.a ^= b
	c.setZNHC(c.a == 0, false, false, false)
}

// inc8/dec8 preserve the carry flag.

func (c *CPU) inc8(v uint8) uint8 {
	r := v + 1
	c.setFlag(flagZ, r == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, v&0x0F == 0x0F)
	return r
}

func (c *CPU) dec8(v uint8) uint8 {
	r := v - 1
	c.setFlag(flagZ, r == 0)
	c.setFlag(flagN, true)
	c.setFlag(flagH, v&0x0F == 0)
	return r
}

// addHL implements ADD HL,rr. Z is preserved.
func (c *CPU) addHL(v uint16) {
	hl := c.hl()
	r := uint32(hl) + uint32(v)
	c.setFlag(flagN, false)
	c.setFlag(flagH, hl&0x0FFF+v&0x0FFF > 0x0FFF)
	c.setFlag(flagC, r > 0xFFFF)
	c.setHL(uint16(r))
}

// addSPr8 implements the shared arithmetic of ADD SP,r8 and LD HL,SP+r8.
// H and C come from the unsigned low-byte addition.
func (c *CPU) addSPr8() uint16 {
	offset := int8(c.fetch8())
	r := uint16(int32(c.sp) + int32(offset))
	b := uint8(offset)
	c.setZNHC(false, false,
		c.sp&0x0F+uint16(b&0x0F) > 0x0F,
		c.sp&0xFF+uint16(b) > 0xFF)
	return r
}

// daa adjusts A to packed BCD after an addition or subtraction, driven
// by the N, H, and C flags.
func (c *CPU) daa() {
	a := c.a
	if !c.getFlag(flagN) {
		if c.getFlag(flagC) || a > 0x99 {
			a += 0x60
			c.setFlag(flagC, true)
		}
		if c.getFlag(flagH) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if c.getFlag(flagC) {
			a -= 0x60
		}
		if c.getFlag(flagH) {
			a -= 0x06
		}
	}
	c.a = a
	c.setFlag(flagZ, a == 0)
	c.setFlag(flagH, false)
}

// rotates and shifts. The zFromResult switch separates the CB-prefixed
// forms (Z from the result) from RLCA/RLA/RRCA/RRA (Z always cleared).

func (c *CPU) rlc(v uint8, zFromResult bool) uint8 {
	carry := v >> 7
	r := v<<1 | carry
	c.setZNHC(zFromResult && r == 0, false, false, carry != 0)
	return r
}

func (c *CPU) rrc(v uint8, zFromResult bool) uint8 {
	carry := v & 1
	r := v>>1 | carry<<7
	c.setZNHC(zFromResult && r == 0, false, false, carry != 0)
	return r
}

func (c *CPU) rl(v uint8, zFromResult bool) uint8 {
	r := v << 1
	if c.getFlag(flagC) {
		r |= 1
	}
	c.setZNHC(zFromResult && r == 0, false, false, v&0x80 != 0)
	return r
}

func (c *CPU) rr(v uint8, zFromResult bool) uint8 {
	r := v >> 1
	if c.getFlag(flagC) {
		r |= 0x80
	}
	c.setZNHC(zFromResult && r == 0, false, false, v&1 != 0)
	return r
}

func (c *CPU) sla(v uint8) uint8 {
	r := v << 1
	c.setZNHC(r == 0, false, false, v&0x80 != 0)
	return r
}

func (c *CPU) sra(v uint8) uint8 {
	r := v>>1 | v&0x80
	c.setZNHC(r == 0, false, false, v&1 != 0)
	return r
}

func (c *CPU) srl(v uint8) uint8 {
	r := v >> 1
	c.setZNHC(r == 0, false, false, v&1 != 0)
	return r
}

func (c *CPU) swap(v uint8) uint8 {
	r := v<<4 | v>>4
	c.setZNHC(r == 0, false, false, false)
	return r
}

// bit tests bit n of v. C is preserved.
func (c *CPU) bit(n uint8, v uint8) {
	c.setFlag(flagZ, v&(1<<n) == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, true)
}
