package gb

import "fmt"

// operand8 is one column of the opcode grid: a named accessor for a
// register or for the byte at (HL).
type operand8 struct {
	name string
	get  func() uint8
	set  func(uint8)
}

// operands8 returns the eight grid columns in hardware order:
// B, C, D, E, H, L, (HL), A.
func (c *CPU) operands8() [8]operand8 {
	return [8]operand8{
		{"B", func() uint8 { return c.b }, func(v uint8) { c.b = v }},
		{"C", func() uint8 { return c.c }, func(v uint8) { c.c = v }},
		{"D", func() uint8 { return c.d }, func(v uint8) { c.d = v }},
		{"E", func() uint8 { return c.e }, func(v uint8) { c.e = v }},
		{"H", func() uint8 { return c.h }, func(v uint8) { c.h = v }},
		{"L", func() uint8 { return c.l }, func(v uint8) { c.l = v }},
		{"(HL)", func() uint8 { return c.read8(c.hl()) }, func(v uint8) { c.write8(c.hl(), v) }},
		{"A", func() uint8 { return c.a }, func(v uint8) { c.a = v }},
	}
}

type operand16 struct {
	name string
	get  func() uint16
	set  func(uint16)
}

// pairs16 returns the BC/DE/HL/SP row used by the 16-bit load and
// arithmetic opcodes.
func (c *CPU) pairs16() [4]operand16 {
	return [4]operand16{
		{"BC", c.bc, c.setBC},
		{"DE", c.de, c.setDE},
		{"HL", c.hl, c.setHL},
		{"SP", func() uint16 { return c.sp }, func(v uint16) { c.sp = v }},
	}
}

// stackPairs16 returns the BC/DE/HL/AF row used by PUSH and POP.
func (c *CPU) stackPairs16() [4]operand16 {
	return [4]operand16{
		{"BC", c.bc, c.setBC},
		{"DE", c.de, c.setDE},
		{"HL", c.hl, c.setHL},
		{"AF", c.af, c.setAF},
	}
}

type condition struct {
	name string
	met  func() bool
}

// conditions returns the NZ/Z/NC/C row used by conditional jumps, calls,
// and returns.
func (c *CPU) conditions() [4]condition {
	return [4]condition{
		{"NZ", func() bool { return !c.getFlag(flagZ) }},
		{"Z", func() bool { return c.getFlag(flagZ) }},
		{"NC", func() bool { return !c.getFlag(flagC) }},
		{"C", func() bool { return c.getFlag(flagC) }},
	}
}

func (c *CPU) op(code uint8, name string, cycles uint8, fn func()) {
	c.instrs[code] = instr{name: name, fn: fn, cycles: cycles}
}

// control-flow helpers; taken branches add their extra cycle cost

func (c *CPU) jr(taken bool) {
	offset := int8(c.fetch8())
	if !taken {
		return
	}
	c.stepCycles += 4
	// offset applies after the operand byte is consumed
	c.pc = uint16(int32(c.pc) + int32(offset))
}

func (c *CPU) jp(taken bool) {
	addr := c.fetch16()
	if !taken {
		return
	}
	c.stepCycles += 4
	c.pc = addr
}

func (c *CPU) call(taken bool) {
	addr := c.fetch16()
	if !taken {
		return
	}
	c.stepCycles += 12
	c.push16(c.pc)
	c.pc = addr
}

func (c *CPU) retIf(taken bool) {
	if !taken {
		return
	}
	c.stepCycles += 12
	c.pc = c.pop16()
}

func (c *CPU) initInstructions() {
	ops := c.operands8()
	pairs := c.pairs16()
	stack := c.stackPairs16()
	conds := c.conditions()

	// LD r,r' quadrant, 0x40-0x7F. 0x76 is HALT, not LD (HL),(HL).
	for dst, d := range ops {
		for src, s := range ops {
			code := uint8(0x40 + dst*8 + src)
			if code == 0x76 {
				continue
			}
			cycles := uint8(4)
			if dst == 6 || src == 6 {
				cycles = 8
			}
			c.op(code, fmt.Sprintf("LD %s,%s", d.name, s.name), cycles, func() {
				d.set(s.get())
			})
		}
	}

	// ALU quadrant, 0x80-0xBF: ADD, ADC, SUB, SBC, AND, XOR, OR, CP
	// against each grid column.
	type aluOp struct {
		name string
		fn   func(uint8)
	}
	alu := [8]aluOp{
		{"ADD A", func(v uint8) { c.add8(v, false) }},
		{"ADC A", func(v uint8) { c.add8(v, c.getFlag(flagC)) }},
		{"SUB", func(v uint8) { c.a = c.sub8(v, false) }},
		{"SBC A", func(v uint8) { c.a = c.sub8(v, c.getFlag(flagC)) }},
		{"AND", c.and8},
		{"XOR", c.xor8},
		{"OR", c.or8},
		{"CP", func(v uint8) { c.sub8(v, false) }},
	}
	for i, a := range alu {
		for j, s := range ops {
			code := uint8(0x80 + i*8 + j)
			cycles := uint8(4)
			if j == 6 {
				cycles = 8
			}
			c.op(code, fmt.Sprintf("%s,%s", a.name, s.name), cycles, func() {
				a.fn(s.get())
			})
		}
	}

	// INC r / DEC r / LD r,d8 columns of the 0x00-0x3F quadrant.
	for i, r := range ops {
		cycles := uint8(4)
		immCycles := uint8(8)
		if i == 6 {
			cycles = 12
			immCycles = 12
		}
		c.op(uint8(0x04+i*8), fmt.Sprintf("INC %s", r.name), cycles, func() {
			r.set(c.inc8(r.get()))
		})
		c.op(uint8(0x05+i*8), fmt.Sprintf("DEC %s", r.name), cycles, func() {
			r.set(c.dec8(r.get()))
		})
		c.op(uint8(0x06+i*8), fmt.Sprintf("LD %s,d8", r.name), immCycles, func() {
			r.set(c.fetch8())
		})
	}

	// 16-bit loads and arithmetic rows.
	for i, p := range pairs {
		c.op(uint8(0x01+i*16), fmt.Sprintf("LD %s,d16", p.name), 12, func() {
			p.set(c.fetch16())
		})
		c.op(uint8(0x03+i*16), fmt.Sprintf("INC %s", p.name), 8, func() {
			p.set(p.get() + 1)
		})
		c.op(uint8(0x09+i*16), fmt.Sprintf("ADD HL,%s", p.name), 8, func() {
			c.addHL(p.get())
		})
		c.op(uint8(0x0B+i*16), fmt.Sprintf("DEC %s", p.name), 8, func() {
			p.set(p.get() - 1)
		})
	}
	for i, p := range stack {
		c.op(uint8(0xC1+i*16), fmt.Sprintf("POP %s", p.name), 12, func() {
			p.set(c.pop16())
		})
		c.op(uint8(0xC5+i*16), fmt.Sprintf("PUSH %s", p.name), 16, func() {
			c.push16(p.get())
		})
	}

	// Conditional control-flow rows.
	for i, cc := range conds {
		c.op(uint8(0x20+i*8), fmt.Sprintf("JR %s,r8", cc.name), 8, func() {
			c.jr(cc.met())
		})
		c.op(uint8(0xC0+i*8), fmt.Sprintf("RET %s", cc.name), 8, func() {
			c.retIf(cc.met())
		})
		c.op(uint8(0xC2+i*8), fmt.Sprintf("JP %s,a16", cc.name), 12, func() {
			c.jp(cc.met())
		})
		c.op(uint8(0xC4+i*8), fmt.Sprintf("CALL %s,a16", cc.name), 12, func() {
			c.call(cc.met())
		})
	}

	// RST row: CALL to a fixed low vector.
	for i := 0; i < 8; i++ {
		target := uint16(i * 8)
		c.op(uint8(0xC7+i*8), fmt.Sprintf("RST %02XH", target), 16, func() {
			c.push16(c.pc)
			c.pc = target
		})
	}

	c.op(0x00, "NOP", 4, func() {})
	c.op(0x02, "LD (BC),A", 8, func() { c.write8(c.bc(), c.a) })
	c.op(0x07, "RLCA", 4, func() { c.a = c.rlc(c.a, false) })
	c.op(0x08, "LD (a16),SP", 20, func() { c.write16(c.fetch16(), c.sp) })
	c.op(0x0A, "LD A,(BC)", 8, func() { c.a = c.read8(c.bc()) })
	c.op(0x0F, "RRCA", 4, func() { c.a = c.rrc(c.a, false) })
	// STOP is documented as "enter very-low-power mode"; treated as a
	// no-op here.
	c.op(0x10, "STOP", 4, func() {})
	c.op(0x12, "LD (DE),A", 8, func() { c.write8(c.de(), c.a) })
	c.op(0x17, "RLA", 4, func() { c.a = c.rl(c.a, false) })
	c.op(0x18, "JR r8", 8, func() { c.jr(true) })
	c.op(0x1A, "LD A,(DE)", 8, func() { c.a = c.read8(c.de()) })
	c.op(0x1F, "RRA", 4, func() { c.a = c.rr(c.a, false) })
	c.op(0x22, "LD (HL+),A", 8, func() {
		c.write8(c.hl(), c.a)
		c.setHL(c.hl() + 1)
	})
	c.op(0x27, "DAA", 4, c.daa)
	c.op(0x2A, "LD A,(HL+)", 8, func() {
		c.a = c.read8(c.hl())
		c.setHL(c.hl() + 1)
	})
	c.op(0x2F, "CPL", 4, func() {
		c.a = ^c.a
		c.setFlag(flagN, true)
		c.setFlag(flagH, true)
	})
	c.op(0x32, "LD (HL-),A", 8, func() {
		c.write8(c.hl(), c.a)
		c.setHL(c.hl() - 1)
	})
	c.op(0x37, "SCF", 4, func() {
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, true)
	})
	c.op(0x3A, "LD A,(HL-)", 8, func() {
		c.a = c.read8(c.hl())
		c.setHL(c.hl() - 1)
	})
	c.op(0x3F, "CCF", 4, func() {
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, !c.getFlag(flagC))
	})

	c.op(0x76, "HALT", 4, func() { c.halted = true })

	c.op(0xC3, "JP a16", 12, func() { c.jp(true) })
	c.op(0xC6, "ADD A,d8", 8, func() { c.add8(c.fetch8(), false) })
	c.op(0xC9, "RET", 16, func() { c.pc = c.pop16() })
	c.op(0xCB, "PREFIX CB", 4, c.prefixCB)
	c.op(0xCD, "CALL a16", 12, func() { c.call(true) })
	c.op(0xCE, "ADC A,d8", 8, func() { c.add8(c.fetch8(), c.getFlag(flagC)) })
	c.op(0xD6, "SUB d8", 8, func() { c.a = c.sub8(c.fetch8(), false) })
	c.op(0xD9, "RETI", 16, func() {
		c.pc = c.pop16()
		c.ime = true
	})
	c.op(0xDE, "SBC A,d8", 8, func() { c.a = c.sub8(c.fetch8(), c.getFlag(flagC)) })
	c.op(0xE0, "LDH (a8),A", 12, func() { c.write8(0xFF00+uint16(c.fetch8()), c.a) })
	c.op(0xE2, "LD (C),A", 8, func() { c.write8(0xFF00+uint16(c.c), c.a) })
	c.op(0xE6, "AND d8", 8, func() { c.and8(c.fetch8()) })
	c.op(0xE8, "ADD SP,r8", 16, func() { c.sp = c.addSPr8() })
	c.op(0xE9, "JP (HL)", 4, func() { c.pc = c.hl() })
	c.op(0xEA, "LD (a16),A", 16, func() { c.write8(c.fetch16(), c.a) })
	c.op(0xEE, "XOR d8", 8, func() { c.xor8(c.fetch8()) })
	c.op(0xF0, "LDH A,(a8)", 12, func() { c.a = c.read8(0xFF00 + uint16(c.fetch8())) })
	c.op(0xF2, "LD A,(C)", 8, func() { c.a = c.read8(0xFF00 + uint16(c.c)) })
	c.op(0xF3, "DI", 4, func() { c.ime = false })
	c.op(0xF6, "OR d8", 8, func() { c.or8(c.fetch8()) })
	c.op(0xF8, "LD HL,SP+r8", 12, func() { c.setHL(c.addSPr8()) })
	c.op(0xF9, "LD SP,HL", 8, func() { c.sp = c.hl() })
	c.op(0xFA, "LD A,(a16)", 16, func() { c.a = c.read8(c.fetch16()) })
	c.op(0xFB, "EI", 4, func() { c.ime = true })
	c.op(0xFE, "CP d8", 8, func() { c.sub8(c.fetch8(), false) })

	// The 11 undefined opcodes (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB,
	// 0xEC, 0xED, 0xF4, 0xFC, 0xFD) keep a nil fn; dispatching one
	// returns ErrInvalidOpcode.
}

func (c *CPU) prefixCB() {
	opcode := c.fetch8()
	in := c.cbInstrs[opcode]
	c.stepCycles += int(in.cycles)
	in.fn()
}
