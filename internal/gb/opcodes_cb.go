package gb

import "fmt"

// initCBInstructions fills the secondary table reached through the 0xCB
// prefix. The whole table is a regular grid: the low three bits select
// the operand column, the rest select the operation.
func (c *CPU) initCBInstructions() {
	ops := c.operands8()

	cbOp := func(code uint8, name string, cycles uint8, fn func()) {
		c.cbInstrs[code] = instr{name: name, fn: fn, cycles: cycles}
	}

	// 0x00-0x3F: rotates, shifts, and SWAP.
	type rotOp struct {
		name string
		fn   func(uint8) uint8
	}
	rots := [8]rotOp{
		{"RLC", func(v uint8) uint8 { return c.rlc(v, true) }},
		{"RRC", func(v uint8) uint8 { return c.rrc(v, true) }},
		{"RL", func(v uint8) uint8 { return c.rl(v, true) }},
		{"RR", func(v uint8) uint8 { return c.rr(v, true) }},
		{"SLA", c.sla},
		{"SRA", c.sra},
		{"SWAP", c.swap},
		{"SRL", c.srl},
	}
	for i, rot := range rots {
		for j, r := range ops {
			cycles := uint8(4)
			if j == 6 {
				cycles = 12
			}
			cbOp(uint8(i*8+j), fmt.Sprintf("%s %s", rot.name, r.name), cycles, func() {
				r.set(rot.fn(r.get()))
			})
		}
	}

	// 0x40-0x7F: BIT n,r. Does not write back; C is preserved.
	for n := uint8(0); n < 8; n++ {
		for j, r := range ops {
			cycles := uint8(4)
			if j == 6 {
				cycles = 8
			}
			cbOp(0x40+n*8+uint8(j), fmt.Sprintf("BIT %d,%s", n, r.name), cycles, func() {
				c.bit(n, r.get())
			})
		}
	}

	// 0x80-0xBF: RES n,r and 0xC0-0xFF: SET n,r. Neither touches flags.
	for n := uint8(0); n < 8; n++ {
		mask := uint8(1) << n
		for j, r := range ops {
			cycles := uint8(4)
			if j == 6 {
				cycles = 12
			}
			cbOp(0x80+n*8+uint8(j), fmt.Sprintf("RES %d,%s", n, r.name), cycles, func() {
				r.set(r.get() &^ mask)
			})
			cbOp(0xC0+n*8+uint8(j), fmt.Sprintf("SET %d,%s", n, r.name), cycles, func() {
				r.set(r.get() | mask)
			})
		}
	}
}
