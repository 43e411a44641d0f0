package nes

// The functions in this file are the per-opcode execution bodies referenced
// from opcodeTable. ALU/load variants read c.fetched (latched during the
// addressing phase) and apply immediately; RMW variants also read and write
// c.fetched, once, from the read-modify-write exec phase; store variants
// compute the byte to place on the data bus into c.fetched.

func (c *CPU) adc(cpu *CPU) { c.adcImpl(c.fetched) }

func (c *CPU) adcImpl(v byte) {
	carry := 0
	if c.P.C {
		carry = 1
	}
	sum := int(c.A) + int(v) + carry
	result := byte(sum)
	c.P.C = sum > 0xFF
	c.P.V = (c.A^result)&(v^result)&0x80 != 0
	c.A = result
	c.P.setNZ(result)
}

func (c *CPU) ora(cpu *CPU) { c.A |= c.fetched; c.P.setNZ(c.A) }
func (c *CPU) and(cpu *CPU) { c.A &= c.fetched; c.P.setNZ(c.A) }
func (c *CPU) eor(cpu *CPU) { c.A ^= c.fetched; c.P.setNZ(c.A) }

func (c *CPU) sbc(cpu *CPU) { c.adcImpl(c.fetched ^ 0xFF) }

func (c *CPU) compare(reg, v byte) {
	diff := int(reg) - int(v)
	c.P.C = reg >= v
	c.P.setNZ(byte(diff))
}

func (c *CPU) cmp(cpu *CPU) { c.compare(c.A, c.fetched) }
func (c *CPU) cpx(cpu *CPU) { c.compare(c.X, c.fetched) }
func (c *CPU) cpy(cpu *CPU) { c.compare(c.Y, c.fetched) }

func (c *CPU) bit(cpu *CPU) {
	v := c.fetched
	c.P.Z = c.A&v == 0
	c.P.N = v&0x80 != 0
	c.P.V = v&0x40 != 0
}

func (c *CPU) lda(cpu *CPU) { c.A = c.fetched; c.P.setNZ(c.A) }
func (c *CPU) ldx(cpu *CPU) { c.X = c.fetched; c.P.setNZ(c.X) }
func (c *CPU) ldy(cpu *CPU) { c.Y = c.fetched; c.P.setNZ(c.Y) }
func (c *CPU) lax(cpu *CPU) { c.A = c.fetched; c.X = c.fetched; c.P.setNZ(c.A) }

func (c *CPU) nop(cpu *CPU) {}

// Read-modify-write primitives. Each is called once, from the RMW exec
// phase, after the original byte has already been read into c.fetched.

func (c *CPU) asl(cpu *CPU) {
	c.P.C = c.fetched&0x80 != 0
	c.fetched <<= 1
	c.P.setNZ(c.fetched)
}
func (c *CPU) lsr(cpu *CPU) {
	c.P.C = c.fetched&0x01 != 0
	c.fetched >>= 1
	c.P.setNZ(c.fetched)
}
func (c *CPU) rol(cpu *CPU) {
	carryIn := byte(0)
	if c.P.C {
		carryIn = 1
	}
	c.P.C = c.fetched&0x80 != 0
	c.fetched = c.fetched<<1 | carryIn
	c.P.setNZ(c.fetched)
}
func (c *CPU) ror(cpu *CPU) {
	carryIn := byte(0)
	if c.P.C {
		carryIn = 0x80
	}
	c.P.C = c.fetched&0x01 != 0
	c.fetched = c.fetched>>1 | carryIn
	c.P.setNZ(c.fetched)
}
func (c *CPU) inc(cpu *CPU) { c.fetched++; c.P.setNZ(c.fetched) }
func (c *CPU) dec(cpu *CPU) { c.fetched--; c.P.setNZ(c.fetched) }

func (c *CPU) aslAcc(cpu *CPU) {
	c.P.C = c.A&0x80 != 0
	c.A <<= 1
	c.P.setNZ(c.A)
}
func (c *CPU) lsrAcc(cpu *CPU) {
	c.P.C = c.A&0x01 != 0
	c.A >>= 1
	c.P.setNZ(c.A)
}
func (c *CPU) rolAcc(cpu *CPU) {
	carryIn := byte(0)
	if c.P.C {
		carryIn = 1
	}
	c.P.C = c.A&0x80 != 0
	c.A = c.A<<1 | carryIn
	c.P.setNZ(c.A)
}
func (c *CPU) rorAcc(cpu *CPU) {
	carryIn := byte(0)
	if c.P.C {
		carryIn = 0x80
	}
	c.P.C = c.A&0x01 != 0
	c.A = c.A>>1 | carryIn
	c.P.setNZ(c.A)
}

// Illegal RMW+ALU combos.

func (c *CPU) slo(cpu *CPU) { c.asl(cpu); c.A |= c.fetched; c.P.setNZ(c.A) }
func (c *CPU) rla(cpu *CPU) { c.rol(cpu); c.A &= c.fetched; c.P.setNZ(c.A) }
func (c *CPU) sre(cpu *CPU) { c.lsr(cpu); c.A ^= c.fetched; c.P.setNZ(c.A) }
func (c *CPU) rra(cpu *CPU) { c.ror(cpu); c.adcImpl(c.fetched) }
func (c *CPU) dcp(cpu *CPU) { c.dec(cpu); c.compare(c.A, c.fetched) }
func (c *CPU) isc(cpu *CPU) { c.inc(cpu); c.adcImpl(c.fetched ^ 0xFF) }

// Unstable/"unreliable" opcodes. ANE and LXA use the documented constant
// 0xEE as the stand-in for the chip's floating-bus magic value.
const unstableMagic = 0xEE

func (c *CPU) anc(cpu *CPU) {
	c.A &= c.fetched
	c.P.setNZ(c.A)
	c.P.C = c.A&0x80 != 0
}
func (c *CPU) alr(cpu *CPU) {
	c.A &= c.fetched
	c.P.C = c.A&0x01 != 0
	c.A >>= 1
	c.P.setNZ(c.A)
}
func (c *CPU) arr(cpu *CPU) {
	c.A &= c.fetched
	carryIn := byte(0)
	if c.P.C {
		carryIn = 0x80
	}
	c.A = c.A>>1 | carryIn
	c.P.setNZ(c.A)
	bit6 := c.A&0x40 != 0
	bit5 := c.A&0x20 != 0
	c.P.C = bit6
	c.P.V = bit6 != bit5
}
func (c *CPU) sbx(cpu *CPU) {
	and := c.A & c.X
	c.P.C = and >= c.fetched
	c.X = and - c.fetched
	c.P.setNZ(c.X)
}
func (c *CPU) las(cpu *CPU) {
	v := c.fetched & c.S
	c.A, c.X, c.S = v, v, v
	c.P.setNZ(v)
}
func (c *CPU) ane(cpu *CPU) {
	c.A = (c.A | unstableMagic) & c.X & c.fetched
	c.P.setNZ(c.A)
}
func (c *CPU) lxa(cpu *CPU) {
	c.A = (c.A | unstableMagic) & c.fetched
	c.X = c.A
	c.P.setNZ(c.A)
}

// Store-family exec bodies compute the byte to place on the data bus into
// c.fetched; the generic kindStore/kindSHx exec-phase dispatch (in
// cpu_exec.go) does the actual bus write.

func (c *CPU) staExec(cpu *CPU) { c.fetched = c.A }
func (c *CPU) stxExec(cpu *CPU) { c.fetched = c.X }
func (c *CPU) styExec(cpu *CPU) { c.fetched = c.Y }
func (c *CPU) saxExec(cpu *CPU) { c.fetched = c.A & c.X }

// SHA/SHX/SHY/TAS's high-byte-AND glitch only fires when the effective
// address calculation crossed a page; c.addr has already been fixed up to
// the final address by this point, so the crossed high byte needs no
// further adjustment. Without a crossing, the register value is stored as
// on any other store.
func (c *CPU) shaExec(cpu *CPU) {
	v := c.A & c.X
	if c.addrPageCrossed {
		v &= byte(c.addr >> 8)
	}
	c.fetched = v
}
func (c *CPU) shxExec(cpu *CPU) {
	v := c.X
	if c.addrPageCrossed {
		v &= byte(c.addr >> 8)
	}
	c.fetched = v
}
func (c *CPU) shyExec(cpu *CPU) {
	v := c.Y
	if c.addrPageCrossed {
		v &= byte(c.addr >> 8)
	}
	c.fetched = v
}
func (c *CPU) tasExec(cpu *CPU) {
	c.S = c.A & c.X
	v := c.S
	if c.addrPageCrossed {
		v &= byte(c.addr >> 8)
	}
	c.fetched = v
}
