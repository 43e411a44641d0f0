package nes

// Addressing-phase cycle counts are derived here from (mode, kind) rather
// than tabulated per opcode: store, SHx and read-modify-write instructions
// always pay the page-boundary fixup cost on the absolute-indexed and
// indirect-indexed modes, pure loads/ALU ops pay it only when a carry
// actually occurs. See
// cpu_opcodes.go for which opcodes carry which kind.

func (c *CPU) needsFixup() bool {
	return c.kind == kindStore || c.kind == kindRMW || c.kind == kindSHx
}

// addrPhi1 drives the address bus for the current addressing micro-step.
func (c *CPU) addrPhi1(pin *CpuPinout) {
	pin.AddressRW = true
	switch c.mode {
	case immediate, relative:
		pin.AddressBus = c.PC

	case zeropage:
		if c.step == stepAddr0 {
			pin.AddressBus = c.PC
		} else {
			pin.AddressBus = c.addr
		}

	case zeropageX, zeropageY:
		switch c.step {
		case stepAddr0:
			pin.AddressBus = c.PC
		case stepAddr1:
			pin.AddressBus = uint16(c.base)
		case stepAddr2:
			pin.AddressBus = c.addr
		}

	case absolute:
		switch c.step {
		case stepAddr0, stepAddr1:
			pin.AddressBus = c.PC
		case stepAddr2:
			pin.AddressBus = c.addr
		}

	case absoluteX, absoluteY:
		switch c.step {
		case stepAddr0, stepAddr1:
			pin.AddressBus = c.PC
		case stepAddr2, stepAddr3:
			pin.AddressBus = c.addr
		}

	case indirect:
		switch c.step {
		case stepAddr0, stepAddr1:
			pin.AddressBus = c.PC
		case stepAddr2:
			pin.AddressBus = c.ptr
		case stepAddr3:
			pin.AddressBus = (c.ptr & 0xFF00) | uint16((byte(c.ptr)+1)&0xFF)
		}

	case indirectX:
		switch c.step {
		case stepAddr0:
			pin.AddressBus = c.PC
		case stepAddr1:
			pin.AddressBus = uint16(c.base)
		case stepAddr2:
			pin.AddressBus = uint16(c.ptr)
		case stepAddr3:
			pin.AddressBus = uint16((c.ptr + 1) & 0xFF)
		case stepAddr4:
			pin.AddressBus = c.addr
		}

	case indirectY:
		switch c.step {
		case stepAddr0:
			pin.AddressBus = c.PC
		case stepAddr1:
			pin.AddressBus = c.ptr
		case stepAddr2:
			pin.AddressBus = (c.ptr & 0xFF00) | uint16((byte(c.ptr)+1)&0xFF)
		case stepAddr3, stepAddr4:
			pin.AddressBus = c.addr
		}
	}
}

// addrPhi2 latches the byte that just appeared on the data bus (or, for the
// final step of a mode, decides whether addressing is complete) and advances
// c.step accordingly.
func (c *CPU) addrPhi2(pin *CpuPinout) {
	switch c.mode {
	case immediate:
		c.fetched = pin.DataBus
		c.PC++
		c.finishRead()

	case relative:
		c.branchOffset = pin.DataBus
		c.PC++
		if branchPredicate(c.opcode, c) {
			c.step = stepExec0
		} else {
			c.step = stepIR
		}

	case zeropage:
		if c.step == stepAddr0 {
			c.addr = uint16(pin.DataBus)
			c.PC++
			if c.kind == kindStore || c.kind == kindSHx {
				c.step = stepExec0
			} else {
				c.step = stepAddr1
			}
			return
		}
		c.fetched = pin.DataBus
		c.finishRead()

	case zeropageX:
		c.zeropageIndexedPhi2(pin, c.X)
	case zeropageY:
		c.zeropageIndexedPhi2(pin, c.Y)

	case absolute:
		switch c.step {
		case stepAddr0:
			c.lo = pin.DataBus
			c.PC++
			if c.kind == kindJSR {
				c.step = stepExec0
			} else {
				c.step = stepAddr1
			}
		case stepAddr1:
			c.hi = pin.DataBus
			c.PC++
			c.addr = uint16(c.hi)<<8 | uint16(c.lo)
			if c.kind == kindJMPAbs {
				c.PC = c.addr
				c.step = stepIR
			} else if c.kind == kindStore || c.kind == kindSHx {
				c.step = stepExec0
			} else {
				c.step = stepAddr2
			}
		case stepAddr2:
			c.fetched = pin.DataBus
			c.finishRead()
		}

	case absoluteX:
		c.absoluteIndexedPhi2(pin, c.X)
	case absoluteY:
		c.absoluteIndexedPhi2(pin, c.Y)

	case indirect:
		switch c.step {
		case stepAddr0:
			c.lo = pin.DataBus
			c.PC++
			c.step = stepAddr1
		case stepAddr1:
			c.hi = pin.DataBus
			c.PC++
			c.ptr = uint16(c.hi)<<8 | uint16(c.lo)
			c.step = stepAddr2
		case stepAddr2:
			c.lo = pin.DataBus
			c.step = stepAddr3
		case stepAddr3:
			c.hi = pin.DataBus
			c.PC = uint16(c.hi)<<8 | uint16(c.lo)
			c.step = stepIR
		}

	case indirectX:
		switch c.step {
		case stepAddr0:
			c.base = pin.DataBus
			c.PC++
			c.step = stepAddr1
		case stepAddr1:
			c.ptr = uint16(c.base + c.X)
			c.step = stepAddr2
		case stepAddr2:
			c.lo = pin.DataBus
			c.step = stepAddr3
		case stepAddr3:
			c.hi = pin.DataBus
			c.addr = uint16(c.hi)<<8 | uint16(c.lo)
			if c.kind == kindStore || c.kind == kindSHx {
				c.step = stepExec0
			} else {
				c.step = stepAddr4
			}
		case stepAddr4:
			c.fetched = pin.DataBus
			c.finishRead()
		}

	case indirectY:
		switch c.step {
		case stepAddr0:
			c.ptr = uint16(pin.DataBus)
			c.PC++
			c.step = stepAddr1
		case stepAddr1:
			c.lo = pin.DataBus
			c.step = stepAddr2
		case stepAddr2:
			c.hi = pin.DataBus
			sum := int(c.lo) + int(c.Y)
			c.pageCrossed = sum > 0xFF
			c.addrPageCrossed = c.pageCrossed
			c.addr = uint16(c.hi)<<8 | uint16(byte(sum))
			c.step = stepAddr3
		case stepAddr3:
			if c.needsFixup() {
				if c.pageCrossed {
					c.addr += 0x100
				}
				c.pageCrossed = false
				if c.kind == kindStore || c.kind == kindSHx {
					c.step = stepExec0
				} else {
					c.step = stepAddr4 // RMW: one more read at corrected address
				}
				return
			}
			c.fetched = pin.DataBus
			if c.pageCrossed {
				c.addr += 0x100
				c.pageCrossed = false
				return // redo stepAddr3 next cycle with the corrected address
			}
			c.finishRead()
		case stepAddr4:
			c.fetched = pin.DataBus
			c.finishRead()
		}
	}
}

func (c *CPU) zeropageIndexedPhi2(pin *CpuPinout, index byte) {
	switch c.step {
	case stepAddr0:
		c.base = pin.DataBus
		c.PC++
		c.step = stepAddr1
	case stepAddr1:
		c.addr = uint16((c.base + index) & 0xFF)
		if c.kind == kindStore || c.kind == kindSHx {
			c.step = stepExec0
		} else {
			c.step = stepAddr2
		}
	case stepAddr2:
		c.fetched = pin.DataBus
		c.finishRead()
	}
}

func (c *CPU) absoluteIndexedPhi2(pin *CpuPinout, index byte) {
	switch c.step {
	case stepAddr0:
		c.lo = pin.DataBus
		c.PC++
		c.step = stepAddr1
	case stepAddr1:
		c.hi = pin.DataBus
		c.PC++
		sum := int(c.lo) + int(index)
		c.pageCrossed = sum > 0xFF
		c.addrPageCrossed = c.pageCrossed
		c.addr = uint16(c.hi)<<8 | uint16(byte(sum))
		c.step = stepAddr2
	case stepAddr2:
		if c.needsFixup() {
			if c.pageCrossed {
				c.addr += 0x100
			}
			c.pageCrossed = false
			if c.kind == kindStore || c.kind == kindSHx {
				c.step = stepExec0
			} else {
				c.step = stepAddr3 // RMW: one more read at corrected address
			}
			return
		}
		c.fetched = pin.DataBus
		if c.pageCrossed {
			c.addr += 0x100
			c.pageCrossed = false
			return // redo stepAddr2 next cycle with the corrected address
		}
		c.finishRead()
	case stepAddr3:
		c.fetched = pin.DataBus
		c.finishRead()
	}
}

// finishRead is reached once the operand byte for a load/ALU/unstable
// instruction has been latched. Such instructions need no separate exec
// phase: the operation applies immediately and the next cycle is a fresh
// opcode fetch.
func (c *CPU) finishRead() {
	if c.kind == kindRMW {
		// The operand is in c.fetched; the RMW exec phase performs the
		// dummy write, the modification, and the real write.
		c.step = stepExec0
		return
	}
	if c.exec != nil {
		c.exec(c)
	}
	c.step = stepIR
}
