package nes

var vectorAddr = [4]uint16{vectorBRK: 0xFFFE, vectorIRQ: 0xFFFE, vectorNMI: 0xFFFA, vectorReset: 0xFFFC}

func (c *CPU) execPhi1(pin *CpuPinout) {
	pin.AddressRW = true
	switch c.kind {
	case kindImplied:
		pin.AddressBus = c.PC

	case kindStore, kindSHx:
		if c.step == stepExec0 {
			c.exec(c)
			pin.AddressBus = c.addr
			pin.AddressRW = false
			pin.DataBus = c.fetched
		}

	case kindRMW:
		pin.AddressBus = c.addr
		pin.AddressRW = false
		if c.step == stepExec1 {
			c.exec(c)
		}
		pin.DataBus = c.fetched

	case kindBranch:
		pin.AddressBus = c.PC

	case kindJSR:
		switch c.step {
		case stepExec0:
			pin.AddressBus = 0x0100 | uint16(c.S)
		case stepExec1:
			pin.AddressBus = 0x0100 | uint16(c.S)
			pin.AddressRW = false
			pin.DataBus = byte(c.PC >> 8)
		case stepExec2:
			pin.AddressBus = 0x0100 | uint16(c.S)
			pin.AddressRW = false
			pin.DataBus = byte(c.PC)
		case stepExec3:
			pin.AddressBus = c.PC
		}

	case kindRTS:
		switch c.step {
		case stepExec0:
			pin.AddressBus = c.PC
		default:
			pin.AddressBus = 0x0100 | uint16(c.S)
		}

	case kindRTI:
		switch c.step {
		case stepExec0:
			pin.AddressBus = c.PC
		default:
			pin.AddressBus = 0x0100 | uint16(c.S)
		}

	case kindPHA, kindPHP:
		switch c.step {
		case stepExec0:
			pin.AddressBus = c.PC
		case stepExec1:
			pin.AddressBus = 0x0100 | uint16(c.S)
			pin.AddressRW = false
			if c.kind == kindPHA {
				pin.DataBus = c.A
			} else {
				pin.DataBus = c.P.pushByte(true)
			}
		}

	case kindPLA, kindPLP:
		switch c.step {
		case stepExec0:
			pin.AddressBus = c.PC
		default:
			pin.AddressBus = 0x0100 | uint16(c.S)
		}

	case kindBRK:
		c.execBRKPhi1(pin)

	case kindJAM:
		pin.AddressBus = c.PC
	}
}

func (c *CPU) execPhi2(pin *CpuPinout) {
	switch c.kind {
	case kindImplied:
		c.exec(c)
		c.step = stepIR

	case kindStore, kindSHx:
		c.step = stepIR

	case kindRMW:
		switch c.step {
		case stepExec0:
			c.step = stepExec1
		case stepExec1:
			c.step = stepIR
		}

	case kindBranch:
		c.execBranchPhi2()

	case kindJSR:
		switch c.step {
		case stepExec0:
			c.step = stepExec1
		case stepExec1:
			c.S--
			c.step = stepExec2
		case stepExec2:
			c.S--
			c.step = stepExec3
		case stepExec3:
			c.hi = pin.DataBus
			c.PC = uint16(c.hi)<<8 | uint16(c.lo)
			c.step = stepIR
		}

	case kindRTS:
		switch c.step {
		case stepExec0:
			c.step = stepExec1
		case stepExec1:
			c.S++
			c.step = stepExec2
		case stepExec2:
			c.lo = pin.DataBus
			c.S++
			c.step = stepExec3
		case stepExec3:
			c.hi = pin.DataBus
			c.step = stepExec4
		case stepExec4:
			c.PC = uint16(c.hi)<<8 | uint16(c.lo) + 1
			c.step = stepIR
		}

	case kindRTI:
		switch c.step {
		case stepExec0:
			c.step = stepExec1
		case stepExec1:
			c.S++
			c.step = stepExec2
		case stepExec2:
			c.P.decodeFrom(pin.DataBus)
			c.S++
			c.step = stepExec3
		case stepExec3:
			c.lo = pin.DataBus
			c.S++
			c.step = stepExec4
		case stepExec4:
			c.hi = pin.DataBus
			c.PC = uint16(c.hi)<<8 | uint16(c.lo)
			c.step = stepIR
		}

	case kindPHA, kindPHP:
		switch c.step {
		case stepExec0:
			c.step = stepExec1
		case stepExec1:
			c.S--
			c.step = stepIR
		}

	case kindPLA, kindPLP:
		switch c.step {
		case stepExec0:
			c.step = stepExec1
		case stepExec1:
			c.S++
			c.step = stepExec2
		case stepExec2:
			if c.kind == kindPLA {
				c.A = pin.DataBus
				c.P.setNZ(c.A)
			} else {
				c.P.decodeFrom(pin.DataBus)
			}
			c.step = stepIR
		}

	case kindBRK:
		c.execBRKPhi2(pin)

	case kindJAM:
		c.haltedOnJam = true
	}
}

// execBranchPhi2 handles both the PCL adjustment cycle and, when the branch
// crosses a page, the extra PCH-fixup cycle.
func (c *CPU) execBranchPhi2() {
	switch c.step {
	case stepExec0:
		offset := int8(c.branchOffset)
		oldPC := c.PC
		newPC := uint16(int32(oldPC) + int32(offset))
		c.PC = (oldPC & 0xFF00) | (newPC & 0x00FF)
		if newPC&0xFF00 != oldPC&0xFF00 {
			c.pageCrossed = true
			c.hi = byte(newPC >> 8)
			c.step = stepExec1
		} else {
			c.step = stepIR
		}
	case stepExec1:
		c.PC = uint16(c.hi)<<8 | (c.PC & 0x00FF)
		c.pageCrossed = false
		c.step = stepIR
	}
}

func (c *CPU) execBRKPhi1(pin *CpuPinout) {
	pin.AddressRW = true
	switch c.step {
	case stepExec0:
		pin.AddressBus = c.PC
	case stepExec1:
		pin.AddressBus = 0x0100 | uint16(c.S)
		if !c.resetSequence {
			pin.AddressRW = false
			pin.DataBus = byte(c.PC >> 8)
		}
	case stepExec2:
		pin.AddressBus = 0x0100 | uint16(c.S)
		if !c.resetSequence {
			pin.AddressRW = false
			pin.DataBus = byte(c.PC)
		}
	case stepExec3:
		pin.AddressBus = 0x0100 | uint16(c.S)
		if !c.resetSequence {
			pin.AddressRW = false
			pin.DataBus = c.P.pushByte(c.swBreak)
		}
	case stepExec4:
		pin.AddressBus = vectorAddr[c.interruptVariant]
	case stepExec5:
		pin.AddressBus = vectorAddr[c.interruptVariant] + 1
	}
}

func (c *CPU) execBRKPhi2(pin *CpuPinout) {
	switch c.step {
	case stepExec0:
		if c.swBreak {
			c.PC++ // BRK's padding signature byte
		}
		c.step = stepExec1
	case stepExec1:
		c.S--
		c.step = stepExec2
	case stepExec2:
		c.S--
		c.step = stepExec3
	case stepExec3:
		c.P.I = true
		c.S--
		c.step = stepExec4
	case stepExec4:
		c.lo = pin.DataBus
		c.step = stepExec5
	case stepExec5:
		c.hi = pin.DataBus
		c.PC = uint16(c.hi)<<8 | uint16(c.lo)
		c.resetSequence = false
		c.step = stepIR
	}
}
