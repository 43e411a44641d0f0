package nes

import "fmt"

// instructionLength returns how many bytes (opcode included) the given
// addressing mode consumes, for disassembly purposes only.
func instructionLength(mode addressingMode) int {
	switch mode {
	case implied, accumulator:
		return 1
	case immediate, zeropage, zeropageX, zeropageY, relative, indirectX, indirectY:
		return 2
	default: // absolute, absoluteX, absoluteY, indirect
		return 3
	}
}

// Trace formats one golden-trace line for the instruction about to be
// fetched at the CPU's current PC, in the nestest.log column layout:
//
//	PC(4 hex)  OP B1 B2  disasm(32 chars)  A:xx X:xx Y:xx P:xx SP:xx PPU:ddd,ddd CYC:nnn
//
// Peeking the opcode/operand bytes is read-only and safe even mid-frame:
// traced code lives in PRG-ROM, which has no read side effects.
func (b *Board) Trace() string {
	c := b.CPU
	pc := c.PC
	opcode := b.cpuRead(pc)
	info := opcodeTable[opcode]
	length := instructionLength(info.mode)

	bytesCol := fmt.Sprintf("%02X", opcode)
	for i := 1; i < 3; i++ {
		if i < length {
			bytesCol += fmt.Sprintf(" %02X", b.cpuRead(pc+uint16(i)))
		} else {
			bytesCol += "   "
		}
	}

	mnemonic := info.mnemonic
	if info.illegal {
		mnemonic = "*" + mnemonic
	} else {
		mnemonic = " " + mnemonic
	}
	disasm := fmt.Sprintf("%s %s", mnemonic, operandText(b, pc, info))
	for len(disasm) < 32 {
		disasm += " "
	}

	return fmt.Sprintf("%04X  %s  %s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		pc, bytesCol, disasm, c.A, c.X, c.Y, c.P.encode(), c.S,
		b.PPU.scanline, b.PPU.dot, c.cycles)
}

func operandText(b *Board, pc uint16, info opcodeInfo) string {
	switch info.mode {
	case implied:
		return ""
	case accumulator:
		return "A"
	case immediate:
		return fmt.Sprintf("#$%02X", b.cpuRead(pc+1))
	case zeropage:
		return fmt.Sprintf("$%02X", b.cpuRead(pc+1))
	case zeropageX:
		return fmt.Sprintf("$%02X,X", b.cpuRead(pc+1))
	case zeropageY:
		return fmt.Sprintf("$%02X,Y", b.cpuRead(pc+1))
	case relative:
		off := int8(b.cpuRead(pc + 1))
		return fmt.Sprintf("$%04X", pc+2+uint16(off))
	case absolute:
		lo, hi := b.cpuRead(pc+1), b.cpuRead(pc+2)
		return fmt.Sprintf("$%04X", uint16(hi)<<8|uint16(lo))
	case absoluteX:
		lo, hi := b.cpuRead(pc+1), b.cpuRead(pc+2)
		return fmt.Sprintf("$%04X,X", uint16(hi)<<8|uint16(lo))
	case absoluteY:
		lo, hi := b.cpuRead(pc+1), b.cpuRead(pc+2)
		return fmt.Sprintf("$%04X,Y", uint16(hi)<<8|uint16(lo))
	case indirect:
		lo, hi := b.cpuRead(pc+1), b.cpuRead(pc+2)
		return fmt.Sprintf("($%04X)", uint16(hi)<<8|uint16(lo))
	case indirectX:
		return fmt.Sprintf("($%02X,X)", b.cpuRead(pc+1))
	case indirectY:
		return fmt.Sprintf("($%02X),Y", b.cpuRead(pc+1))
	}
	return ""
}

// StepInstruction runs the Board forward, one master cycle at a time, until
// the CPU completes exactly one instruction (including any interrupt
// service sequence it was redirected into), returning the trace line
// captured before the step and the number of CPU cycles it took.
func (b *Board) StepInstruction() (trace string, cycles int) {
	trace = b.Trace()
	startCycles := b.CPU.cycles
	b.Clock()
	// cycles only advances on CPU φ2, so DMA-suspended cycles keep the loop going.
	for (b.CPU.step != stepIR || b.CPU.cycles == startCycles) && !b.CPU.haltedOnJam {
		b.Clock()
	}
	cycles = int(b.CPU.cycles - startCycles)
	return trace, cycles
}
