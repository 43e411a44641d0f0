package nes

// addressingMode is one of the 13 6502 addressing modes.
type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
)

// opKind groups opcodes by the shape of their execution phase. Addressing
// already produces the operand (in c.fetched) or the effective address (in
// c.addr); opKind decides what happens with it.
type opKind int

const (
	kindImplied opKind = iota // single-step register ops: CLC, TAX, INX, ASL A, ...
	kindALU                   // reads an operand, applies, no separate exec phase
	kindStore                 // writes a register to the effective address
	kindRMW                   // read-modify-write: dummy write then real write
	kindBranch
	kindJSR
	kindRTS
	kindRTI
	kindPHA
	kindPHP
	kindPLA
	kindPLP
	kindBRK
	kindJMPAbs
	kindJMPInd
	kindUnstable // ANC, ALR, ARR, SBX, LAS, ANE, LXA
	kindSHx      // SHA, SHX, SHY, TAS: high-byte-AND quirk on page cross
	kindJAM
)

type opcodeInfo struct {
	mnemonic string
	mode     addressingMode
	kind     opKind
	illegal  bool
	exec     func(c *CPU) // applied once the operand/address is ready
}

// opcodeTable is the dense 256-entry opcode → (mnemonic, mode, kind) decode
// table. Addressing-phase cycle counts are derived generically from mode and
// kind (see cpu_addressing.go); this table only needs to name the operation.
var opcodeTable [256]opcodeInfo

func op(n int, mnemonic string, mode addressingMode, kind opKind, illegal bool, exec func(c *CPU)) {
	opcodeTable[n] = opcodeInfo{mnemonic, mode, kind, illegal, exec}
}

func init() {
	alu := kindALU
	st := kindStore
	rmw := kindRMW
	imp := kindImplied

	// Row 0x0_
	op(0x00, "BRK", implied, kindBRK, false, nil)
	op(0x01, "ORA", indirectX, alu, false, (*CPU).ora)
	op(0x02, "JAM", implied, kindJAM, true, nil)
	op(0x03, "SLO", indirectX, rmw, true, (*CPU).slo)
	op(0x04, "NOP", zeropage, alu, true, (*CPU).nop)
	op(0x05, "ORA", zeropage, alu, false, (*CPU).ora)
	op(0x06, "ASL", zeropage, rmw, false, (*CPU).asl)
	op(0x07, "SLO", zeropage, rmw, true, (*CPU).slo)
	op(0x08, "PHP", implied, kindPHP, false, nil)
	op(0x09, "ORA", immediate, alu, false, (*CPU).ora)
	op(0x0A, "ASL", accumulator, imp, false, (*CPU).aslAcc)
	op(0x0B, "ANC", immediate, kindUnstable, true, (*CPU).anc)
	op(0x0C, "NOP", absolute, alu, true, (*CPU).nop)
	op(0x0D, "ORA", absolute, alu, false, (*CPU).ora)
	op(0x0E, "ASL", absolute, rmw, false, (*CPU).asl)
	op(0x0F, "SLO", absolute, rmw, true, (*CPU).slo)

	// Row 0x1_
	op(0x10, "BPL", relative, kindBranch, false, nil)
	op(0x11, "ORA", indirectY, alu, false, (*CPU).ora)
	op(0x12, "JAM", implied, kindJAM, true, nil)
	op(0x13, "SLO", indirectY, rmw, true, (*CPU).slo)
	op(0x14, "NOP", zeropageX, alu, true, (*CPU).nop)
	op(0x15, "ORA", zeropageX, alu, false, (*CPU).ora)
	op(0x16, "ASL", zeropageX, rmw, false, (*CPU).asl)
	op(0x17, "SLO", zeropageX, rmw, true, (*CPU).slo)
	op(0x18, "CLC", implied, imp, false, func(c *CPU) { c.P.C = false })
	op(0x19, "ORA", absoluteY, alu, false, (*CPU).ora)
	op(0x1A, "NOP", implied, imp, true, func(c *CPU) {})
	op(0x1B, "SLO", absoluteY, rmw, true, (*CPU).slo)
	op(0x1C, "NOP", absoluteX, alu, true, (*CPU).nop)
	op(0x1D, "ORA", absoluteX, alu, false, (*CPU).ora)
	op(0x1E, "ASL", absoluteX, rmw, false, (*CPU).asl)
	op(0x1F, "SLO", absoluteX, rmw, true, (*CPU).slo)

	// Row 0x2_
	op(0x20, "JSR", absolute, kindJSR, false, nil)
	op(0x21, "AND", indirectX, alu, false, (*CPU).and)
	op(0x22, "JAM", implied, kindJAM, true, nil)
	op(0x23, "RLA", indirectX, rmw, true, (*CPU).rla)
	op(0x24, "BIT", zeropage, alu, false, (*CPU).bit)
	op(0x25, "AND", zeropage, alu, false, (*CPU).and)
	op(0x26, "ROL", zeropage, rmw, false, (*CPU).rol)
	op(0x27, "RLA", zeropage, rmw, true, (*CPU).rla)
	op(0x28, "PLP", implied, kindPLP, false, nil)
	op(0x29, "AND", immediate, alu, false, (*CPU).and)
	op(0x2A, "ROL", accumulator, imp, false, (*CPU).rolAcc)
	op(0x2B, "ANC", immediate, kindUnstable, true, (*CPU).anc)
	op(0x2C, "BIT", absolute, alu, false, (*CPU).bit)
	op(0x2D, "AND", absolute, alu, false, (*CPU).and)
	op(0x2E, "ROL", absolute, rmw, false, (*CPU).rol)
	op(0x2F, "RLA", absolute, rmw, true, (*CPU).rla)

	// Row 0x3_
	op(0x30, "BMI", relative, kindBranch, false, nil)
	op(0x31, "AND", indirectY, alu, false, (*CPU).and)
	op(0x32, "JAM", implied, kindJAM, true, nil)
	op(0x33, "RLA", indirectY, rmw, true, (*CPU).rla)
	op(0x34, "NOP", zeropageX, alu, true, (*CPU).nop)
	op(0x35, "AND", zeropageX, alu, false, (*CPU).and)
	op(0x36, "ROL", zeropageX, rmw, false, (*CPU).rol)
	op(0x37, "RLA", zeropageX, rmw, true, (*CPU).rla)
	op(0x38, "SEC", implied, imp, false, func(c *CPU) { c.P.C = true })
	op(0x39, "AND", absoluteY, alu, false, (*CPU).and)
	op(0x3A, "NOP", implied, imp, true, func(c *CPU) {})
	op(0x3B, "RLA", absoluteY, rmw, true, (*CPU).rla)
	op(0x3C, "NOP", absoluteX, alu, true, (*CPU).nop)
	op(0x3D, "AND", absoluteX, alu, false, (*CPU).and)
	op(0x3E, "ROL", absoluteX, rmw, false, (*CPU).rol)
	op(0x3F, "RLA", absoluteX, rmw, true, (*CPU).rla)

	// Row 0x4_
	op(0x40, "RTI", implied, kindRTI, false, nil)
	op(0x41, "EOR", indirectX, alu, false, (*CPU).eor)
	op(0x42, "JAM", implied, kindJAM, true, nil)
	op(0x43, "SRE", indirectX, rmw, true, (*CPU).sre)
	op(0x44, "NOP", zeropage, alu, true, (*CPU).nop)
	op(0x45, "EOR", zeropage, alu, false, (*CPU).eor)
	op(0x46, "LSR", zeropage, rmw, false, (*CPU).lsr)
	op(0x47, "SRE", zeropage, rmw, true, (*CPU).sre)
	op(0x48, "PHA", implied, kindPHA, false, nil)
	op(0x49, "EOR", immediate, alu, false, (*CPU).eor)
	op(0x4A, "LSR", accumulator, imp, false, (*CPU).lsrAcc)
	op(0x4B, "ALR", immediate, kindUnstable, true, (*CPU).alr)
	op(0x4C, "JMP", absolute, kindJMPAbs, false, nil)
	op(0x4D, "EOR", absolute, alu, false, (*CPU).eor)
	op(0x4E, "LSR", absolute, rmw, false, (*CPU).lsr)
	op(0x4F, "SRE", absolute, rmw, true, (*CPU).sre)

	// Row 0x5_
	op(0x50, "BVC", relative, kindBranch, false, nil)
	op(0x51, "EOR", indirectY, alu, false, (*CPU).eor)
	op(0x52, "JAM", implied, kindJAM, true, nil)
	op(0x53, "SRE", indirectY, rmw, true, (*CPU).sre)
	op(0x54, "NOP", zeropageX, alu, true, (*CPU).nop)
	op(0x55, "EOR", zeropageX, alu, false, (*CPU).eor)
	op(0x56, "LSR", zeropageX, rmw, false, (*CPU).lsr)
	op(0x57, "SRE", zeropageX, rmw, true, (*CPU).sre)
	op(0x58, "CLI", implied, imp, false, func(c *CPU) { c.P.I = false })
	op(0x59, "EOR", absoluteY, alu, false, (*CPU).eor)
	op(0x5A, "NOP", implied, imp, true, func(c *CPU) {})
	op(0x5B, "SRE", absoluteY, rmw, true, (*CPU).sre)
	op(0x5C, "NOP", absoluteX, alu, true, (*CPU).nop)
	op(0x5D, "EOR", absoluteX, alu, false, (*CPU).eor)
	op(0x5E, "LSR", absoluteX, rmw, false, (*CPU).lsr)
	op(0x5F, "SRE", absoluteX, rmw, true, (*CPU).sre)

	// Row 0x6_
	op(0x60, "RTS", implied, kindRTS, false, nil)
	op(0x61, "ADC", indirectX, alu, false, (*CPU).adc)
	op(0x62, "JAM", implied, kindJAM, true, nil)
	op(0x63, "RRA", indirectX, rmw, true, (*CPU).rra)
	op(0x64, "NOP", zeropage, alu, true, (*CPU).nop)
	op(0x65, "ADC", zeropage, alu, false, (*CPU).adc)
	op(0x66, "ROR", zeropage, rmw, false, (*CPU).ror)
	op(0x67, "RRA", zeropage, rmw, true, (*CPU).rra)
	op(0x68, "PLA", implied, kindPLA, false, nil)
	op(0x69, "ADC", immediate, alu, false, (*CPU).adc)
	op(0x6A, "ROR", accumulator, imp, false, (*CPU).rorAcc)
	op(0x6B, "ARR", immediate, kindUnstable, true, (*CPU).arr)
	op(0x6C, "JMP", indirect, kindJMPInd, false, nil)
	op(0x6D, "ADC", absolute, alu, false, (*CPU).adc)
	op(0x6E, "ROR", absolute, rmw, false, (*CPU).ror)
	op(0x6F, "RRA", absolute, rmw, true, (*CPU).rra)

	// Row 0x7_
	op(0x70, "BVS", relative, kindBranch, false, nil)
	op(0x71, "ADC", indirectY, alu, false, (*CPU).adc)
	op(0x72, "JAM", implied, kindJAM, true, nil)
	op(0x73, "RRA", indirectY, rmw, true, (*CPU).rra)
	op(0x74, "NOP", zeropageX, alu, true, (*CPU).nop)
	op(0x75, "ADC", zeropageX, alu, false, (*CPU).adc)
	op(0x76, "ROR", zeropageX, rmw, false, (*CPU).ror)
	op(0x77, "RRA", zeropageX, rmw, true, (*CPU).rra)
	op(0x78, "SEI", implied, imp, false, func(c *CPU) { c.P.I = true })
	op(0x79, "ADC", absoluteY, alu, false, (*CPU).adc)
	op(0x7A, "NOP", implied, imp, true, func(c *CPU) {})
	op(0x7B, "RRA", absoluteY, rmw, true, (*CPU).rra)
	op(0x7C, "NOP", absoluteX, alu, true, (*CPU).nop)
	op(0x7D, "ADC", absoluteX, alu, false, (*CPU).adc)
	op(0x7E, "ROR", absoluteX, rmw, false, (*CPU).ror)
	op(0x7F, "RRA", absoluteX, rmw, true, (*CPU).rra)

	// Row 0x8_
	op(0x80, "NOP", immediate, alu, true, (*CPU).nop)
	op(0x81, "STA", indirectX, st, false, (*CPU).staExec)
	op(0x82, "NOP", immediate, alu, true, (*CPU).nop)
	op(0x83, "SAX", indirectX, st, true, (*CPU).saxExec)
	op(0x84, "STY", zeropage, st, false, (*CPU).styExec)
	op(0x85, "STA", zeropage, st, false, (*CPU).staExec)
	op(0x86, "STX", zeropage, st, false, (*CPU).stxExec)
	op(0x87, "SAX", zeropage, st, true, (*CPU).saxExec)
	op(0x88, "DEY", implied, imp, false, func(c *CPU) { c.Y--; c.P.setNZ(c.Y) })
	op(0x89, "NOP", immediate, alu, true, (*CPU).nop)
	op(0x8A, "TXA", implied, imp, false, func(c *CPU) { c.A = c.X; c.P.setNZ(c.A) })
	op(0x8B, "ANE", immediate, kindUnstable, true, (*CPU).ane)
	op(0x8C, "STY", absolute, st, false, (*CPU).styExec)
	op(0x8D, "STA", absolute, st, false, (*CPU).staExec)
	op(0x8E, "STX", absolute, st, false, (*CPU).stxExec)
	op(0x8F, "SAX", absolute, st, true, (*CPU).saxExec)

	// Row 0x9_
	op(0x90, "BCC", relative, kindBranch, false, nil)
	op(0x91, "STA", indirectY, st, false, (*CPU).staExec)
	op(0x92, "JAM", implied, kindJAM, true, nil)
	op(0x93, "SHA", indirectY, kindSHx, true, (*CPU).shaExec)
	op(0x94, "STY", zeropageX, st, false, (*CPU).styExec)
	op(0x95, "STA", zeropageX, st, false, (*CPU).staExec)
	op(0x96, "STX", zeropageY, st, false, (*CPU).stxExec)
	op(0x97, "SAX", zeropageY, st, true, (*CPU).saxExec)
	op(0x98, "TYA", implied, imp, false, func(c *CPU) { c.A = c.Y; c.P.setNZ(c.A) })
	op(0x99, "STA", absoluteY, st, false, (*CPU).staExec)
	op(0x9A, "TXS", implied, imp, false, func(c *CPU) { c.S = c.X })
	op(0x9B, "TAS", absoluteY, kindSHx, true, (*CPU).tasExec)
	op(0x9C, "SHY", absoluteX, kindSHx, true, (*CPU).shyExec)
	op(0x9D, "STA", absoluteX, st, false, (*CPU).staExec)
	op(0x9E, "SHX", absoluteY, kindSHx, true, (*CPU).shxExec)
	op(0x9F, "SHA", absoluteY, kindSHx, true, (*CPU).shaExec)

	// Row 0xA_
	op(0xA0, "LDY", immediate, alu, false, (*CPU).ldy)
	op(0xA1, "LDA", indirectX, alu, false, (*CPU).lda)
	op(0xA2, "LDX", immediate, alu, false, (*CPU).ldx)
	op(0xA3, "LAX", indirectX, alu, true, (*CPU).lax)
	op(0xA4, "LDY", zeropage, alu, false, (*CPU).ldy)
	op(0xA5, "LDA", zeropage, alu, false, (*CPU).lda)
	op(0xA6, "LDX", zeropage, alu, false, (*CPU).ldx)
	op(0xA7, "LAX", zeropage, alu, true, (*CPU).lax)
	op(0xA8, "TAY", implied, imp, false, func(c *CPU) { c.Y = c.A; c.P.setNZ(c.Y) })
	op(0xA9, "LDA", immediate, alu, false, (*CPU).lda)
	op(0xAA, "TAX", implied, imp, false, func(c *CPU) { c.X = c.A; c.P.setNZ(c.X) })
	op(0xAB, "LXA", immediate, kindUnstable, true, (*CPU).lxa)
	op(0xAC, "LDY", absolute, alu, false, (*CPU).ldy)
	op(0xAD, "LDA", absolute, alu, false, (*CPU).lda)
	op(0xAE, "LDX", absolute, alu, false, (*CPU).ldx)
	op(0xAF, "LAX", absolute, alu, true, (*CPU).lax)

	// Row 0xB_
	op(0xB0, "BCS", relative, kindBranch, false, nil)
	op(0xB1, "LDA", indirectY, alu, false, (*CPU).lda)
	op(0xB2, "JAM", implied, kindJAM, true, nil)
	op(0xB3, "LAX", indirectY, alu, true, (*CPU).lax)
	op(0xB4, "LDY", zeropageX, alu, false, (*CPU).ldy)
	op(0xB5, "LDA", zeropageX, alu, false, (*CPU).lda)
	op(0xB6, "LDX", zeropageY, alu, false, (*CPU).ldx)
	op(0xB7, "LAX", zeropageY, alu, true, (*CPU).lax)
	op(0xB8, "CLV", implied, imp, false, func(c *CPU) { c.P.V = false })
	op(0xB9, "LDA", absoluteY, alu, false, (*CPU).lda)
	op(0xBA, "TSX", implied, imp, false, func(c *CPU) { c.X = c.S; c.P.setNZ(c.X) })
	op(0xBB, "LAS", absoluteY, kindUnstable, true, (*CPU).las)
	op(0xBC, "LDY", absoluteX, alu, false, (*CPU).ldy)
	op(0xBD, "LDA", absoluteX, alu, false, (*CPU).lda)
	op(0xBE, "LDX", absoluteY, alu, false, (*CPU).ldx)
	op(0xBF, "LAX", absoluteY, alu, true, (*CPU).lax)

	// Row 0xC_
	op(0xC0, "CPY", immediate, alu, false, (*CPU).cpy)
	op(0xC1, "CMP", indirectX, alu, false, (*CPU).cmp)
	op(0xC2, "NOP", immediate, alu, true, (*CPU).nop)
	op(0xC3, "DCP", indirectX, rmw, true, (*CPU).dcp)
	op(0xC4, "CPY", zeropage, alu, false, (*CPU).cpy)
	op(0xC5, "CMP", zeropage, alu, false, (*CPU).cmp)
	op(0xC6, "DEC", zeropage, rmw, false, (*CPU).dec)
	op(0xC7, "DCP", zeropage, rmw, true, (*CPU).dcp)
	op(0xC8, "INY", implied, imp, false, func(c *CPU) { c.Y++; c.P.setNZ(c.Y) })
	op(0xC9, "CMP", immediate, alu, false, (*CPU).cmp)
	op(0xCA, "DEX", implied, imp, false, func(c *CPU) { c.X--; c.P.setNZ(c.X) })
	op(0xCB, "SBX", immediate, kindUnstable, true, (*CPU).sbx)
	op(0xCC, "CPY", absolute, alu, false, (*CPU).cpy)
	op(0xCD, "CMP", absolute, alu, false, (*CPU).cmp)
	op(0xCE, "DEC", absolute, rmw, false, (*CPU).dec)
	op(0xCF, "DCP", absolute, rmw, true, (*CPU).dcp)

	// Row 0xD_
	op(0xD0, "BNE", relative, kindBranch, false, nil)
	op(0xD1, "CMP", indirectY, alu, false, (*CPU).cmp)
	op(0xD2, "JAM", implied, kindJAM, true, nil)
	op(0xD3, "DCP", indirectY, rmw, true, (*CPU).dcp)
	op(0xD4, "NOP", zeropageX, alu, true, (*CPU).nop)
	op(0xD5, "CMP", zeropageX, alu, false, (*CPU).cmp)
	op(0xD6, "DEC", zeropageX, rmw, false, (*CPU).dec)
	op(0xD7, "DCP", zeropageX, rmw, true, (*CPU).dcp)
	op(0xD8, "CLD", implied, imp, false, func(c *CPU) { c.P.D = false })
	op(0xD9, "CMP", absoluteY, alu, false, (*CPU).cmp)
	op(0xDA, "NOP", implied, imp, true, func(c *CPU) {})
	op(0xDB, "DCP", absoluteY, rmw, true, (*CPU).dcp)
	op(0xDC, "NOP", absoluteX, alu, true, (*CPU).nop)
	op(0xDD, "CMP", absoluteX, alu, false, (*CPU).cmp)
	op(0xDE, "DEC", absoluteX, rmw, false, (*CPU).dec)
	op(0xDF, "DCP", absoluteX, rmw, true, (*CPU).dcp)

	// Row 0xE_
	op(0xE0, "CPX", immediate, alu, false, (*CPU).cpx)
	op(0xE1, "SBC", indirectX, alu, false, (*CPU).sbc)
	op(0xE2, "NOP", immediate, alu, true, (*CPU).nop)
	op(0xE3, "ISC", indirectX, rmw, true, (*CPU).isc)
	op(0xE4, "CPX", zeropage, alu, false, (*CPU).cpx)
	op(0xE5, "SBC", zeropage, alu, false, (*CPU).sbc)
	op(0xE6, "INC", zeropage, rmw, false, (*CPU).inc)
	op(0xE7, "ISC", zeropage, rmw, true, (*CPU).isc)
	op(0xE8, "INX", implied, imp, false, func(c *CPU) { c.X++; c.P.setNZ(c.X) })
	op(0xE9, "SBC", immediate, alu, false, (*CPU).sbc)
	op(0xEA, "NOP", implied, imp, false, func(c *CPU) {})
	op(0xEB, "SBC", immediate, alu, true, (*CPU).sbc)
	op(0xEC, "CPX", absolute, alu, false, (*CPU).cpx)
	op(0xED, "SBC", absolute, alu, false, (*CPU).sbc)
	op(0xEE, "INC", absolute, rmw, false, (*CPU).inc)
	op(0xEF, "ISC", absolute, rmw, true, (*CPU).isc)

	// Row 0xF_
	op(0xF0, "BEQ", relative, kindBranch, false, nil)
	op(0xF1, "SBC", indirectY, alu, false, (*CPU).sbc)
	op(0xF2, "JAM", implied, kindJAM, true, nil)
	op(0xF3, "ISC", indirectY, rmw, true, (*CPU).isc)
	op(0xF4, "NOP", zeropageX, alu, true, (*CPU).nop)
	op(0xF5, "SBC", zeropageX, alu, false, (*CPU).sbc)
	op(0xF6, "INC", zeropageX, rmw, false, (*CPU).inc)
	op(0xF7, "ISC", zeropageX, rmw, true, (*CPU).isc)
	op(0xF8, "SED", implied, imp, false, func(c *CPU) { c.P.D = true })
	op(0xF9, "SBC", absoluteY, alu, false, (*CPU).sbc)
	op(0xFA, "NOP", implied, imp, true, func(c *CPU) {})
	op(0xFB, "ISC", absoluteY, rmw, true, (*CPU).isc)
	op(0xFC, "NOP", absoluteX, alu, true, (*CPU).nop)
	op(0xFD, "SBC", absoluteX, alu, false, (*CPU).sbc)
	op(0xFE, "INC", absoluteX, rmw, false, (*CPU).inc)
	op(0xFF, "ISC", absoluteX, rmw, true, (*CPU).isc)
}

// branchPredicate maps a branch opcode to the flag test that decides
// whether the branch is taken.
func branchPredicate(opcode byte, c *CPU) bool {
	switch opcode {
	case 0x10:
		return !c.P.N // BPL
	case 0x30:
		return c.P.N // BMI
	case 0x50:
		return !c.P.V // BVC
	case 0x70:
		return c.P.V // BVS
	case 0x90:
		return !c.P.C // BCC
	case 0xB0:
		return c.P.C // BCS
	case 0xD0:
		return !c.P.Z // BNE
	case 0xF0:
		return c.P.Z // BEQ
	}
	return false
}
