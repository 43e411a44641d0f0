package nes

// status is the 6502 processor status register P. Bits U and B have no
// persistent storage on real hardware: U reads back as 1 whenever P is
// observed and B only exists in the byte written by a stack push, so this
// type stores the six flags that do persist and synthesizes U/B on demand.
type status struct {
	C bool // carry
	Z bool // zero
	I bool // IRQ disable
	D bool // decimal - unused on the Ricoh 2A03
	V bool // overflow
	N bool // negative
}

// encode returns P as it reads: U forced to 1, B forced to 0.
func (s *status) encode() byte {
	var res byte = 1 << 5 // U
	if s.C {
		res |= 1 << 0
	}
	if s.Z {
		res |= 1 << 1
	}
	if s.I {
		res |= 1 << 2
	}
	if s.D {
		res |= 1 << 3
	}
	if s.V {
		res |= 1 << 6
	}
	if s.N {
		res |= 1 << 7
	}
	return res
}

// pushByte is the byte value written to the stack by PHP/BRK (breakSet=true)
// or by an IRQ/NMI service sequence (breakSet=false). U is always 1.
func (s *status) pushByte(breakSet bool) byte {
	res := s.encode()
	if breakSet {
		res |= 1 << 4
	}
	return res
}

// decodeFrom loads all six persistent flags from a byte (test setup, and
// RTI/PLP where B and U in the pulled value are simply discarded).
func (s *status) decodeFrom(data byte) {
	s.C = data&(1<<0) != 0
	s.Z = data&(1<<1) != 0
	s.I = data&(1<<2) != 0
	s.D = data&(1<<3) != 0
	s.V = data&(1<<6) != 0
	s.N = data&(1<<7) != 0
}

func (s *status) setNZ(v byte) {
	s.Z = v == 0
	s.N = v&0x80 != 0
}
