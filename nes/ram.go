package nes

// RAM is the NES's 2KB of internal work RAM, addressed at $0000-$07FF and
// mirrored three more times up to $1FFF; Board.cpuRead/cpuWrite fold the
// mirrors down to a 0x800 index before calling read/write.
type RAM struct {
	cells [0x800]byte
}

// NewRAM returns a zeroed work-RAM bank. Real hardware powers up with
// indeterminate contents, but a deterministic zero state keeps traces
// reproducible.
func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) read(addr uint16) byte {
	return r.cells[addr]
}

func (r *RAM) write(addr uint16, v byte) {
	r.cells[addr] = v
}
