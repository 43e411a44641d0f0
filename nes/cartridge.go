package nes

import "fmt"

const (
	chrROMSizeUnit      int  = 0x2000 // bytes per CHR-ROM bank
	prgROMSizeUnit      int  = 0x4000 // bytes per PRG-ROM bank
	chrRAMSize          int  = 0x2000 // CHR-RAM size when the header declares zero CHR-ROM banks
	InesHeaderSizeBytes int  = 16
	MSDOSEOF            byte = 0x1A
)

// Cartridge is a byte-layout decoder over a raw iNES file: it recovers the
// PRG-ROM/CHR-ROM slices and header flags a Board needs to assemble a
// mapper, nothing more. https://www.nesdev.org/wiki/INES
type Cartridge struct {
	prgROM []byte
	chrROM []byte // CHR-RAM, allocated here, if the header declares no CHR-ROM banks
	flags6 byte   // https://www.nesdev.org/wiki/INES#Flags_6
	flags7 byte   // https://www.nesdev.org/wiki/INES#Flags_7
}

func isValidINES(data []byte) bool {
	return len(data) >= InesHeaderSizeBytes &&
		data[0] == 'N' && data[1] == 'E' && data[2] == 'S' && data[3] == MSDOSEOF
}

func readPRGROM(data []byte) []byte {
	l := InesHeaderSizeBytes
	r := l + int(data[4])*prgROMSizeUnit
	return data[l:r]
}

// readCHRROM returns the file's CHR-ROM bank slice, or nil if the header
// declares zero banks (CHR-RAM boards signal this in flags6 bit 1, but in
// practice a zero CHR-ROM-bank count is the reliable tell).
func readCHRROM(data []byte) []byte {
	l := InesHeaderSizeBytes + int(data[4])*prgROMSizeUnit
	r := l + int(data[5])*chrROMSizeUnit
	if r == l {
		return nil
	}
	return data[l:r]
}

// NewCartridge parses a raw iNES file into PRG/CHR slices and header flags.
func NewCartridge(data []byte) (*Cartridge, error) {
	if !isValidINES(data) {
		return nil, fmt.Errorf("cartridge: not a valid iNES file")
	}
	if data[4] == 0 {
		return nil, fmt.Errorf("cartridge: header declares no PRG-ROM banks")
	}
	c := &Cartridge{
		prgROM: readPRGROM(data),
		chrROM: readCHRROM(data),
		flags6: data[6],
		flags7: data[7],
	}
	if c.chrROM == nil {
		c.chrROM = make([]byte, chrRAMSize) // CHR-RAM, writable
	}
	return c, nil
}

// Mirroring is the nametable mirroring mode the PPU bus uses to mirror the
// $2000-$2FFF nametable region, taken from flags6 bit 0.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
)

func (c *Cartridge) Mirroring() Mirroring {
	if c.flags6&0x01 != 0 {
		return MirrorVertical
	}
	return MirrorHorizontal
}

// MapperNumber is the iNES mapper number assembled from the high nibble of
// flags6 (the mapper's low nibble) and the high nibble of flags7.
func (c *Cartridge) MapperNumber() byte {
	return (c.flags6 >> 4) | (c.flags7 & 0xF0)
}
