package nes

import "github.com/golang/glog"

type Mapper interface {
	ReadFromCPU(uint16) (byte, error)
	WriteFromCPU(uint16, byte) error
	ReadFromPPU(uint16) (byte, error)
	WriteFromPPU(uint16, byte) error
}

// NewMapper returns the board's cartridge mapper. Only mapper 0 (NROM) is
// supported; NewCartridge accepts any mapper number, so an unsupported one
// stops the program here through glog.Fatalf.
func NewMapper(number byte, prgROM []byte, chrROM []byte) Mapper {
	switch number {
	case 0:
		return &mapper0{prgROM, chrROM}
	}
	glog.Fatalf("unsupported mapper %d", number)
	return nil
}
