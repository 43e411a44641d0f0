package nes

import "fmt"

// mapper0 is NROM: https://www.nesdev.org/wiki/NROM. $8000-$FFFF is PRG-ROM,
// 16 KiB mirrored twice (NROM-128) or 32 KiB mapped straight through
// (NROM-256); $0000-$1FFF is CHR-ROM, fixed, 8 KiB. The Board routes
// $6000-$7FFF PRG-RAM itself, so this mapper never sees those addresses.
type mapper0 struct {
	prgROM []byte
	chrROM []byte
}

func (m *mapper0) ReadFromCPU(address uint16) (byte, error) {
	if address < 0x8000 {
		return 0, fmt.Errorf("mapper0: cpu read out of PRG-ROM range: 0x%04x", address)
	}
	return m.prgROM[(address-0x8000)%uint16(len(m.prgROM))], nil
}

func (m *mapper0) WriteFromCPU(address uint16, data byte) error {
	return fmt.Errorf("mapper0: PRG-ROM is not writable: address=0x%04x, data=0x%02x", address, data)
}

func (m *mapper0) ReadFromPPU(address uint16) (byte, error) {
	if int(address) >= len(m.chrROM) {
		return 0, fmt.Errorf("mapper0: ppu read out of CHR range: 0x%04x", address)
	}
	return m.chrROM[address], nil
}

func (m *mapper0) WriteFromPPU(address uint16, data byte) error {
	if int(address) >= len(m.chrROM) {
		return fmt.Errorf("mapper0: ppu write out of CHR range: address=0x%04x, data=0x%02x", address, data)
	}
	// Real NROM CHR is ROM; some homebrew boards wire CHR-RAM through the
	// same 8KB window, so writes are accepted rather than rejected outright.
	m.chrROM[address] = data
	return nil
}
