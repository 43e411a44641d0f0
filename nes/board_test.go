package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func blankCartridge(prgSize, chrSize int) *Cartridge {
	data := make([]byte, InesHeaderSizeBytes+prgSize+chrSize)
	data[0], data[1], data[2], data[3] = 'N', 'E', 'S', MSDOSEOF
	data[4] = byte(prgSize / prgROMSizeUnit)
	data[5] = byte(chrSize / chrROMSizeUnit)
	cart, err := NewCartridge(data)
	if err != nil {
		panic(err)
	}
	return cart
}

func TestBoardRAMMirroring(t *testing.T) {
	b := NewBoard(blankCartridge(prgROMSizeUnit, chrROMSizeUnit))
	b.cpuWrite(0x0001, 0x42)
	require.Equal(t, byte(0x42), b.cpuRead(0x0801))
	require.Equal(t, byte(0x42), b.cpuRead(0x1001))
	require.Equal(t, byte(0x42), b.cpuRead(0x1801))
}

func TestBoardPPURegisterMirroring(t *testing.T) {
	b := NewBoard(blankCartridge(prgROMSizeUnit, chrROMSizeUnit))
	b.cpuWrite(0x2000, 0x80) // PPUCTRL: NMI enable
	require.True(t, b.PPU.nmiOutput)
	b.cpuWrite(0x2008, 0x00) // mirrors back to PPUCTRL
	require.False(t, b.PPU.nmiOutput)
}

func TestBoardOAMDMA(t *testing.T) {
	b := NewBoard(blankCartridge(prgROMSizeUnit, chrROMSizeUnit))
	for i := 0; i < 256; i++ {
		b.ram.write(uint16(i), byte(i))
	}
	b.cpuWrite(0x4014, 0x00) // page 0 is the first 256 bytes of RAM
	for b.dmaActive {
		b.Clock()
	}
	for i := 0; i < 256; i++ {
		require.Equal(t, byte(i), b.PPU.primaryOAM[i])
	}
}

func TestBoardNametableMirroring(t *testing.T) {
	cart := blankCartridge(prgROMSizeUnit, chrROMSizeUnit)
	b := NewBoard(cart)
	b.ppuBusWrite(0x2000, 0x11)
	require.Equal(t, byte(0x11), b.ppuBusRead(0x2400)) // horizontal: 0,1 share a table
}

func TestBoardMapper0PRGMirroring(t *testing.T) {
	cart := blankCartridge(prgROMSizeUnit, chrROMSizeUnit)
	cart.prgROM[0] = 0xEA
	b := NewBoard(cart)
	require.Equal(t, byte(0xEA), b.cpuRead(0x8000))
	require.Equal(t, byte(0xEA), b.cpuRead(0xC000)) // 16KB PRG mirrors across both halves
}
