package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapper0PRGMirrorsNROM128(t *testing.T) {
	m := &mapper0{prgROM: make([]byte, prgROMSizeUnit), chrROM: make([]byte, chrROMSizeUnit)}
	m.prgROM[0] = 0x42
	lo, err := m.ReadFromCPU(0x8000)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), lo)
	hi, err := m.ReadFromCPU(0xC000) // mirrors back to the same 16KB bank
	require.NoError(t, err)
	require.Equal(t, byte(0x42), hi)
}

func TestMapper0RejectsPRGWrite(t *testing.T) {
	m := &mapper0{prgROM: make([]byte, prgROMSizeUnit), chrROM: make([]byte, chrROMSizeUnit)}
	require.Error(t, m.WriteFromCPU(0x8000, 0xFF))
}

func TestMapper0CHRRAMIsWritable(t *testing.T) {
	m := &mapper0{prgROM: make([]byte, prgROMSizeUnit), chrROM: make([]byte, chrRAMSize)}
	require.NoError(t, m.WriteFromPPU(0x0010, 0x99))
	v, err := m.ReadFromPPU(0x0010)
	require.NoError(t, err)
	require.Equal(t, byte(0x99), v)
}
