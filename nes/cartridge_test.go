package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCartridgeRejectsBadHeader(t *testing.T) {
	_, err := NewCartridge([]byte("not an ines file at all"))
	require.Error(t, err)
}

func TestNewCartridgeParsesPRGCHR(t *testing.T) {
	data := make([]byte, InesHeaderSizeBytes+2*prgROMSizeUnit+chrROMSizeUnit)
	data[0], data[1], data[2], data[3] = 'N', 'E', 'S', MSDOSEOF
	data[4] = 2 // 32KB PRG
	data[5] = 1 // 8KB CHR
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	require.Len(t, cart.prgROM, 2*prgROMSizeUnit)
	require.Len(t, cart.chrROM, chrROMSizeUnit)
}

func TestNewCartridgeAllocatesCHRRAMWhenHeaderDeclaresNone(t *testing.T) {
	data := make([]byte, InesHeaderSizeBytes+prgROMSizeUnit)
	data[0], data[1], data[2], data[3] = 'N', 'E', 'S', MSDOSEOF
	data[4] = 1
	data[5] = 0 // no CHR-ROM banks
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	require.Len(t, cart.chrROM, chrRAMSize)
}

func TestCartridgeMirroring(t *testing.T) {
	data := make([]byte, InesHeaderSizeBytes+prgROMSizeUnit)
	data[0], data[1], data[2], data[3] = 'N', 'E', 'S', MSDOSEOF
	data[4] = 1
	data[6] = 0x01 // flags6 bit 0 set: vertical mirroring
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	require.Equal(t, MirrorVertical, cart.Mirroring())
}

func TestCartridgeMapperNumber(t *testing.T) {
	data := make([]byte, InesHeaderSizeBytes+prgROMSizeUnit)
	data[0], data[1], data[2], data[3] = 'N', 'E', 'S', MSDOSEOF
	data[4] = 1
	data[6] = 0x10 // mapper low nibble = 1
	data[7] = 0x20 // mapper high nibble = 2
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	require.Equal(t, byte(0x21), cart.MapperNumber())
}
