package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestBoard builds a Board around a 16KB NROM image and positions the
// CPU at the start of PRG-ROM, bypassing the real reset sequence the way
// the teacher's own newTestCPU helper does for nestest.
func newTestBoard(prg ...byte) *Board {
	cart := blankCartridge(prgROMSizeUnit, chrROMSizeUnit)
	copy(cart.prgROM, prg)
	b := NewBoard(cart)
	b.CPU.Reset()
	b.CPU.PC = 0x8000
	return b
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	b := newTestBoard(0xA9, 0x00) // LDA #$00
	b.StepInstruction()
	require.Equal(t, byte(0x00), b.CPU.A)
	require.True(t, b.CPU.P.Z)
	require.False(t, b.CPU.P.N)
}

func TestADCSetsOverflowWithoutCarry(t *testing.T) {
	b := newTestBoard(0xA9, 0x7F, 0x69, 0x01) // LDA #$7F; ADC #$01
	b.StepInstruction()
	b.StepInstruction()
	require.Equal(t, byte(0x80), b.CPU.A)
	require.True(t, b.CPU.P.V)
	require.False(t, b.CPU.P.C)
	require.True(t, b.CPU.P.N)
}

func TestStoreThenLoadZeroPage(t *testing.T) {
	b := newTestBoard(0xA9, 0x37, 0x85, 0x10, 0xA9, 0x00, 0xA5, 0x10) // LDA #$37; STA $10; LDA #$00; LDA $10
	for i := 0; i < 4; i++ {
		b.StepInstruction()
	}
	require.Equal(t, byte(0x37), b.CPU.A)
}

func TestBranchNotTakenCostsTwoCycles(t *testing.T) {
	b := newTestBoard(0xA9, 0x01, 0xF0, 0x02) // LDA #$01; BEQ +2 (not taken, Z clear)
	b.StepInstruction()
	_, cycles := b.StepInstruction()
	require.Equal(t, 2, cycles)
}

func TestBranchTakenAcrossPageCostsFourCycles(t *testing.T) {
	b := newTestBoard()
	b.CPU.PC = 0x80FD
	b.cartridge.prgROM[0x00FD] = 0xF0 // BEQ (PRG-ROM is not CPU-writable, so patch the image)
	b.cartridge.prgROM[0x00FE] = 0x01 // operand: PC lands at 0x80FF+0x01, crossing into page 0x81
	b.CPU.P.Z = true
	_, cycles := b.StepInstruction()
	require.Equal(t, 4, cycles)
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	b := newTestBoard(0x20, 0x05, 0x80, 0xEA, 0xEA, 0x60) // JSR $8005; (pad); RTS
	startSP := b.CPU.S
	b.StepInstruction() // JSR
	require.Equal(t, uint16(0x8005), b.CPU.PC)
	b.StepInstruction() // RTS
	require.Equal(t, uint16(0x8003), b.CPU.PC)
	require.Equal(t, startSP, b.CPU.S)
}

func TestPHAPLARoundTrips(t *testing.T) {
	b := newTestBoard(0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68) // LDA #$42; PHA; LDA #$00; PLA
	for i := 0; i < 4; i++ {
		b.StepInstruction()
	}
	require.Equal(t, byte(0x42), b.CPU.A)
}

func TestIllegalLAXLoadsAAndX(t *testing.T) {
	b := newTestBoard(0xA7, 0x10) // LAX $10 (illegal)
	b.cpuWrite(0x0010, 0x99)
	b.StepInstruction()
	require.Equal(t, byte(0x99), b.CPU.A)
	require.Equal(t, byte(0x99), b.CPU.X)
}

func TestJAMHaltsTheCPU(t *testing.T) {
	b := newTestBoard(0x02) // JAM
	b.StepInstruction()
	require.True(t, b.CPU.Jammed())
	pcBefore := b.CPU.PC
	b.Clock()
	require.Equal(t, pcBefore, b.CPU.PC)
}
