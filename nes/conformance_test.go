package nes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	pcRe  = regexp.MustCompile("^[A-Z0-9]{4}")
	aRe   = regexp.MustCompile("A:([A-Z0-9]*)")
	xRe   = regexp.MustCompile("X:([A-Z0-9]*)")
	yRe   = regexp.MustCompile("Y:([A-Z0-9]*)")
	pRe   = regexp.MustCompile("P:([A-Z0-9]*)")
	spRe  = regexp.MustCompile("SP:([A-Z0-9]*)")
	cycRe = regexp.MustCompile(`CYC:(\d*)`)
)

// TestNestest reproduces the nestest golden trace: starting the CPU at
// PC=0xC000 (bypassing the reset vector, which this ROM doesn't use for its
// automated mode) with P=0x24, S=0xFD, cycle=7, it must match
// testdata/nestest.log instruction-for-instruction. The fixture ROM and log
// are copyrighted third-party test artifacts not distributed with this
// repository, so the test skips rather than fails when they're absent.
func TestNestest(t *testing.T) {
	romFile, err := os.Open("../testdata/nestest.nes")
	if err != nil {
		t.Skipf("testdata/nestest.nes not present: %v", err)
	}
	defer romFile.Close()
	logFile, err := os.Open("../testdata/nestest.log")
	if err != nil {
		t.Skipf("testdata/nestest.log not present: %v", err)
	}
	defer logFile.Close()

	rom, err := io.ReadAll(romFile)
	require.NoError(t, err)
	cart, err := NewCartridge(rom)
	require.NoError(t, err)

	b := NewBoard(cart)
	b.CPU.Reset()
	b.CPU.PC = 0xC000
	b.CPU.S = 0xFD
	b.CPU.P.decodeFrom(0x24)

	var wantPC uint16
	var wantA, wantX, wantY, wantP, wantSP byte
	var wantCycle int

	scanner := bufio.NewScanner(logFile)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Sscanf(pcRe.FindString(line), "%x", &wantPC)
		fmt.Sscanf(aRe.FindStringSubmatch(line)[1], "%x", &wantA)
		fmt.Sscanf(xRe.FindStringSubmatch(line)[1], "%x", &wantX)
		fmt.Sscanf(yRe.FindStringSubmatch(line)[1], "%x", &wantY)
		fmt.Sscanf(pRe.FindStringSubmatch(line)[1], "%x", &wantP)
		fmt.Sscanf(spRe.FindStringSubmatch(line)[1], "%x", &wantSP)
		fmt.Sscanf(cycRe.FindStringSubmatch(line)[1], "%d", &wantCycle)

		require.Equalf(t, wantPC, b.CPU.PC, "PC mismatch before %q", line)
		require.Equalf(t, wantA, b.CPU.A, "A mismatch before %q", line)
		require.Equalf(t, wantX, b.CPU.X, "X mismatch before %q", line)
		require.Equalf(t, wantY, b.CPU.Y, "Y mismatch before %q", line)
		require.Equalf(t, wantP, b.CPU.P.encode(), "P mismatch before %q", line)
		require.Equalf(t, wantSP, b.CPU.S, "SP mismatch before %q", line)
		require.Equalf(t, wantCycle, int(b.CPU.cycles)+7, "cycle mismatch before %q", line)

		_, _ = b.StepInstruction()
	}
}
