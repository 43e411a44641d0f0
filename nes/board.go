package nes

import "github.com/golang/glog"

// Board is the NES motherboard: it owns the CPU, PPU, cartridge, RAM, and
// controllers, and is the only component that resolves bus addresses. CPU
// and PPU never read or write memory directly; they drive a pinout and the
// Board fills in the other side between half-cycles/dots.
type Board struct {
	CPU *CPU
	PPU *PPU
	APU *APU

	cartridge *Cartridge
	mapper    Mapper
	ram       *RAM
	vram      [0x800]byte // nametable RAM, mirrored per cartridge.Mirroring()
	prgRAM    [0x2000]byte

	controller1 *Controller
	controller2 *Controller

	cpuPin CpuPinout
	ppuPin PpuPinout

	dmaActive  bool
	dmaPage    byte
	dmaAddr    byte
	dmaBuffer  byte
	dmaHasRead bool

	ppuNMIOld bool
	frames    uint64
}

// NewBoard assembles a Board around a loaded cartridge.
func NewBoard(cart *Cartridge) *Board {
	b := &Board{
		cartridge:   cart,
		mapper:      NewMapper(cart.MapperNumber(), cart.prgROM, cart.chrROM),
		ram:         NewRAM(),
		controller1: NewController(),
		controller2: NewController(),
	}
	b.PPU = NewPPU(b.ppuBusRead, b.ppuBusWrite)
	b.APU = NewAPU()
	b.CPU = &CPU{}
	b.CPU.Reset()
	return b
}

// Clock advances the Board by one master cycle: three PPU dots interleaved
// with the two CPU half-cycles, in the fixed order dot N, dot N+1, CPU φ1,
// dot N+2, CPU φ2. It returns true once a full video frame has completed.
func (b *Board) Clock() bool {
	frameDone := false
	// A cycle that starts with DMA active suspends both CPU halves, including
	// the φ2 of the cycle in which the DMA finishes.
	suspended := b.dmaActive

	b.tickPPU(&frameDone)
	b.tickPPU(&frameDone)

	b.cpuPin.Phi = false
	if !suspended {
		b.CPU.Tick(&b.cpuPin)
		b.resolveCPURead()
	} else {
		b.stepDMA()
	}

	b.tickPPU(&frameDone)

	b.cpuPin.Phi = true
	if !suspended {
		b.CPU.Tick(&b.cpuPin)
		b.resolveCPUWrite()
	}

	b.APU.Step()

	b.cpuPin.Reset, b.cpuPin.IRQ, b.cpuPin.NMI = true, true, true

	return frameDone
}

func (b *Board) tickPPU(frameDone *bool) {
	b.PPU.Tick(&b.ppuPin)
	if b.ppuPin.FinishedFrame {
		*frameDone = true
		b.frames++
	}
	// NMI is active-low; fire on the falling edge (not-asserted -> asserted).
	if b.ppuNMIOld && !b.ppuPin.NMI {
		b.CPU.SetNMI()
	}
	b.ppuNMIOld = b.ppuPin.NMI
}

// resolveCPURead services the CPU's φ1 read half-cycle: AddressRW is true
// for a read, false for a write setup (the actual write data isn't valid
// until φ2).
func (b *Board) resolveCPURead() {
	if !b.cpuPin.AddressRW {
		return
	}
	b.cpuPin.DataBus = b.cpuRead(b.cpuPin.AddressBus)
}

// resolveCPUWrite services the CPU's φ2 half-cycle: if the cycle was a
// write, the data bus now holds the byte to commit.
func (b *Board) resolveCPUWrite() {
	if b.cpuPin.AddressRW {
		return
	}
	b.cpuWrite(b.cpuPin.AddressBus, b.cpuPin.DataBus)
}

func (b *Board) cpuRead(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.ram.read(addr % 0x0800)
	case addr < 0x4000:
		return b.PPU.ReadRegister(byte((addr - 0x2000) % 8))
	case addr == 0x4015:
		return b.APU.ReadRegister(addr)
	case addr == 0x4016:
		return b.controller1.read()
	case addr == 0x4017:
		return b.controller2.read()
	case addr >= 0x6000 && addr < 0x8000:
		return b.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		v, err := b.mapper.ReadFromCPU(addr)
		if err != nil {
			glog.Warningf("cpu read %04X: %v", addr, err)
			return 0
		}
		return v
	}
	return 0
}

func (b *Board) cpuWrite(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		b.ram.write(addr%0x0800, v)
	case addr < 0x4000:
		b.PPU.WriteRegister(byte((addr-0x2000)%8), v)
	case addr >= 0x4000 && addr <= 0x4013, addr == 0x4015, addr == 0x4017:
		b.APU.WriteRegister(addr, v)
	case addr == 0x4014:
		b.startDMA(v)
	case addr == 0x4016:
		b.controller1.write(v)
		b.controller2.write(v)
	case addr >= 0x6000 && addr < 0x8000:
		b.prgRAM[addr-0x6000] = v
	case addr >= 0x8000:
		if err := b.mapper.WriteFromCPU(addr, v); err != nil {
			glog.Warningf("cpu write %04X: %v", addr, err)
		}
	}
}

// ppuBusRead/ppuBusWrite resolve the PPU's own VRAM/CHR access, injected
// into NewPPU. 0x0000-0x1FFF is cartridge CHR space; 0x2000-0x2FFF is
// nametable RAM, mirrored per the cartridge's wiring.
func (b *Board) ppuBusRead(addr uint16) byte {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		v, err := b.mapper.ReadFromPPU(addr)
		if err != nil {
			glog.Warningf("ppu read %04X: %v", addr, err)
			return 0
		}
		return v
	case addr < 0x3000:
		return b.vram[b.mirrorNametable(addr)]
	default:
		return b.vram[b.mirrorNametable(addr-0x1000)]
	}
}

func (b *Board) ppuBusWrite(addr uint16, v byte) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if err := b.mapper.WriteFromPPU(addr, v); err != nil {
			glog.Warningf("ppu write %04X: %v", addr, err)
		}
	case addr < 0x3000:
		b.vram[b.mirrorNametable(addr)] = v
	default:
		b.vram[b.mirrorNametable(addr-0x1000)] = v
	}
}

func (b *Board) mirrorNametable(addr uint16) uint16 {
	table := (addr - 0x2000) / 0x400
	offset := (addr - 0x2000) % 0x400
	switch b.cartridge.Mirroring() {
	case MirrorVertical:
		return (table%2)*0x400 + offset
	default: // MirrorHorizontal
		return (table/2)*0x400 + offset
	}
}

// startDMA begins the 512-cycle OAM DMA transfer triggered by a CPU write
// to 0x4014: the CPU is suspended while 256 bytes are copied from
// page*0x100 into the PPU's primary OAM, alternating read and write cycles.
func (b *Board) startDMA(page byte) {
	b.dmaActive = true
	b.dmaPage = page
	b.dmaAddr = 0
	b.dmaHasRead = false
}

func (b *Board) stepDMA() {
	if !b.dmaHasRead {
		b.dmaBuffer = b.cpuRead(uint16(b.dmaPage)<<8 | uint16(b.dmaAddr))
		b.dmaHasRead = true
		return
	}
	b.PPU.primaryOAM[b.PPU.oamAddress] = b.dmaBuffer
	b.PPU.oamAddress++
	b.dmaHasRead = false
	b.dmaAddr++
	if b.dmaAddr == 0 {
		b.dmaActive = false
	}
}

// Peek reads a CPU-address-space byte for display purposes (the debugger's
// memory page and the tracer's disassembly). It goes through the same
// cpuRead path a real access would, so PPU register reads carry their usual
// side effects (PPUSTATUS clears VBlank, PPUDATA advances v) — fine for
// tracing PRG-ROM, which has none, but callers peeking live $2000-$3FFF
// should expect the same side effects an actual CPU read would have.
func (b *Board) Peek(addr uint16) byte { return b.cpuRead(addr) }

// SetControllers assigns live button state for the two controller ports.
func (b *Board) SetControllers(p1, p2 [8]bool) {
	b.controller1.Set(p1)
	b.controller2.Set(p2)
}

// PowerOn drives the reset line through the CPU's real reset sequence (7
// cycles) instead of the test-only CPU.Reset shortcut.
func (b *Board) PowerOn() {
	b.CPU.SetReset()
	b.Clock() // IR cycle: latches resetPending, enters the BRK-style service sequence
	for b.CPU.step != stepIR {
		b.Clock()
	}
}
