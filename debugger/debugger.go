// Package debugger is a bubbletea TUI front-end over nes.Board: single-step
// the CPU, watch registers and a page of memory, and set breakpoints,
// without needing a raw-stdin REPL.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/jyane/gones/nes"
)

type model struct {
	board *nes.Board

	offset      uint16 // page table scroll position
	breakpoints map[uint16]bool
	lastTrace   string
	err         error
	running     bool
}

// New creates a debugger model over an already-constructed Board.
func New(b *nes.Board) model {
	return model{board: b, breakpoints: make(map[uint16]bool)}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s", " ":
			m.lastTrace, _ = m.board.StepInstruction()
		case "r":
			m.running = true
		case "b":
			m.breakpoints[m.board.CPU.PC] = true
		case "up":
			m.offset -= 0x10
		case "down":
			m.offset += 0x10
		}
	}
	if m.running {
		m.lastTrace, _ = m.board.StepInstruction()
		if m.breakpoints[m.board.CPU.PC] || m.board.CPU.Jammed() {
			m.running = false
		} else {
			// keep stepping: deliver another message to Update
			return m, func() tea.Msg { return struct{}{} }
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	pc := m.board.CPU.PC
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		if addr == pc {
			s += fmt.Sprintf("[%02X]", m.board.Peek(addr))
		} else {
			s += fmt.Sprintf(" %02X ", m.board.Peek(addr))
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "addr | " + strings.Repeat(" x  ", 16)
	lines := []string{header}
	for row := uint16(0); row < 8; row++ {
		lines = append(lines, m.renderPage(m.offset+row*16))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	c := m.board.CPU
	var p byte
	for i, set := range c.Flags() {
		if set {
			p |= 1 << (7 - i)
		}
	}
	return fmt.Sprintf(`
PC: %04X
 A: %02X
 X: %02X
 Y: %02X
 S: %02X
 P: %02X
CYC: %d
N V _ B D I Z C
%s
`,
		c.PC, c.A, c.X, c.Y, c.S, p, c.Cycles(), flagRow(c))
}

func flagRow(c *nes.CPU) string {
	var s strings.Builder
	for _, set := range c.Flags() {
		if set {
			s.WriteString("/ ")
		} else {
			s.WriteString("  ")
		}
	}
	return s.String()
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		m.lastTrace,
		"",
		spew.Sdump(m.board.CPU),
		"[s/space] step  [r] run to breakpoint  [b] set breakpoint at PC  [q] quit",
	)
}

// Run starts the interactive TUI over an already-constructed Board,
// blocking until the user quits.
func Run(b *nes.Board) error {
	p := tea.NewProgram(New(b))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
