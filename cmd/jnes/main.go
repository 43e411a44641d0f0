// Command jnes is the host shell: it loads an iNES ROM, assembles a
// nes.Board around it, and either opens the glfw/OpenGL window (the normal
// path) or launches the bubbletea debugger (-debug), per SPEC_FULL.md's CLI
// surface.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/jyane/gones/debugger"
	"github.com/jyane/gones/nes"
	"github.com/jyane/gones/ui"
)

func main() {
	debug := flag.Bool("debug", false, "launch the interactive debugger instead of the glfw window")
	flag.Parse()

	if flag.NArg() != 1 {
		glog.Exitf("usage: %s [-debug] rom.nes", os.Args[0])
	}
	romPath := flag.Arg(0)

	data, err := os.ReadFile(romPath)
	if err != nil {
		glog.Exitf("reading %s: %v", romPath, err)
	}
	cart, err := nes.NewCartridge(data)
	if err != nil {
		glog.Exitf("loading %s: %v", romPath, err)
	}
	glog.Infof("loaded %s: mapper %d, mirroring %v", romPath, cart.MapperNumber(), cart.Mirroring())

	b := nes.NewBoard(cart)
	b.PowerOn()

	if *debug {
		if err := debugger.Run(b); err != nil {
			glog.Exitf("debugger: %v", err)
		}
		return
	}
	ui.Start(b, 256*3, 240*3)
}
