package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/profile"

	"dmgo/internal/gb"
	"dmgo/internal/ui"
)

func main() {
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	paletteName := flag.String("palette", "green", "color palette: gray, green")
	scale := flag.Int("scale", 3, "window scale factor")
	skipBoot := flag.Bool("nobootrom", false, "skip the boot rom and start at 0x0100")
	profiling := flag.Bool("profile", false, "write a cpu profile")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <rom>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gb.SetLogger(logger)

	palette := gb.PaletteGreen
	switch *paletteName {
	case "green":
	case "gray":
		palette = gb.PaletteGray
	default:
		fmt.Fprintf(os.Stderr, "unknown palette %q\n", *paletteName)
		os.Exit(2)
	}

	if *profiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	romPath := flag.Arg(0)
	cart, err := gb.NewCartFromFile(romPath)
	if err != nil {
		slog.Error("couldn't load the rom", "path", romPath, "err", err)
		os.Exit(1)
	}

	screen := ui.NewScreen()
	machine := gb.New(cart, screen, palette)
	if *skipBoot {
		machine.SkipBoot()
	}

	title := cart.Header().Title
	if title == "" {
		title = "dmgo"
	}
	if err := ui.RunUI(ui.New(machine, screen, *scale), title); err != nil {
		os.Exit(1)
	}
}
