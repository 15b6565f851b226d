package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"gioui.org/app"

	"grayview"
	"grayview/utils"
)

const HelpBanner = `
┌─┐┬─┐┌─┐┬ ┬┬  ┬┬┌─┐┬ ┬
│ ┬├┬┘├─┤└┬┘└┐┌┘│├┤ │││
└─┘┴└─┴ ┴ ┴  └┘ ┴└─┘└┴┘

Side by side BGR to grayscale comparison.
    Version: %s

Usage: grayview [flags] <image|directory|url|->
`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	output  = flag.String("out", "", "Comparison sheet destination (output directory in batch mode)")
	diff    = flag.String("diff", "", "Destination of the difference image between the two grayscale routes")
	fixed   = flag.Bool("fixed", false, "Use the fixed-point form of the conversion kernel")
	noGUI   = flag.Bool("nogui", false, "Skip the comparison window")
	workers = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently in batch mode")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide an image to convert!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	proc := &grayview.Processor{
		FixedPoint: *fixed,
		Preview:    !*noGUI,
	}

	op := &grayview.Ops{
		Src:      flag.Arg(0),
		Dst:      *output,
		Diff:     *diff,
		PipeName: pipeName,
		Workers:  *workers,
	}

	// The Gio event loop owns the main thread; the conversion runs alongside
	// and terminates the process once it is done.
	go func() {
		proc.Execute(op)
		os.Exit(0)
	}()
	app.Main()
}
