package main

import (
	"flag"
	"fmt"
	"os"

	"trs80m3-periph/internal/cassette"
	"trs80m3-periph/internal/clock"
	"trs80m3-periph/internal/debug"
	"trs80m3-periph/internal/interrupts"
)

func main() {
	inPath := flag.String("in", "", "Path to a .cas tape image to inspect")
	newPath := flag.String("new", "", "Write a fresh blank tape image to this path")
	size := flag.Int("size", cassette.BlankTapeLength, "Blank tape size in bytes, used with -new")
	flag.Parse()

	if *inPath == "" && *newPath == "" {
		fmt.Println("Usage: tapetool -in <file> | -new <file> [-size <bytes>]")
		os.Exit(1)
	}

	if *newPath != "" {
		if err := os.WriteFile(*newPath, make([]byte, *size), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *newPath, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote blank %d-byte tape to %s\n", *size, *newPath)
		return
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *inPath, err)
		os.Exit(1)
	}

	logger := debug.NewLogger(1000)
	clk := clock.New()
	sched := clock.NewScheduler(clk)
	ints := interrupts.NewManager()
	tape := cassette.New(clk, sched, ints, logger)
	tape.LoadTape(data)

	fmt.Printf("%s: %d bytes, blank=%v, speed=%s, status=%s\n",
		*inPath, len(data), tape.IsBlank(), tape.Speed(), tape.Status())
}
