package main

import (
	"flag"
	"fmt"
	"os"

	"trs80m3-periph/internal/floppy"
)

func main() {
	action := flag.String("action", "info", "info | format")
	doubleDensity := flag.Bool("dd", true, "Use double density track length")
	writeProtect := flag.Bool("wp", false, "Mark the image write-protected")
	track := flag.Int("track", 0, "Track to report on, used with -action info")
	side := flag.Int("side", 0, "Side to report on, used with -action info")
	flag.Parse()

	img := floppy.NewBlankImage()
	img.SetWriteProtected(*writeProtect)

	switch *action {
	case "format":
		for t := 0; t < floppy.MaxTracks; t++ {
			for s := 0; s < 2; s++ {
				img.TrackData(t, s)
			}
		}
		fmt.Printf("Formatted a %d-track, double-sided blank image (writeProtected=%v)\n",
			floppy.MaxTracks, *writeProtect)
	case "info":
		tr := img.TrackData(*track, *side)
		fmt.Printf("track %d side %d: %d bytes (doubleDensity=%v), loaded=%v, writeProtected=%v\n",
			*track, *side, tr.Len(*doubleDensity), *doubleDensity, img.Loaded(), img.WriteProtected())
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n", *action)
		os.Exit(1)
	}
}
