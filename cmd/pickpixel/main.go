// Command pickpixel samples a single pixel from an image file or URL and
// prints its color.
//
// Usage: pickpixel -x N -y N [-radius R] <file-or-url>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"pixelpick/internal/raster"
	"pixelpick/internal/source"
	"pixelpick/pkg/colorutil"
	"pixelpick/pkg/geometry"
)

func main() {
	log.SetFlags(0)

	x := flag.Int("x", 0, "pixel x coordinate")
	y := flag.Int("y", 0, "pixel y coordinate")
	radius := flag.Int("radius", 0, "average over a square of (2r+1) pixels")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -x N -y N [-radius R] <file-or-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	img, err := source.Load(context.Background(), flag.Arg(0))
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	surf, err := raster.NewSurface(img, geometry.NewRect(0, 0, float64(w), float64(h)))
	if err != nil {
		log.Fatalf("surface: %v", err)
	}
	defer surf.Release()

	var c colorutil.Color
	if *radius > 0 {
		c, err = surf.SampleAverage(*x, *y, *radius)
	} else {
		c, err = surf.Sample(*x, *y)
	}
	if err != nil {
		log.Fatalf("sample (%d, %d): %v", *x, *y, err)
	}

	fmt.Printf("%s  rgb(%d, %d, %d)\n", c.Hex(), c.R, c.G, c.B)
}
