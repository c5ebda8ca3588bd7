// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// rastercat walks a raster stream sequentially and prints one summary line
// per page. It is a smoke-test harness for the codec as much as a tool: a
// stream that rastercat can walk end to end is structurally sound.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/rasterstream/raster"
)

var orderNames = map[raster.ColorOrder]string{
	raster.ColorOrderChunked: "chunked",
	raster.ColorOrderBanded:  "banded",
	raster.ColorOrderPlanar:  "planar",
}

func main() {
	file := flag.String("file", "", "raster stream to read (default stdin)")
	flag.Parse()

	in := io.Reader(os.Stdin)
	name := "stdin"
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rastercat:", err)
			os.Exit(1)
		}
		defer f.Close()
		in, name = f, *file
	}

	s, err := raster.Open(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rastercat:", err)
		os.Exit(1)
	}
	defer s.Close()

	fmt.Printf("%s: sync %#08x compressed=%v swapped=%v\n",
		name, uint32(s.Sync()), s.Compressed(), s.Swapped())

	for page := 1; ; page++ {
		var h raster.HeaderV2
		if err := s.ReadHeader2(&h); err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintf(os.Stderr, "rastercat: page %d: %v\n", page, err)
			os.Exit(1)
		}

		order := orderNames[h.ColorOrder()]
		if order == "" {
			order = fmt.Sprintf("order(%d)", h.ColorOrder())
		}

		bpl := int(h.BytesPerLine())
		rows := s.Remaining()
		total := 0
		if bpl > 0 {
			row := make([]byte, bpl)
			for s.Remaining() > 0 {
				if s.ReadPixels(row) != bpl {
					fmt.Fprintf(os.Stderr, "rastercat: page %d: short pixel read\n", page)
					os.Exit(1)
				}
				total += bpl
			}
		} else if rows > 0 {
			fmt.Fprintf(os.Stderr, "rastercat: page %d: %d rows but zero bytes per line\n", page, rows)
			os.Exit(1)
		}

		fmt.Printf("page %d: %dx%d %s cspace=%d bpc=%d bpp=%d rows=%d bytes=%d\n",
			page, h.Width(), h.Height(), order, h.ColorSpace(),
			h.BitsPerColor(), h.BitsPerPixel(), rows, total)
	}
}
