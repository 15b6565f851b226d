/*
Package grayview converts a color raster image to grayscale by two independent
routes and shows the results side by side for visual comparison.

The first route is a plain library call; the second walks the pixels of a
strided, blue-green-red byte buffer and applies the Rec.601 luminance formula

	Y = 0.299*R + 0.587*G + 0.114*B

truncating the weighted sum toward zero. Both renditions are displayed next to
the color source in a single window until the user presses a key.

The package provides a command line interface:

	$ grayview image.jpg

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"image"
		"log"
		"os"

		"grayview"
	)

	func main() {
		f, err := os.Open("image.jpg")
		if err != nil {
			log.Fatalf("error opening the source image: %v", err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			log.Fatalf("error decoding the source image: %v", err)
		}

		p := &grayview.Processor{}

		res := p.Convert(img)
		if err := grayview.NewGUI(res).Run(); err != nil {
			log.Fatalf("error showing the comparison window: %v", err)
		}
	}
*/
package grayview
