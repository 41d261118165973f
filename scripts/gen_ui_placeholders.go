//go:build ignore

// gen_ui_placeholders.go – run with:
//
//	go run scripts/gen_ui_placeholders.go
//
// Creates assets/ui/*.png placeholder textures for the stationfall UI skin.
// Each file is a small PNG with a coloured border that makes the 9-slice
// corners clearly visible.  Replace with real art at any time – the 9-slice
// slice constants are in internal/gui/theme/textures.go.
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	if err := os.MkdirAll(filepath.Join("assets", "ui"), 0o755); err != nil {
		log.Fatal(err)
	}

	// hull_frame.png  – 64×64, slice=12
	// Hull-steel frame border, very dark centre (the inner console BG).
	genTexture("assets/ui/hull_frame.png", 64, 64, 12,
		color.RGBA{0x33, 0x56, 0x6B, 0xFF}, // border: hull steel
		color.RGBA{0x0B, 0x10, 0x16, 0xFF}, // centre: app background
	)

	// panel_plate.png – 48×48, slice=8
	// Dark slate interior with a subtle bulkhead border.
	genTexture("assets/ui/panel_plate.png", 48, 48, 8,
		color.RGBA{0x24, 0x32, 0x3D, 0xFF}, // border: bulkhead
		color.RGBA{0x12, 0x1A, 0x22, 0xFF}, // centre: panel dark
	)

	// button_plate.png – 32×32, slice=8
	// Raised plate with a signal-teal edge.
	genTexture("assets/ui/button_plate.png", 32, 32, 8,
		color.RGBA{0x2F, 0xB8, 0xC6, 0xFF}, // border: signal teal
		color.RGBA{0x17, 0x21, 0x2B, 0xFF}, // centre: panel raised
	)

	// input_slot.png – 24×24, slice=6
	// Slightly inset console tray.
	genTexture("assets/ui/input_slot.png", 24, 24, 6,
		color.RGBA{0x24, 0x32, 0x3D, 0xFF}, // border: bulkhead
		color.RGBA{0x08, 0x0C, 0x10, 0xFF}, // centre: near-black tray
	)

	log.Println("Placeholder textures written to assets/ui/")
}

// genTexture writes a PNG of size w×h.
// The outer 'slice' pixels on all four sides are coloured 'border'.
// The remaining centre is coloured 'centre'.
func genTexture(path string, w, h, slice int, border, centre color.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < slice || y < slice || x >= w-slice || y >= h-slice {
				img.SetRGBA(x, y, border)
			} else {
				img.SetRGBA(x, y, centre)
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
	log.Printf("  wrote %s (%dx%d slice=%d)", path, w, h, slice)
}
