//go:build cgo

package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Brand palette for the derelict-station console UI.
var (
	BG            = rl.NewColor(0x0B, 0x10, 0x16, 255) // #0B1016
	Panel         = rl.NewColor(0x12, 0x1A, 0x22, 255) // #121A22
	PanelRaised   = rl.NewColor(0x17, 0x21, 0x2B, 255) // #17212B
	Border        = rl.NewColor(0x24, 0x32, 0x3D, 255) // #24323D
	Divider       = rl.NewColor(0x1C, 0x28, 0x33, 255) // #1C2833
	TextPrimary   = rl.NewColor(0xD8, 0xE2, 0xE8, 255) // #D8E2E8
	TextSecondary = rl.NewColor(0x93, 0xA6, 0xB0, 255) // #93A6B0
	TextMuted     = rl.NewColor(0x61, 0x73, 0x7E, 255) // #61737E
	AccentSignal  = rl.NewColor(0x2F, 0xB8, 0xC6, 255) // #2FB8C6
	AccentHull    = rl.NewColor(0x33, 0x56, 0x6B, 255) // #33566B
	WarningAmber  = rl.NewColor(0xC9, 0x9A, 0x3A, 255) // #C99A3A
	Danger        = rl.NewColor(0xC4, 0x55, 0x44, 255) // #C45544
	DisabledPanel = rl.NewColor(0x0E, 0x14, 0x1A, 255)
	DisabledText  = TextMuted
)
