//go:build cgo

package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Usage and blurb text per console verb. The verb list itself comes from the
// parser registry so a new command shows up here without touching this file.
var guideUsage = map[string]string{
	"help":      "help",
	"select":    "select <object>",
	"clear":     "clear",
	"look":      "look [room]",
	"entities":  "entities [room]",
	"rooms":     "rooms",
	"room":      "room <name>",
	"pause":     "pause",
	"resume":    "resume",
	"step":      "step [n]",
	"heat":      "heat <object> [n] [k]",
	"cool":      "cool <object> [n] [k]",
	"infect":    "infect <object> [germ] [n]",
	"cure":      "cure <object> | cure all",
	"toggle":    "toggle <fixture>",
	"swap":      "swap <object> <material>",
	"unit":      "unit <k|c|f>",
	"radiation": "radiation [on|off]",
	"save":      "save [slot]",
	"load":      "load [slot]",
	"menu":      "menu",
}

var guideBlurb = map[string]string{
	"help":      "Open this guide.",
	"select":    "Inspect an object by name.",
	"clear":     "Drop the current selection.",
	"look":      "Describe the focused room.",
	"entities":  "List objects aboard.",
	"rooms":     "List rooms with ambient readings.",
	"room":      "Move the room focus.",
	"pause":     "Hold the station clock.",
	"resume":    "Release the station clock.",
	"step":      "Advance n ticks while holding.",
	"heat":      "Raise an object's temperature.",
	"cool":      "Lower an object's temperature.",
	"infect":    "Seed germs on an object.",
	"cure":      "Sterilise one object, or all of them.",
	"toggle":    "Switch a fixture on or off.",
	"swap":      "Rebuild an object from a new material.",
	"unit":      "Change the temperature readout unit.",
	"radiation": "Flip the radiation hazard and readouts.",
	"save":      "Write the shift to a save slot.",
	"load":      "Restore a saved shift.",
	"menu":      "Return to the main menu.",
}

func (ui *gameUI) updateConsoleGuide() {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyEnter) || ShiftPressedKey(rl.KeyG) {
		if ui.sim != nil {
			ui.screen = screenRun
		} else {
			ui.screen = screenMenu
		}
	}
}

func (ui *gameUI) drawConsoleGuide(inset rl.Rectangle) {
	panel := rl.NewRectangle(inset.X+spaceS, inset.Y+spaceS, inset.Width-2*spaceS, inset.Height-2*spaceS)
	DrawPanel(panel, "Console Guide", true)

	splitX := panel.X + panel.Width*0.58
	left := rl.NewRectangle(panel.X+spaceM, panel.Y+86, splitX-panel.X-2*spaceM, panel.Height-140)
	right := rl.NewRectangle(splitX, panel.Y+86, panel.X+panel.Width-splitX-spaceM, panel.Height-140)

	drawText("Console Commands", int32(left.X), int32(left.Y), typeScale.Body, colorAccent)
	y := int32(left.Y) + textLineHeight(typeScale.Body) + 10
	lineH := textLineHeight(typeScale.Small) + 4
	descX := int32(left.X) + 252
	for _, cmd := range ui.parser.Commands() {
		usage := guideUsage[cmd.Canonical]
		if usage == "" {
			usage = cmd.Canonical
		}
		drawText(usage, int32(left.X), y, typeScale.Small, colorText)
		drawText(guideBlurb[cmd.Canonical], descX, y, typeScale.Small, colorDim)
		y += lineH
		if y > int32(left.Y+left.Height)-lineH {
			break
		}
	}

	ry := int32(right.Y)
	drawText("Hotkeys", int32(right.X), ry, typeScale.Body, colorAccent)
	ry += textLineHeight(typeScale.Body) + 10
	hotkeys := []string{
		"Shift+P     hold or release the clock",
		"Shift+M     open the deck chart",
		"Shift+G     open this guide",
		"Shift+S     quick save to slot 1",
		"Shift+L     restore the latest save",
		"TAB         cycle selection (Shift+TAB back)",
		"Left/Right  move the room focus",
		"Esc         clear input, then selection, then menu",
	}
	for _, line := range hotkeys {
		drawText(line, int32(right.X), ry, typeScale.Small, colorText)
		ry += lineH
	}

	ry += lineH
	drawText("Console Tips", int32(right.X), ry, typeScale.Body, colorAccent)
	ry += textLineHeight(typeScale.Body) + 10
	tips := []string{
		"Close spellings still match: slect tank works.",
		"Short forms work too: sel, l, ls, h.",
		"The words it and that refer to the selection.",
		"Quantities carry units: heat tank 20 k, cure all.",
		"When asked to clarify, answer with the option",
		"number, or type cancel to drop the question.",
	}
	for _, line := range tips {
		drawText(line, int32(right.X), ry, typeScale.Small, colorDim)
		ry += lineH
	}

	DrawHintText("Esc or Enter return", int32(panel.X)+spaceM, int32(panel.Y+panel.Height)-30)
}
