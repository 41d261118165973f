//go:build cgo

package gui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/stationfall/internal/packs"
	uitheme "github.com/appengine-ltd/stationfall/internal/gui/theme"
)

type packsState struct {
	Cursor int

	Packs     []packs.Pack
	Installed map[string]bool

	Downloading     bool
	DownloadingID   string
	DownloadedBytes int64
	DownloadTotal   int64

	Status string

	progressCh chan packs.Progress
	doneCh     chan error
}

type packRowAction int

const (
	packRowPack packRowAction = iota
	packRowBack
)

type packRow struct {
	Label  string
	Value  string
	Action packRowAction
	Index  int
}

func (ui *gameUI) openPacks() {
	ui.packs = packsState{
		Packs:  packs.Available(),
		Status: "Packs drop into the watched folder and apply without a restart.",
	}
	ui.refreshInstalledPacks()
	ui.screen = screenPacks
}

func (ui *gameUI) updatePacks() {
	ui.pollPackDownload()

	rows := ui.packRows()
	if len(rows) == 0 {
		return
	}
	ui.packs.Cursor = clampInt(ui.packs.Cursor, 0, len(rows)-1)

	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.screen = screenMenu
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		ui.packs.Cursor = wrapIndex(ui.packs.Cursor+1, len(rows))
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		ui.packs.Cursor = wrapIndex(ui.packs.Cursor-1, len(rows))
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		row := rows[ui.packs.Cursor]
		switch row.Action {
		case packRowPack:
			pack := ui.packs.Packs[row.Index]
			if ui.packs.Installed[pack.ID] {
				ui.removePack(pack)
			} else {
				ui.startPackDownload(pack)
			}
		case packRowBack:
			ui.screen = screenMenu
		}
	}
}

func (ui *gameUI) packRows() []packRow {
	rows := make([]packRow, 0, len(ui.packs.Packs)+1)
	for i, pack := range ui.packs.Packs {
		value := "Get"
		switch {
		case ui.packs.Downloading && ui.packs.DownloadingID == pack.ID:
			value = "Fetching"
		case ui.packs.Installed[pack.ID]:
			value = "Installed"
		}
		rows = append(rows, packRow{Label: pack.Name, Value: value, Action: packRowPack, Index: i})
	}
	rows = append(rows, packRow{Label: "Back", Value: "Enter", Action: packRowBack})
	return rows
}

func (ui *gameUI) refreshInstalledPacks() {
	installed := make(map[string]bool, len(ui.packs.Packs))
	for _, pack := range ui.packs.Packs {
		installed[pack.ID] = packs.Installed(ui.packsDir, pack)
	}
	ui.packs.Installed = installed
}

func (ui *gameUI) removePack(pack packs.Pack) {
	if ui.packs.Downloading {
		return
	}
	err := os.Remove(filepath.Join(ui.packsDir, pack.FileName))
	if err != nil && !os.IsNotExist(err) {
		ui.packs.Status = "Could not remove pack: " + err.Error()
		return
	}
	ui.refreshInstalledPacks()
	ui.packs.Status = pack.Name + " removed. Readouts fall back to the built-in strings."
}

func (ui *gameUI) startPackDownload(pack packs.Pack) {
	if ui.packs.Downloading {
		return
	}
	ui.packs.Downloading = true
	ui.packs.DownloadingID = pack.ID
	ui.packs.DownloadedBytes = 0
	ui.packs.DownloadTotal = 0
	ui.packs.Status = "Fetching " + pack.Name + "..."

	progressCh := make(chan packs.Progress, 16)
	doneCh := make(chan error, 1)
	ui.packs.progressCh = progressCh
	ui.packs.doneCh = doneCh

	go func(progressCh chan<- packs.Progress, doneCh chan<- error, dir string, pack packs.Pack) {
		err := packs.Download(context.Background(), dir, pack, func(p packs.Progress) {
			select {
			case progressCh <- p:
			default:
			}
		})
		doneCh <- err
	}(progressCh, doneCh, ui.packsDir, pack)
}

func (ui *gameUI) pollPackDownload() {
	if ui.packs.progressCh != nil {
		for {
			select {
			case p := <-ui.packs.progressCh:
				ui.packs.DownloadedBytes = p.DownloadedBytes
				ui.packs.DownloadTotal = p.TotalBytes
			default:
				goto drained
			}
		}
	}

drained:
	if ui.packs.doneCh == nil {
		return
	}
	select {
	case err := <-ui.packs.doneCh:
		ui.packs.Downloading = false
		ui.packs.DownloadingID = ""
		ui.packs.progressCh = nil
		ui.packs.doneCh = nil
		ui.refreshInstalledPacks()
		if err != nil {
			ui.packs.Status = "Fetch failed: " + err.Error()
			return
		}
		ui.packs.Status = "Pack installed. New strings are live."
	default:
	}
}

func (ui *gameUI) drawPacks(inset rl.Rectangle) {
	panelW := inset.Width - 2*spaceS
	left := rl.NewRectangle(inset.X+spaceS, inset.Y+spaceS, panelW*0.46, inset.Height-2*spaceS)
	right := rl.NewRectangle(left.X+left.Width+spaceS, left.Y, panelW-left.Width-spaceS, left.Height)
	DrawPanel(left, "Content Packs", true)
	DrawPanel(right, "Pack Details", false)

	rows := ui.packRows()
	ui.packs.Cursor = clampInt(ui.packs.Cursor, 0, max(0, len(rows)-1))
	rowX := left.X + spaceM
	rowW := left.Width - 2*spaceM
	y := left.Y + 92
	for i, row := range rows {
		state := listStateNormal
		if i == ui.packs.Cursor {
			state = listStateSelected
		}
		DrawListItem(listRowRect(rowX, y, rowW), state, row.Label, row.Value)
		y += uitheme.RowHeight + spaceXS
	}
	DrawHintText("Up/Down move   Enter get or remove   Esc back", int32(left.X)+spaceM, int32(left.Y+left.Height)-30)

	textX := int32(right.X) + spaceM
	textW := int32(right.Width) - 2*spaceM
	textY := int32(right.Y) + 92

	row := rows[ui.packs.Cursor]
	if row.Action == packRowPack {
		pack := ui.packs.Packs[row.Index]
		drawText(pack.Name, textX, textY, typeScale.Header, colorText)
		textY += textLineHeight(typeScale.Header) + 8
		textY = drawWrappedText(pack.Blurb, textX, textY, textW, typeScale.Body, colorDim)
		textY += textLineHeight(typeScale.Body)

		drawText("File: "+pack.FileName, textX, textY, typeScale.Small, colorMuted)
		textY += textLineHeight(typeScale.Small) + 4
		if ui.packs.Installed[pack.ID] {
			drawText("Installed in "+safeText(ui.packsDir), textX, textY, typeScale.Small, colorAccent)
			textY += textLineHeight(typeScale.Small) + 4
		}
	}

	if ui.packs.Downloading {
		progress := formatPackProgress(ui.packs.DownloadedBytes, ui.packs.DownloadTotal)
		drawText(progress, textX, int32(right.Y+right.Height)-120, typeScale.Body, colorAccent)
	}

	if strings.TrimSpace(ui.packs.Status) != "" {
		statusColor := colorDim
		statusLower := strings.ToLower(ui.packs.Status)
		if strings.Contains(statusLower, "failed") || strings.Contains(statusLower, "could not") {
			statusColor = colorWarn
		}
		drawWrappedText(ui.packs.Status, textX, int32(right.Y+right.Height)-84, textW, typeScale.Small, statusColor)
	}
}

func formatPackProgress(downloaded, total int64) string {
	if total > 0 {
		percent := float64(downloaded) / float64(total) * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		return fmt.Sprintf("Fetching: %.0f%% (%s / %s)", percent, formatByteCount(downloaded), formatByteCount(total))
	}
	return "Fetching: " + formatByteCount(downloaded)
}

func formatByteCount(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	units := []string{"KB", "MB", "GB", "TB"}
	value := float64(bytes)
	unit := units[0]
	for i := 0; i < len(units); i++ {
		value /= 1024
		unit = units[i]
		if value < 1024 || i == len(units)-1 {
			break
		}
	}
	if value >= 100 {
		return fmt.Sprintf("%.0f %s", value, unit)
	}
	if value >= 10 {
		return fmt.Sprintf("%.1f %s", value, unit)
	}
	return fmt.Sprintf("%.2f %s", value, unit)
}
