//go:build cgo

package gui

import "github.com/appengine-ltd/stationfall/internal/hud"

// PanelLabel is one rendered line of the details panel.
type PanelLabel struct {
	Key     string
	Text    string
	Tooltip string
}

// DetailsPanel collects the inspector's label writes for one frame and
// publishes them as a batch on Commit. Writes land in a pending buffer that
// readers never see; Commit swaps it in wholesale, so a key that was not
// rewritten this frame simply disappears from the panel. Rewriting a key
// within a batch updates the text in place and keeps its original position.
type DetailsPanel struct {
	active bool
	title  string

	pending    []PanelLabel
	pendingIdx map[string]int

	frame []PanelLabel
}

var _ hud.Surface = (*DetailsPanel)(nil)

func NewDetailsPanel() *DetailsPanel {
	return &DetailsPanel{pendingIdx: make(map[string]int)}
}

func (p *DetailsPanel) SetActive(active bool) {
	p.active = active
}

func (p *DetailsPanel) SetTitle(title string) {
	p.title = title
}

func (p *DetailsPanel) SetLabel(key, text, tooltip string) {
	if i, ok := p.pendingIdx[key]; ok {
		p.pending[i].Text = text
		p.pending[i].Tooltip = tooltip
		return
	}
	p.pendingIdx[key] = len(p.pending)
	p.pending = append(p.pending, PanelLabel{Key: key, Text: text, Tooltip: tooltip})
}

func (p *DetailsPanel) Commit() {
	p.frame = p.pending
	p.pending = make([]PanelLabel, 0, len(p.frame))
	p.pendingIdx = make(map[string]int, len(p.frame))
}

// Deactivate clears the panel entirely. The frontend calls it when the
// selection is dropped; the inspector itself only ever activates.
func (p *DetailsPanel) Deactivate() {
	p.active = false
	p.title = ""
	p.frame = nil
	p.pending = p.pending[:0]
	clear(p.pendingIdx)
}

func (p *DetailsPanel) Active() bool {
	return p.active
}

func (p *DetailsPanel) Title() string {
	return p.title
}

// Lines returns the last committed frame in write order. The slice is owned
// by the panel and valid until the next Commit.
func (p *DetailsPanel) Lines() []PanelLabel {
	return p.frame
}

// Lookup finds a committed line by key.
func (p *DetailsPanel) Lookup(key string) (PanelLabel, bool) {
	for _, label := range p.frame {
		if label.Key == key {
			return label, true
		}
	}
	return PanelLabel{}, false
}
