package hud

import (
	"github.com/appengine-ltd/stationfall/internal/locale"
	"github.com/appengine-ltd/stationfall/internal/station"
)

// Refresh model:
// - Static lines rebuild only when the selected entity or its backing element
//   changes; the element is re-read from the entity on every call because
//   debris swaps element in place when it crosses a phase transition.
// - Volatile lines (age, uptime) refresh while the clock advances; pausing
//   freezes their text exactly as formatted.
// - Mass, temperature, heat capacity, germ, and circuit lines are formatted
//   fresh every frame straight from the live values.

// Surface is the display panel the inspector writes into. SetLabel is
// idempotent per key with last-write-wins; Commit finalizes one frame's batch
// and is called exactly once per update.
type Surface interface {
	SetActive(active bool)
	SetTitle(title string)
	SetLabel(key, text, tooltip string)
	Commit()
}

// Options are display preferences applied to every formatted line.
type Options struct {
	TempUnit  TempUnit
	Radiation bool
}

// Inspector owns the current selection snapshot and decides per frame what
// needs recomputing before pushing lines to a Surface.
type Inspector struct {
	scratch *Scratch
	res     locale.Resolver
	catalog *station.Catalog
	clock   *station.Clock
	opts    Options
	snap    *snapshot
}

// NewInspector wires the inspector to its collaborators. clock must point at
// the live sim clock; catalog and res must outlive the inspector.
func NewInspector(scratch *Scratch, res locale.Resolver, catalog *station.Catalog, clock *station.Clock, opts Options) *Inspector {
	if scratch == nil {
		scratch = NewScratch()
	}
	return &Inspector{
		scratch: scratch,
		res:     res,
		catalog: catalog,
		clock:   clock,
		opts:    opts,
	}
}

// SetOptions applies new display preferences and drops the cached snapshot
// so the next update rebuilds everything with the new settings.
func (in *Inspector) SetOptions(opts Options) {
	in.opts = opts
	in.snap = nil
}

func (in *Inspector) Options() Options {
	return in.opts
}

// Reset clears the snapshot and releases its captured handles. Frontends
// call it on teardown or when the selection is cleared.
func (in *Inspector) Reset() {
	in.snap = nil
}

type line struct {
	text    string
	tooltip string
}

type keyedLine struct {
	key string
	line
}

// snapshot is the cached bundle of derived values for one inspected entity.
// It is replaced wholesale on rebuild, never patched field by field, so the
// panel can never observe a half-updated mix of old and new text.
type snapshot struct {
	target  *station.Entity
	element station.ElementID
	elem    station.Element

	title       string
	elementName string

	// Static lines, computed once per rebuild.
	specificHeat keyedLine
	conductivity keyedLine
	phase        []keyedLine
	overheat     *keyedLine
	radiation    *keyedLine

	// Per-frame line templates and tooltips, resolved once per rebuild so
	// paused frames touch neither the resolver nor the static text.
	tempTmpl        string
	tempTip         string
	massTmpl        string
	massTip         string
	thermalMassTmpl string
	thermalMassTip  string
	germTmpl        string
	germTip         string
	circuitTmpl     string
	circuitTip      string
	ageTmpl         string
	ageTip          string
	uptimeTmpl      string
	uptimeTip       string

	// Volatile cached lines, refreshed only while time advances.
	age    line
	uptime *keyedLine
}

// Update is the once-per-frame entry point. A nil panel or nil target is a
// silent no-op: no label writes, no commit.
func (in *Inspector) Update(panel Surface, target *station.Entity) {
	if panel == nil || target == nil {
		return
	}

	liveElement := target.PrimaryElement()
	identityChanged := in.snap == nil || in.snap.target != target
	elementChanged := !identityChanged && in.snap.element != liveElement

	rebuilt := identityChanged || elementChanged
	volatileChanged := identityChanged || in.clock.Advancing()

	if rebuilt {
		in.snap = in.buildSnapshot(target, liveElement)
		panel.SetActive(true)
		panel.SetTitle(in.snap.title)
	} else if volatileChanged {
		in.refreshVolatile(in.snap)
	}

	in.pushLines(panel, target)
	panel.Commit()
}

// buildSnapshot computes every static line and resolves every template for
// the given target. Construction also primes the volatile lines so a rebuild
// while paused never shows empty age or uptime text.
func (in *Inspector) buildSnapshot(target *station.Entity, elementID station.ElementID) *snapshot {
	elem := in.catalog.Get(elementID)
	snap := &snapshot{target: target, element: elementID, elem: elem}

	snap.elementName = in.res.Resolve(elem.NameID)
	snap.title = target.Name
	if snap.title == "" {
		snap.title = snap.elementName
	}
	elemSub := Sub{Key: "Element", Value: snap.elementName}

	snap.tempTmpl = in.res.Resolve("details.temperature")
	snap.tempTip = in.scratch.Template(in.res.Resolve("details.temperature.tooltip"), elemSub)
	snap.massTmpl = in.res.Resolve("details.element_mass")
	snap.massTip = in.scratch.Template(in.res.Resolve("details.element_mass.tooltip"), elemSub)
	snap.thermalMassTmpl = in.res.Resolve("details.thermal_mass")
	snap.thermalMassTip = in.res.Resolve("details.thermal_mass.tooltip")
	snap.germTmpl = in.res.Resolve("details.disease")
	snap.germTip = in.res.Resolve("details.disease.tooltip")
	snap.circuitTmpl = in.res.Resolve("details.circuit")
	snap.circuitTip = in.res.Resolve("details.circuit.tooltip")
	snap.ageTmpl = in.res.Resolve("details.age")
	snap.ageTip = in.res.Resolve("details.age.tooltip")
	snap.uptimeTmpl = in.res.Resolve("details.uptime")
	snap.uptimeTip = in.res.Resolve("details.uptime.tooltip")

	snap.specificHeat = keyedLine{key: "specific_heat", line: line{
		text: in.scratch.Template(in.res.Resolve("details.specific_heat"),
			Sub{Key: "SpecificHeat", Value: in.scratch.Number(elem.SpecificHeat, 3)}),
		tooltip: in.scratch.Template(in.res.Resolve("details.specific_heat.tooltip"), elemSub),
	}}

	snap.conductivity = in.buildConductivityLine(elem, elemSub)
	snap.phase = in.buildPhaseLines(elem, elemSub)
	snap.overheat = in.buildOverheatLine(target, elem)
	if in.opts.Radiation {
		snap.radiation = &keyedLine{key: "radiation_absorption", line: line{
			text: in.scratch.Template(in.res.Resolve("details.radiation_absorption"),
				Sub{Key: "Percent", Value: in.scratch.Percent(elem.RadAbsorption)}),
			tooltip: in.scratch.Template(in.res.Resolve("details.radiation_absorption.tooltip"), elemSub),
		}}
	}

	in.refreshVolatile(snap)
	return snap
}

func (in *Inspector) buildConductivityLine(elem station.Element, elemSub Sub) keyedLine {
	text := in.scratch.Template(in.res.Resolve("details.thermal_conductivity"),
		Sub{Key: "Conductivity", Value: in.scratch.Number(elem.Conductivity, 3)})
	tooltipID := "details.thermal_conductivity.tooltip"
	if elem.Insulator {
		text = in.scratch.Template(in.res.Resolve("details.insulator_tag"), Sub{Key: "Line", Value: text})
		tooltipID = "details.insulator.tooltip"
	}
	return keyedLine{key: "thermal_conductivity", line: line{
		text:    text,
		tooltip: in.scratch.Template(in.res.Resolve(tooltipID), elemSub),
	}}
}

// buildPhaseLines emits the transition lines for exactly one state of
// matter: melting point for solids, freezing and vaporization points for
// liquids, the condensation point for gases.
func (in *Inspector) buildPhaseLines(elem station.Element, elemSub Sub) []keyedLine {
	productSub := func(id station.ElementID) Sub {
		return Sub{Key: "Product", Value: in.res.Resolve(in.catalog.Get(id).NameID)}
	}
	phaseLine := func(key, lineID string, tempK float64, product station.ElementID) keyedLine {
		return keyedLine{key: key, line: line{
			text: in.scratch.Template(in.res.Resolve(lineID),
				Sub{Key: "Temperature", Value: in.scratch.Temperature(tempK, in.opts.TempUnit)}),
			tooltip: in.scratch.Template(in.res.Resolve(lineID+".tooltip"), elemSub, productSub(product)),
		}}
	}

	var lines []keyedLine
	switch elem.State {
	case station.StateSolid:
		if elem.HighTemp > 0 {
			lines = append(lines, phaseLine("melting_point", "details.melting_point", elem.HighTemp, elem.HighProduct))
		}
	case station.StateLiquid:
		if elem.LowTemp > 0 {
			lines = append(lines, phaseLine("freezepoint", "details.freezepoint", elem.LowTemp, elem.LowProduct))
		}
		if elem.HighTemp > 0 {
			lines = append(lines, phaseLine("vapourizationpoint", "details.vapourizationpoint", elem.HighTemp, elem.HighProduct))
		}
	case station.StateGas:
		if elem.LowTemp > 0 {
			lines = append(lines, phaseLine("dewpoint", "details.dewpoint", elem.LowTemp, elem.LowProduct))
		}
	}
	return lines
}

// buildOverheatLine applies only to debris carrying a non-zero salvage-grade
// overheat modifier; anything else gets no line at all.
func (in *Inspector) buildOverheatLine(target *station.Entity, elem station.Element) *keyedLine {
	if target.Kind != station.KindDebris {
		return nil
	}
	delta, ok := target.OverheatModifier()
	if !ok || elem.HighTemp <= 0 {
		return nil
	}
	failureK := elem.HighTemp + delta
	failureText := in.scratch.Temperature(failureK, in.opts.TempUnit)
	deltaText := in.scratch.Number(delta, 1) + " K"
	return &keyedLine{key: "overheat", line: line{
		text: in.scratch.Template(in.res.Resolve("details.overheat"),
			Sub{Key: "Temperature", Value: failureText}),
		tooltip: in.scratch.Template(in.res.Resolve("details.overheat.tooltip"),
			Sub{Key: "Temperature", Value: failureText},
			Sub{Key: "Delta", Value: deltaText}),
	}}
}

// refreshVolatile reformats the time-derived lines from the current clock.
func (in *Inspector) refreshVolatile(snap *snapshot) {
	target := snap.target
	clock := *in.clock

	createdCycle := target.CreatedTick / station.TicksPerCycle
	ageCycles := float64(target.AgeTicks(clock)) / station.TicksPerCycle
	snap.age = line{
		text: in.scratch.Template(snap.ageTmpl,
			Sub{Key: "Cycle", Value: in.scratch.Number(float64(createdCycle), 0)},
			Sub{Key: "Age", Value: in.scratch.Number(ageCycles, 1)}),
		tooltip: snap.ageTip,
	}

	snap.uptime = nil
	if stats, ok := target.Uptime(clock); ok && stats.ThisCycle >= 0 {
		snap.uptime = &keyedLine{key: "uptime", line: line{
			text: in.scratch.Template(snap.uptimeTmpl,
				Sub{Key: "This", Value: in.scratch.Percent(stats.ThisCycle)},
				Sub{Key: "Last", Value: in.scratch.Percent(stats.LastCycle)},
				Sub{Key: "Five", Value: in.scratch.Percent(stats.LastFive)}),
			tooltip: snap.uptimeTip,
		}}
	}
}

// pushLines writes the frame's full label set: live lines formatted from
// current values, static and volatile lines straight from the snapshot.
func (in *Inspector) pushLines(panel Surface, target *station.Entity) {
	snap := in.snap
	elem := snap.elem

	panel.SetLabel("temperature",
		in.scratch.Template(snap.tempTmpl,
			Sub{Key: "Temperature", Value: in.scratch.Temperature(target.TempK, in.opts.TempUnit)}),
		snap.tempTip)

	panel.SetLabel("element_mass",
		in.scratch.Template(snap.massTmpl,
			Sub{Key: "Mass", Value: in.scratch.Mass(target.Mass)}),
		snap.massTip)

	panel.SetLabel("thermal_mass",
		in.scratch.Template(snap.thermalMassTmpl,
			Sub{Key: "ThermalMass", Value: in.scratch.Number(target.Mass*elem.SpecificHeat, 3)}),
		snap.thermalMassTip)

	panel.SetLabel(snap.specificHeat.key, snap.specificHeat.text, snap.specificHeat.tooltip)
	panel.SetLabel(snap.conductivity.key, snap.conductivity.text, snap.conductivity.tooltip)
	for _, phase := range snap.phase {
		panel.SetLabel(phase.key, phase.text, phase.tooltip)
	}
	if snap.overheat != nil {
		panel.SetLabel(snap.overheat.key, snap.overheat.text, snap.overheat.tooltip)
	}
	if snap.radiation != nil {
		panel.SetLabel(snap.radiation.key, snap.radiation.text, snap.radiation.tooltip)
	}

	if germs, ok := target.GermLoad(); ok && germs.Count > 0 {
		diseaseName := in.res.Resolve(germs.Disease.NameID())
		panel.SetLabel("disease",
			in.scratch.Template(snap.germTmpl,
				Sub{Key: "Count", Value: in.scratch.Number(float64(germs.Count), 0)},
				Sub{Key: "Disease", Value: diseaseName}),
			in.scratch.Template(snap.germTip, Sub{Key: "Disease", Value: diseaseName}))
	}

	if circuit, ok := target.CircuitID(); ok {
		panel.SetLabel("circuit",
			in.scratch.Template(snap.circuitTmpl,
				Sub{Key: "Circuit", Value: circuit.Circuit},
				Sub{Key: "Wattage", Value: in.scratch.Number(circuit.Wattage, 0)}),
			snap.circuitTip)
	}

	panel.SetLabel("age", snap.age.text, snap.age.tooltip)
	if snap.uptime != nil {
		panel.SetLabel(snap.uptime.key, snap.uptime.text, snap.uptime.tooltip)
	}
}
