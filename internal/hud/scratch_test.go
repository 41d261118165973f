package hud

import (
	"math"
	"testing"
)

func TestNumberTrimsTrailingZeros(t *testing.T) {
	s := NewScratch()

	cases := []struct {
		value float64
		prec  int
		want  string
	}{
		{1.5, 3, "1.5"},
		{2.0004, 3, "2"},
		{0.609, 3, "0.609"},
		{10, 3, "10"},
		{-3.25, 3, "-3.25"},
		{41.79, 3, "41.79"},
		{1356.15, 1, "1356.2"},
	}
	for _, tc := range cases {
		if got := s.Number(tc.value, tc.prec); got != tc.want {
			t.Fatalf("Number(%v, %d) = %q, want %q", tc.value, tc.prec, got, tc.want)
		}
	}
}

func TestNumberKeepsTinyMagnitudesVisible(t *testing.T) {
	s := NewScratch()

	if got := s.Number(0.0004, 3); got != "0.0004" {
		t.Fatalf("tiny value collapsed: %q", got)
	}
	if got := s.Number(-0.0025, 3); got != "-0.0025" {
		t.Fatalf("tiny negative collapsed: %q", got)
	}
	if got := s.Number(0.01, 3); got != "0.01" {
		t.Fatalf("threshold value formatted wrong: %q", got)
	}
	if got := s.Number(0, 3); got != "0" {
		t.Fatalf("zero formatted wrong: %q", got)
	}
}

func TestNumberNonFiniteSentinel(t *testing.T) {
	s := NewScratch()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := s.Number(v, 3); got != NonFinite {
			t.Fatalf("Number(%v) = %q, want %q", v, got, NonFinite)
		}
	}
	if got := s.Temperature(math.NaN(), UnitCelsius); got != NonFinite {
		t.Fatalf("Temperature(NaN) = %q, want %q", got, NonFinite)
	}
	if got := s.Mass(math.Inf(1)); got != NonFinite {
		t.Fatalf("Mass(+Inf) = %q, want %q", got, NonFinite)
	}
	if got := s.Percent(math.Inf(-1)); got != NonFinite {
		t.Fatalf("Percent(-Inf) = %q, want %q", got, NonFinite)
	}
}

func TestTemperatureUnits(t *testing.T) {
	s := NewScratch()

	if got := s.Temperature(295.65, UnitCelsius); got != "22.5 °C" {
		t.Fatalf("celsius = %q", got)
	}
	if got := s.Temperature(295.65, UnitFahrenheit); got != "72.5 °F" {
		t.Fatalf("fahrenheit = %q", got)
	}
	if got := s.Temperature(295.65, UnitKelvin); got != "295.6 K" {
		t.Fatalf("kelvin = %q", got)
	}
	if got := s.Temperature(300, ""); got != "300 K" {
		t.Fatalf("empty unit should fall back to kelvin, got %q", got)
	}
}

func TestTemperatureNeverShowsNegativeZero(t *testing.T) {
	s := NewScratch()

	if got := s.Temperature(273.15, UnitCelsius); got != "0 °C" {
		t.Fatalf("freezing point rendered as %q", got)
	}
	if got := s.Temperature(273.149, UnitCelsius); got != "0 °C" {
		t.Fatalf("value just under zero rendered as %q", got)
	}
}

func TestMassAutoScalesUnits(t *testing.T) {
	s := NewScratch()

	cases := []struct {
		kg   float64
		want string
	}{
		{10, "10 kg"},
		{0.5, "500 g"},
		{1500, "1.5 t"},
		{0, "0 kg"},
		{400, "400 kg"},
		{0.0121, "12.1 g"},
	}
	for _, tc := range cases {
		if got := s.Mass(tc.kg); got != tc.want {
			t.Fatalf("Mass(%v) = %q, want %q", tc.kg, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	s := NewScratch()

	if got := s.Percent(0.5); got != "50%" {
		t.Fatalf("Percent(0.5) = %q", got)
	}
	if got := s.Percent(0.333); got != "33.3%" {
		t.Fatalf("Percent(0.333) = %q", got)
	}
	if got := s.Percent(1); got != "100%" {
		t.Fatalf("Percent(1) = %q", got)
	}
}

func TestTemplateSubstitution(t *testing.T) {
	s := NewScratch()

	tmpl := "Temperature: {Temperature} of {Element}"
	got := s.Template(tmpl,
		Sub{Key: "Temperature", Value: "22.5 °C"},
		Sub{Key: "Element", Value: "Water"})
	if got != "Temperature: 22.5 °C of Water" {
		t.Fatalf("template result = %q", got)
	}
	if tmpl != "Temperature: {Temperature} of {Element}" {
		t.Fatalf("template source was modified: %q", tmpl)
	}
}

func TestTemplateLeavesMissingPlaceholdersUntouched(t *testing.T) {
	s := NewScratch()

	got := s.Template("Mass: {Mass} at {Temperature}", Sub{Key: "Mass", Value: "10 kg"})
	if got != "Mass: 10 kg at {Temperature}" {
		t.Fatalf("missing placeholder was not preserved: %q", got)
	}
}

func TestTemplateHandlesStrayBraces(t *testing.T) {
	s := NewScratch()

	if got := s.Template("tail {unclosed"); got != "tail {unclosed" {
		t.Fatalf("unterminated marker mangled: %q", got)
	}
	if got := s.Template("{} empty"); got != "{} empty" {
		t.Fatalf("empty marker mangled: %q", got)
	}
}

func TestTemplateDoesNotRescanSubstitutedValues(t *testing.T) {
	s := NewScratch()

	got := s.Template("{A} and {B}",
		Sub{Key: "A", Value: "{B}"},
		Sub{Key: "B", Value: "beta"})
	if got != "{B} and beta" {
		t.Fatalf("substituted value was re-scanned: %q", got)
	}
}

func TestScratchReuseKeepsEarlierResults(t *testing.T) {
	s := NewScratch()

	first := s.Number(1.25, 3)
	second := s.Number(9.75, 3)

	if first != "1.25" || second != "9.75" {
		t.Fatalf("buffer reuse corrupted results: %q, %q", first, second)
	}
}
