package hud

import (
	"math"
	"strconv"
	"strings"
)

// NonFinite is rendered whenever a numeric input is NaN or infinite. Upstream
// providers occasionally hand back garbage after a bad load; the panel shows
// a dash instead of crashing.
const NonFinite = "--"

const (
	// compactThreshold is the magnitude below which extra digits are kept so
	// small quantities do not collapse to "0".
	compactThreshold = 0.01
	compactDecimals  = 6
)

type TempUnit string

const (
	UnitKelvin     TempUnit = "K"
	UnitCelsius    TempUnit = "C"
	UnitFahrenheit TempUnit = "F"
)

// Scratch is the shared text-building buffer behind every formatted value in
// the details pipeline. One instance is reused for all formatting in a frame;
// only materialized strings leave it, never the buffer itself. Calls must not
// overlap, which the single-threaded frame loop guarantees. The zero value is
// ready to use.
type Scratch struct {
	buf []byte
}

func NewScratch() *Scratch {
	return &Scratch{buf: make([]byte, 0, 256)}
}

func (s *Scratch) Reset() {
	s.buf = s.buf[:0]
}

// Number renders v with at most prec fractional digits, trimming trailing
// zeros. Magnitudes below compactThreshold keep up to six digits instead so
// values like 0.0004 stay visible.
func (s *Scratch) Number(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NonFinite
	}
	if prec < 0 {
		prec = 3
	}
	if abs := math.Abs(v); abs > 0 && abs < compactThreshold {
		prec = compactDecimals
	}
	s.buf = s.buf[:0]
	s.buf = strconv.AppendFloat(s.buf, v, 'f', prec, 64)
	if prec > 0 {
		s.buf = trimFraction(s.buf)
	}
	return string(s.buf)
}

// Percent renders a 0..1 fraction as a percentage with one decimal.
func (s *Scratch) Percent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return NonFinite
	}
	s.buf = s.buf[:0]
	s.buf = strconv.AppendFloat(s.buf, fraction*100, 'f', 1, 64)
	s.buf = trimFraction(s.buf)
	s.buf = append(s.buf, '%')
	return string(s.buf)
}

// Temperature converts a kelvin reading into the requested display unit with
// one decimal. An empty unit falls back to kelvin.
func (s *Scratch) Temperature(kelvin float64, unit TempUnit) string {
	if math.IsNaN(kelvin) || math.IsInf(kelvin, 0) {
		return NonFinite
	}
	value := kelvin
	suffix := " K"
	switch unit {
	case UnitCelsius:
		value = kelvin - 273.15
		suffix = " °C"
	case UnitFahrenheit:
		value = (kelvin-273.15)*1.8 + 32
		suffix = " °F"
	}
	s.buf = s.buf[:0]
	s.buf = strconv.AppendFloat(s.buf, value, 'f', 1, 64)
	s.buf = trimFraction(s.buf)
	s.buf = append(s.buf, suffix...)
	return string(s.buf)
}

// Mass renders kilograms with an auto-picked unit: tonnes above 1000 kg,
// grams below 1 kg.
func (s *Scratch) Mass(kg float64) string {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return NonFinite
	}
	value := kg
	suffix := " kg"
	switch abs := math.Abs(kg); {
	case abs >= 1000:
		value, suffix = kg/1000, " t"
	case abs > 0 && abs < 1:
		value, suffix = kg*1000, " g"
	}
	s.buf = s.buf[:0]
	s.buf = strconv.AppendFloat(s.buf, value, 'f', 1, 64)
	s.buf = trimFraction(s.buf)
	s.buf = append(s.buf, suffix...)
	return string(s.buf)
}

// Sub is one named substitution for Template.
type Sub struct {
	Key   string
	Value string
}

// Template replaces {Key} markers in tmpl with their substitution values.
// Markers without a matching substitution are copied through untouched, and
// substitution values are never re-scanned for markers. The template string
// itself is never modified.
func (s *Scratch) Template(tmpl string, subs ...Sub) string {
	s.buf = s.buf[:0]
	for i := 0; i < len(tmpl); {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			s.buf = append(s.buf, tmpl[i:]...)
			break
		}
		open += i
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			s.buf = append(s.buf, tmpl[i:]...)
			break
		}
		end += open

		s.buf = append(s.buf, tmpl[i:open]...)
		name := tmpl[open+1 : end]
		replaced := false
		for _, sub := range subs {
			if sub.Key == name {
				s.buf = append(s.buf, sub.Value...)
				replaced = true
				break
			}
		}
		if !replaced {
			s.buf = append(s.buf, tmpl[open:end+1]...)
		}
		i = end + 1
	}
	return string(s.buf)
}

// trimFraction drops trailing zeros after the decimal point, the dangling
// point itself, and a bare negative zero.
func trimFraction(buf []byte) []byte {
	if !hasPoint(buf) {
		return buf
	}
	for len(buf) > 0 && buf[len(buf)-1] == '0' {
		buf = buf[:len(buf)-1]
	}
	if len(buf) > 0 && buf[len(buf)-1] == '.' {
		buf = buf[:len(buf)-1]
	}
	if len(buf) == 2 && buf[0] == '-' && buf[1] == '0' {
		buf = buf[1:]
	}
	return buf
}

func hasPoint(buf []byte) bool {
	for _, b := range buf {
		if b == '.' {
			return true
		}
	}
	return false
}
