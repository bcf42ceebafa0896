// Package moon computes the illuminated fraction of the lunar disk and maps
// it onto the display phases used across the site.
package moon

import (
	"math"
	"time"
)

type Bucket int

const (
	New Bucket = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	Full
	WaningGibbous
	LastQuarter
	WaningCrescent
)

func (b Bucket) String() string {
	switch b {
	case New:
		return "New Moon"
	case WaxingCrescent:
		return "Waxing Crescent"
	case FirstQuarter:
		return "First Quarter"
	case WaxingGibbous:
		return "Waxing Gibbous"
	case Full:
		return "Full Moon"
	case WaningGibbous:
		return "Waning Gibbous"
	case LastQuarter:
		return "Last Quarter"
	case WaningCrescent:
		return "Waning Crescent"
	}
	return "Unknown"
}

// Key is the stable identifier used to look the bucket up in a locale table.
func (b Bucket) Key() string {
	switch b {
	case New:
		return "new_moon"
	case WaxingCrescent:
		return "waxing_crescent"
	case FirstQuarter:
		return "first_quarter"
	case WaxingGibbous:
		return "waxing_gibbous"
	case Full:
		return "full_moon"
	case WaningGibbous:
		return "waning_gibbous"
	case LastQuarter:
		return "last_quarter"
	case WaningCrescent:
		return "waning_crescent"
	}
	return "unknown"
}

func (b Bucket) Symbol() string {
	switch b {
	case New:
		return "\U0001F311" // 🌑
	case WaxingCrescent:
		return "\U0001F312" // 🌒
	case FirstQuarter:
		return "\U0001F313" // 🌓
	case WaxingGibbous:
		return "\U0001F314" // 🌔
	case Full:
		return "\U0001F315" // 🌕
	case WaningGibbous:
		return "\U0001F316" // 🌖
	case LastQuarter:
		return "\U0001F317" // 🌗
	case WaningCrescent:
		return "\U0001F318" // 🌘
	}
	return "\U0001F311"
}

type Phase struct {
	Bucket       Bucket
	Symbol       string
	Illumination float64 // percent, rounded to one decimal
}

// At returns the phase descriptor for the given instant. Pure; any timestamp
// produces a result.
func At(t time.Time) Phase {
	illum := Illumination(t)
	next := Illumination(t.Add(24 * time.Hour))

	return Phase{
		Bucket:       bucketFor(illum, next),
		Symbol:       bucketFor(illum, next).Symbol(),
		Illumination: math.Round(illum*10) / 10,
	}
}

// Illumination returns the percentage (0..100) of the Moon's disk lit by the
// Sun at the given instant, using the truncated phase-angle series from
// Meeus, Astronomical Algorithms ch. 48.
func Illumination(t time.Time) float64 {
	// Julian centuries since J2000.0.
	jd := float64(t.UnixMilli())/86400000.0 + 2440587.5
	T := (jd - 2451545.0) / 36525.0

	// Mean elongation of the Moon, mean anomaly of the Sun, mean anomaly of
	// the Moon (degrees).
	D := 297.8501921 + 445267.1114034*T - 0.0018819*T*T + T*T*T/545868.0 - T*T*T*T/113065000.0
	M := 357.5291092 + 35999.0502909*T - 0.0001536*T*T + T*T*T/24490000.0
	Mp := 134.9633964 + 477198.8675055*T + 0.0087414*T*T + T*T*T/69699.0 - T*T*T*T/14712000.0

	// Phase angle (degrees).
	i := 180.0 - D -
		6.289*sinDeg(Mp) +
		2.100*sinDeg(M) -
		1.274*sinDeg(2*D-Mp) -
		0.658*sinDeg(2*D) -
		0.214*sinDeg(2*Mp) -
		0.110*sinDeg(D)

	k := (1 + cosDeg(i)) / 2

	if k < 0 {
		k = 0
	}
	if k > 1 {
		k = 1
	}

	return k * 100
}

// bucketFor maps today's and tomorrow's illumination to a display bucket.
// A waxing name is picked first from illumination alone, then corrected to
// the waning counterpart if the Moon is shrinking. At >=99% the name stays
// Full Moon even on a waning day; the thresholds mirror the site's original
// tables and the asymmetry is kept on purpose.
func bucketFor(illum, nextIllum float64) Bucket {
	var b Bucket

	switch {
	case illum < 1:
		b = New
	case illum < 25:
		b = WaxingCrescent
	case illum < 45:
		b = FirstQuarter
	case illum < 55:
		b = WaxingGibbous
	default:
		b = Full
	}

	if nextIllum >= illum {
		return b
	}

	// waning day
	switch {
	case illum > 55 && illum < 99:
		return WaningGibbous
	case illum > 45 && illum <= 55:
		return LastQuarter
	case illum > 25 && illum <= 45:
		return LastQuarter
	case illum >= 1 && illum <= 25:
		return WaningCrescent
	}

	return b
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180)
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
