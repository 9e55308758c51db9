// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package timescale converts instants between the astronomical and civil
// time scales needed for calendar computation: TDB (barycentric dynamical
// time, the scale ephemeris data are published in), TT (terrestrial time),
// TAI (international atomic time) and UT (universal time).
//
// Each scale is a distinct type over a Julian date value so that instants
// from different scales cannot be mixed without an explicit conversion.
// TDB and TT differ by no more than a couple of centiseconds over several
// millennia and are treated as numerically identical here, which is far
// below the day-level resolution calendar computation needs.
package timescale

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/syimyuzya/kalendarilo"
)

// ErrUnsupported is returned when a universal time conversion is requested
// for an instant preceding the UTC leap second table (1972-01-01). Such
// conversions are refused rather than approximated.
var ErrUnsupported = errors.New("timescale: universal time before 1972 is not supported")

// TDB is an instant in barycentric dynamical time, as a Julian date.
type TDB float64

// TT is an instant in terrestrial time, as a Julian date.
type TT float64

// TAI is an instant in international atomic time, as a Julian date.
type TAI float64

// UT is an instant in universal time, as a Julian date.
//
// Depending on the instant this is either UTC (from 1972-01-01 up to the
// expiry of the known leap second table) or UT1 (beyond the table, via an
// extrapolation model). The two are interchangeable for determining the
// civil date but not for sub-second timekeeping; see Convert.
type UT float64

// ttMinusTAI is the fixed TT-TAI offset of 32.184s, in days.
const ttMinusTAI = 32.184 / 86400.0

// TT returns the instant in terrestrial time.
func (t TDB) TT() TT {
	return TT(t)
}

// TAI returns the instant in international atomic time.
func (t TDB) TAI() TAI {
	return t.TT().TAI()
}

// TAI returns the instant in international atomic time.
func (t TT) TAI() TAI {
	return TAI(float64(t) - ttMinusTAI)
}

// TT returns the instant in terrestrial time.
func (t TAI) TT() TT {
	return TT(float64(t) + ttMinusTAI)
}

// Convert converts an atomic time instant to universal time.
//
// Within the span of the leap second table the result is UTC: the
// accumulated leap second offset is subtracted, with each insertion
// smeared linearly over its two-second window so that elapsed time
// remains continuous through the boundary. Beyond the table's expiry the
// result is UT1 from a long-range delta-T model, calibrated so the two
// branches agree exactly at the expiry instant.
//
// Instants before the start of UTC (1972-01-01) are refused with
// ErrUnsupported.
func Convert(t TAI) (UT, error) {
	tbl := leapTable()
	if t < tbl.starts {
		return 0, fmt.Errorf("JD %v: %w", float64(t), ErrUnsupported)
	}
	if t > tbl.expires {
		diff := estimate(t.TT()) + tbl.c2
		return UT(float64(t) - diff/86400.0), nil // NOTE: UT1, not UTC
	}
	i := sort.Search(len(tbl.entries), func(i int) bool { return tbl.entries[i].tai > t })
	if i == 0 {
		return UT(float64(t) - 10.0/86400.0), nil
	}
	e := tbl.entries[i-1]
	ramp := math.Min((float64(t)-float64(e.tai))*86400.0, 2.0) / 2.0
	return UT(float64(t) - (float64(e.deltaSecs)+ramp)/86400.0), nil
}

// DateInZone returns the civil date at the instant in the timezone east of
// UTC by the given number of minutes; for Beijing time (UTC+8) the offset
// is +480. The offset-adjusted Julian date is rounded, not truncated, to
// the nearest day number: a Julian date with fraction .0 is noon, so
// rounding yields the civil day containing the instant.
func (u UT) DateInZone(offsetMinutes int) kalendarilo.Date {
	jdn := math.Round(float64(u) + float64(offsetMinutes)/1440.0)
	if jdn < 0 || jdn > math.MaxUint32 {
		panic(fmt.Sprintf("timescale: date out of range: JD %v in zone %+d min", float64(u), offsetMinutes))
	}
	return kalendarilo.FromJDN(uint32(jdn))
}
