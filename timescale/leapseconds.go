// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timescale

import (
	"fmt"
	"math"
	"sync"

	"github.com/syimyuzya/kalendarilo"
)

// leapDates lists the UTC dates whose final second was followed by an
// inserted leap second, i.e. days ending 23:59:60. The cumulative
// TAI-UTC offset starts at 10s on 1972-01-01 and grows by one second per
// entry.
var leapDates = [][3]int{
	{1972, 6, 30},
	{1972, 12, 31},
	{1973, 12, 31},
	{1974, 12, 31},
	{1975, 12, 31},
	{1976, 12, 31},
	{1977, 12, 31},
	{1978, 12, 31},
	{1979, 12, 31},
	{1981, 6, 30},
	{1982, 6, 30},
	{1983, 6, 30},
	{1985, 6, 30},
	{1987, 12, 31},
	{1989, 12, 31},
	{1990, 12, 31},
	{1992, 6, 30},
	{1993, 6, 30},
	{1994, 6, 30},
	{1995, 12, 31},
	{1997, 6, 30},
	{1998, 12, 31},
	{2005, 12, 31},
	{2008, 12, 31},
	{2012, 6, 30},
	{2015, 6, 30},
	{2016, 12, 31},
}

// dateExpires is the date through which the absence of further leap
// seconds is known; conversions beyond it fall back to the delta-T
// extrapolation model.
var dateExpires = [3]int{2021, 12, 31}

type leapSecond struct {
	tai       TAI
	deltaSecs int // TAI-UTC in whole seconds before this insertion
}

type leapData struct {
	starts  TAI
	entries []leapSecond
	expires TAI
	// c2 calibrates the extrapolation model so that it reproduces the
	// tabulated cumulative offset exactly at the expiry instant.
	c2 float64
}

// leapTable returns the process-wide leap second table, computed once on
// first use and read-only thereafter. Failure to build it means the
// embedded dates are defective and panics.
var leapTable = sync.OnceValue(buildLeapTable)

func buildLeapTable() *leapData {
	jdnOf := func(ymd [3]int) uint32 {
		date, err := kalendarilo.FromGregorian(ymd[0], ymd[1], ymd[2])
		if err != nil {
			panic(fmt.Sprintf("timescale: leap second date %04d-%02d-%02d: %v", ymd[0], ymd[1], ymd[2], err))
		}
		return date.JDN()
	}
	tbl := &leapData{
		starts:  TAI(float64(jdnOf([3]int{1972, 1, 1})) + 10.0/86400.0),
		entries: make([]leapSecond, 0, len(leapDates)),
	}
	for i, ymd := range leapDates {
		// 43199s after the JDN instant (noon) is 23:59:59 UTC of the
		// day, plus the accumulated offset to place it on the TAI scale.
		delta := 10 + i
		tbl.entries = append(tbl.entries, leapSecond{
			tai:       TAI(float64(jdnOf(ymd)) + float64(43199+delta)/86400.0),
			deltaSecs: delta,
		})
	}
	tbl.expires = TAI(float64(jdnOf(dateExpires)) + float64(43199+10+len(leapDates))/86400.0)
	tbl.c2 = float64(10+len(leapDates)) - estimate(tbl.expires.TT())
	return tbl
}

// estimate is a long-range delta-T (TT-UT1) model: a parabola in
// centuries since 1825 with a 14-century periodic component, following
// the HM Nautical Almanac Office's published fit. The result is in
// seconds and is meaningful only relative to the c2 calibration constant.
func estimate(t TT) float64 {
	y := (float64(t)-2451544.5)/365.2425 + 2000.0
	tau := (y - 1825.0) / 100.0
	return 31.4115*tau*tau + 284.8435805251424*math.Cos(2*math.Pi*(tau+0.75)/14.0)
}
