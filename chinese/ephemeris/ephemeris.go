// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ephemeris provides precomputed astronomical instants, one
// record per sui (the interval between two consecutive winter solstices),
// for building the Chinese lunisolar calendar. The table is embedded in
// the package and covers the years 1970 through 2050.
package ephemeris

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/syimyuzya/kalendarilo/timescale"
)

// Annus holds one sui's worth of ephemeris data. All instants are in TDB.
type Annus struct {
	// Annus numbers the sui by the civil year most of it falls in.
	Annus int
	// SolarTerm holds the instants of the 25 solar terms from the
	// starting winter solstice through the next one inclusive, each 15
	// degrees of apparent solar longitude apart.
	SolarTerm [25]timescale.TDB
	// MoonPhase holds the phase instants of 15 consecutive lunar months
	// starting from the new moon preceding the starting solstice; the
	// inner entries are new moon, first quarter, full moon and last
	// quarter.
	MoonPhase [15][4]timescale.TDB
}

//go:embed data/tdbtimes.txt
var rawData string

// table parses the embedded data once on first use. A parse failure is a
// defect in the shipped data and panics.
var table = sync.OnceValue(func() []Annus {
	recs, err := parse(rawData)
	if err != nil {
		panic(fmt.Sprintf("ephemeris: embedded table is malformed: %v", err))
	}
	return recs
})

// Get returns the record for the sui numbered by the civil year annus, or
// false if the table does not cover it.
func Get(annus int) (*Annus, bool) {
	recs := table()
	i, ok := slices.BinarySearchFunc(recs, annus, func(a Annus, year int) int {
		return a.Annus - year
	})
	if !ok {
		return nil, false
	}
	return &recs[i], true
}
