// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package ephemeris

import (
	"fmt"
	"strconv"
	"strings"

	"cloudeng.io/errors"

	"github.com/syimyuzya/kalendarilo/timescale"
)

// The embedded table retains this year range; rows outside it are
// skipped without error so the data file may carry a wider span.
const (
	minAnnus = 1970
	maxAnnus = 2050
)

// parse reads the whitespace-delimited table: a header line followed by
// rows of annus, a base Julian date, 25 solar term offsets and 15x4 moon
// phase offsets, all offsets relative to the base. Errors are reported
// with 1-based line and field numbers and aggregated so a defective file
// is diagnosed in full.
func parse(raw string) ([]Annus, error) {
	errs := &errors.M{}
	var recs []Annus
	for lineIdx, line := range strings.Split(raw, "\n") {
		lineNum := lineIdx + 1
		if lineNum == 1 { // header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		annus, err := strconv.Atoi(fields[0])
		if err != nil {
			errs.Append(fmt.Errorf("line %d, field 1: invalid year %q: %w", lineNum, fields[0], err))
			continue
		}
		if annus < minAnnus || annus > maxAnnus {
			continue
		}
		jd0, err := field(fields, lineNum, 2)
		if err != nil {
			errs.Append(err)
			continue
		}
		rec := Annus{Annus: annus}
		rowErrs := 0
		for i := 0; i < 25; i++ {
			diff, err := field(fields, lineNum, 3+i)
			if err != nil {
				errs.Append(err)
				rowErrs++
				continue
			}
			rec.SolarTerm[i] = timescale.TDB(jd0 + diff)
		}
		for i := 0; i < 15; i++ {
			for j := 0; j < 4; j++ {
				diff, err := field(fields, lineNum, 28+i*4+j)
				if err != nil {
					errs.Append(err)
					rowErrs++
					continue
				}
				rec.MoonPhase[i][j] = timescale.TDB(jd0 + diff)
			}
		}
		if rowErrs > 0 {
			continue
		}
		if n := len(recs); n > 0 && recs[n-1].Annus >= annus {
			errs.Append(fmt.Errorf("line %d: year %d out of order after %d", lineNum, annus, recs[n-1].Annus))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errs.Err()
}

// field parses the 1-based fieldNum'th whitespace-delimited value as a
// float.
func field(fields []string, lineNum, fieldNum int) (float64, error) {
	if fieldNum > len(fields) {
		return 0, fmt.Errorf("line %d, field %d: missing field", lineNum, fieldNum)
	}
	v, err := strconv.ParseFloat(fields[fieldNum-1], 64)
	if err != nil {
		return 0, fmt.Errorf("line %d, field %d: invalid value %q: %w", lineNum, fieldNum, fields[fieldNum-1], err)
	}
	return v, nil
}
