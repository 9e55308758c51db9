// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timescale_test

import (
	"errors"
	"math"
	"testing"

	"github.com/syimyuzya/kalendarilo/timescale"
)

const (
	secsPerDay = 86400.0
	// TAI of 1972-06-30 23:59:59 UTC, the start of the first leap second
	// insertion window.
	firstLeapTAI = 2441499.0 + 43209.0/secsPerDay
	// TAI through which the leap second table is known (end of 2021).
	expiresTAI = 2459580.0 + 43236.0/secsPerDay
)

func TestScaleOffsets(t *testing.T) {
	tdb := timescale.TDB(2451545.0)
	if got, want := float64(tdb.TT()), 2451545.0; got != want {
		t.Errorf("TT: got %v, want %v", got, want)
	}
	if got, want := float64(tdb.TAI()), 2451545.0-32.184/secsPerDay; got != want {
		t.Errorf("TAI: got %v, want %v", got, want)
	}
	if got, want := float64(tdb.TAI().TT()), float64(tdb.TT()); math.Abs(got-want) > 1e-12 {
		t.Errorf("TAI round trip: got %v, want %v", got, want)
	}
}

func TestConvertUnsupported(t *testing.T) {
	for _, tai := range []timescale.TAI{
		2441318.0,                      // 1972-01-01, just before the UTC epoch instant
		timescale.TDB(2440587.5).TAI(), // 1970
		0,
	} {
		if _, err := timescale.Convert(tai); !errors.Is(err, timescale.ErrUnsupported) {
			t.Errorf("TAI %v: got %v, want ErrUnsupported", float64(tai), err)
		}
	}
}

func TestConvertOffsets(t *testing.T) {
	for _, tc := range []struct {
		tai        float64
		offsetSecs float64
	}{
		// Initial 10s offset before the first insertion.
		{2441318.5, 10},
		{2441400.25, 10},
		// The two-second insertion window of the first leap second.
		{firstLeapTAI, 10},
		{firstLeapTAI + 0.5/secsPerDay, 10.25},
		{firstLeapTAI + 1.0/secsPerDay, 10.5},
		{firstLeapTAI + 2.0/secsPerDay, 11},
		{firstLeapTAI + 100.0/secsPerDay, 11},
		// 22 insertions accumulated by 1999.
		{2451543.0, 32},
		// All 27 by the end of the table.
		{expiresTAI, 37},
	} {
		ut, err := timescale.Convert(timescale.TAI(tc.tai))
		if err != nil {
			t.Errorf("TAI %v: %v", tc.tai, err)
			continue
		}
		got := (tc.tai - float64(ut)) * secsPerDay
		if math.Abs(got-tc.offsetSecs) > 1e-4 {
			t.Errorf("TAI %v: offset %v, want %v", tc.tai, got, tc.offsetSecs)
		}
	}
}

func TestConvertContinuityAtExpiry(t *testing.T) {
	// The extrapolation branch is calibrated to agree with the tabulated
	// offset at the expiry instant, so universal time must not jump there.
	before, err := timescale.Convert(timescale.TAI(expiresTAI))
	if err != nil {
		t.Fatal(err)
	}
	const step = 1e-6
	after, err := timescale.Convert(timescale.TAI(expiresTAI + step))
	if err != nil {
		t.Fatal(err)
	}
	if got := float64(after) - float64(before); math.Abs(got-step) > 1e-9 {
		t.Errorf("universal time advanced %v days over %v days of atomic time", got, step)
	}
}

func TestConvertExtrapolated(t *testing.T) {
	// A 2030 instant well past the table; the delta-T model is only good
	// to tens of seconds out there.
	tdb := timescale.TDB(2462501.166666667 + 5.647029454550371)
	ut, err := timescale.Convert(tdb.TAI())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := float64(ut), 2462506.81319; math.Abs(got-want) > 30.0/secsPerDay {
		t.Errorf("got %v, want %v within 30s", got, want)
	}
}

func TestDateInZone(t *testing.T) {
	// 1999-12-30 16:00 TDB.
	ut, err := timescale.Convert(timescale.TDB(2451543.166666667).TAI())
	if err != nil {
		t.Fatal(err)
	}
	for _, offset := range []int{0, 480} {
		if got := ut.DateInZone(offset).ISOGregorian(); got != "1999-12-30" {
			t.Errorf("zone %+d: got %v, want 1999-12-30", offset, got)
		}
	}
}

func TestDateInZoneMidnight(t *testing.T) {
	// Instants straddling midnight of 2000-01-01 Beijing time (UTC+8):
	// UT JD 2451544.5 is UTC midnight, Beijing midnight is 8h earlier,
	// and TDB leads UT by the 32s leap offset plus TT-TAI.
	midnight := 2451544.5 - 480.0/1440.0 + (32.0+32.184)/secsPerDay
	for _, tc := range []struct {
		tdb  float64
		want string
	}{
		{midnight + 1e-7, "2000-01-01"},
		{midnight - 1e-7, "1999-12-31"},
	} {
		ut, err := timescale.Convert(timescale.TDB(tc.tdb).TAI())
		if err != nil {
			t.Fatal(err)
		}
		if got := ut.DateInZone(480).ISOGregorian(); got != tc.want {
			t.Errorf("TDB %v: got %v, want %v", tc.tdb, got, tc.want)
		}
		if got := ut.DateInZone(0).ISOGregorian(); got != "1999-12-31" {
			t.Errorf("TDB %v: got %v in UTC, want 1999-12-31", tc.tdb, got)
		}
	}
}

func TestDateInZoneRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for a negative Julian date")
		}
	}()
	timescale.UT(-5).DateInZone(0)
}
