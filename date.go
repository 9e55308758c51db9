// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package kalendarilo provides conversion between a calendar-independent
// day count (the Julian day number) and civil dates in the proleptic
// Gregorian calendar, including ISO-8601 week numbering and the Chinese
// sexagenary day cycle. The chinese subpackage builds the traditional
// Chinese lunisolar calendar on top of this kernel.
package kalendarilo

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a requested Gregorian date falls outside
// the representable Julian day number range.
var ErrOutOfRange = errors.New("date out of supported range")

// Date is a calendar-independent date, stored as a Julian day number (JDN).
//
// The supported range begins at January 1, 4713 BC in the proleptic Julian
// calendar (JDN 0). Date is an immutable value type; values compare equal
// exactly when they denote the same day.
type Date struct {
	jdn uint32
}

// FromJDN returns the Date with the given Julian day number.
func FromJDN(jdn uint32) Date {
	return Date{jdn: jdn}
}

// JDN returns the Julian day number of the date.
func (d Date) JDN() uint32 {
	return d.jdn
}

// FromGregorian returns the Date for a proleptic Gregorian calendar date.
//
// year is an astronomical year number: 1 BC is 0, 2 BC is -1, and so on.
// Month and day values outside their usual ranges are extended naturally
// by the conversion formula rather than rejected.
//
// ErrOutOfRange is returned when the resulting day number is not
// representable.
func FromGregorian(year, month, day int) (Date, error) {
	y, m, d := year, month, day
	jdn := (1461*(y+4800+(m-14)/12))/4 +
		(367*(m-2-12*((m-14)/12)))/12 -
		(3*((y+4900+(m-14)/12)/100))/4 +
		d - 32075
	if jdn < 0 || jdn > math.MaxUint32 {
		return Date{}, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrOutOfRange)
	}
	return Date{jdn: uint32(jdn)}, nil
}

// Gregorian returns the date in the proleptic Gregorian calendar, using
// astronomical year numbering. It is the exact inverse of FromGregorian
// for every representable Date.
func (d Date) Gregorian() (year, month, day int) {
	jdn := int64(d.jdn)
	f := jdn + 1401 + (((4*jdn+274277)/146097)*3)/4 - 38
	e := 4*f + 3
	g := (e % 1461) / 4
	h := 5*g + 2
	day = int((h%153)/5 + 1)
	month = int((h/153+2)%12 + 1)
	year = int(e/1461 - 4716 + (12+2-int64(month))/12)
	return year, month, day
}

// ISOGregorian formats the Gregorian date as YYYY-MM-DD. Years outside
// [0, 9999] carry an explicit sign and as many digits as needed, e.g.
// "+10000-01-01" and "-0001-12-31".
func (d Date) ISOGregorian() string {
	y, m, dd := d.Gregorian()
	switch {
	case y < 0:
		return fmt.Sprintf("-%04d-%02d-%02d", -y, m, dd)
	case y > 9999:
		return fmt.Sprintf("+%d-%02d-%02d", y, m, dd)
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, dd)
}

// String implements fmt.Stringer as per ISOGregorian.
func (d Date) String() string {
	return d.ISOGregorian()
}

// DayOfWeek returns the ISO-8601 day of week, 1 through 7 for Monday
// through Sunday.
func (d Date) DayOfWeek() int {
	return int(d.jdn%7) + 1
}

// Sexagenary returns the Chinese sexagenary day number, 1 (甲子) through
// 60 (癸亥).
func (d Date) Sexagenary() int {
	return int((uint64(d.jdn)+49)%60) + 1
}

// Add returns the date days after d (or before, for negative days). It
// panics if the result falls outside the representable range; day
// arithmetic never wraps silently.
func (d Date) Add(days int) Date {
	n := int64(d.jdn) + int64(days)
	if n < 0 || n > math.MaxUint32 {
		panic(fmt.Sprintf("kalendarilo: day arithmetic overflow: jdn %d %+d", d.jdn, days))
	}
	return Date{jdn: uint32(n)}
}

// Sub returns the number of days from o to d.
func (d Date) Sub(o Date) int {
	return int(int64(d.jdn) - int64(o.jdn))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.jdn < o.jdn
}

// After reports whether d is later than o.
func (d Date) After(o Date) bool {
	return d.jdn > o.jdn
}

// Compare returns -1, 0 or +1 as d is earlier than, equal to or later
// than o.
func (d Date) Compare(o Date) int {
	switch {
	case d.jdn < o.jdn:
		return -1
	case d.jdn > o.jdn:
		return 1
	}
	return 0
}
