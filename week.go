// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package kalendarilo

// ISOWeek returns the ISO-8601 week number of the date together with the
// week-based year it belongs to. Week 1 is the week containing the year's
// first Thursday, so dates late in December may belong to week 1 of the
// following year and dates early in January to week 52 or 53 of the
// preceding one.
func (d Date) ISOWeek() (year, week int) {
	y, m, dd := d.Gregorian()
	leap := 0
	if IsLeap(y) {
		leap = 1
	}
	dn := ordinalDayNumber(y, m, dd)
	dow := d.DayOfWeek()
	// dow1 is the day of week of January 1.
	dow1 := modFloor(dow-dn, 7) + 1
	if dow1 > 4 && dow1-1+dn <= 7 {
		// The first days of January complete the last week of the
		// previous year.
		switch {
		case dow1 < 6:
			return y - 1, 53
		case dow1 == 6:
			if IsLeap(y - 1) {
				return y - 1, 53
			}
			return y - 1, 52
		default:
			return y - 1, 52
		}
	}
	dowLast := modFloor(dow1+364+leap-1, 7) + 1
	if dowLast < 4 && 365+leap+1-dn <= dowLast {
		// The last days of December open week 1 of the next year.
		return y + 1, 1
	}
	week = (dow1 + dn - 2) / 7
	if dow1 <= 4 {
		week++
	}
	return y, week
}

// modFloor returns a mod n with the result in [0, n), unlike the %
// operator which follows the sign of a.
func modFloor(a, n int) int {
	return (a%n + n) % n
}
