// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package chinese implements the modern Chinese lunisolar calendar,
// reconstructed from precomputed ephemeris data (see the ephemeris
// subpackage) rather than an analytic rule.
//
// The structural unit of the computation is the sui (歲), the interval
// between two consecutive winter solstices, represented by Annus. A sui
// always contains either twelve lunar months or thirteen, in which case
// exactly one of them is a leap month: the first month containing no
// principal term (the even-positioned solar terms, roughly 30.44 days
// apart). Months 11 and 12 of a sui belong to the preceding civil year.
//
// All dates are civil dates in Beijing time (UTC+8), following the
// modern standard for the calendar.
package chinese

import (
	"errors"
	"fmt"
	"sort"

	"github.com/syimyuzya/kalendarilo"
	"github.com/syimyuzya/kalendarilo/chinese/ephemeris"
	"github.com/syimyuzya/kalendarilo/timescale"
)

var (
	// ErrNoData indicates that the ephemeris table does not cover a year
	// needed to answer the query.
	ErrNoData = errors.New("chinese: no ephemeris data for this period")
	// ErrBefore indicates that the queried date precedes the sui's span.
	ErrBefore = errors.New("chinese: date is before this sui")
	// ErrAfter indicates that the queried date follows the sui's span.
	ErrAfter = errors.New("chinese: date is after this sui")
)

// beijingOffsetMinutes is the fixed timezone of the modern calendar
// standard.
const beijingOffsetMinutes = 480

// Month names a lunar month: a common month 1 through 12, or the leap
// month inserted after the common month of the same number.
type Month struct {
	num  int
	leap bool
}

// Common returns the common (non-leap) month numbered n, 1 through 12.
func Common(n int) Month {
	return Month{num: n}
}

// Leap returns the leap month numbered n, i.e. the intercalary month
// following common month n.
func Leap(n int) Month {
	return Month{num: n, leap: true}
}

// Num returns the month number regardless of leapness.
func (m Month) Num() int {
	return m.num
}

// IsLeap reports whether m is a leap month.
func (m Month) IsLeap() bool {
	return m.leap
}

// NewMoon records the first day of one lunar month.
type NewMoon struct {
	Month Month
	Date  kalendarilo.Date
}

// Annus is one sui: the months between two consecutive winter solstices.
//
// Months holds every month head from the eleventh month of the civil
// year Annus-1 through the eleventh month of year Annus; the final entry
// belongs to the next sui and marks the day after this sui's last day.
type Annus struct {
	// Annus numbers the sui by the civil year most of it falls in.
	Annus int
	// Ephemeris is the sui's source record.
	Ephemeris *ephemeris.Annus
	// Months are the month heads in order, ending with the next sui's
	// first month as an exclusive bound.
	Months []NewMoon
}

// dateCST returns the Beijing-time civil date of a TDB instant.
func dateCST(t timescale.TDB) (kalendarilo.Date, error) {
	ut, err := timescale.Convert(t.TAI())
	if err != nil {
		return kalendarilo.Date{}, err
	}
	return ut.DateInZone(beijingOffsetMinutes), nil
}

// New builds the sui for the civil year annus.
//
// ErrNoData is returned when the ephemeris table lacks the year. Years
// whose instants precede the supported universal time range (before
// 1972) fail with timescale.ErrUnsupported. An ephemeris record that is
// present but internally inconsistent (a month count between solstices
// other than 12 or 13, or a thirteen-month sui with no term-less month)
// is a data defect and panics.
func New(annus int) (*Annus, error) {
	eph, ok := ephemeris.Get(annus)
	if !ok {
		return nil, fmt.Errorf("annus %d: %w", annus, ErrNoData)
	}
	newMoons := make([]kalendarilo.Date, len(eph.MoonPhase))
	for i, phases := range eph.MoonPhase {
		d, err := dateCST(phases[0])
		if err != nil {
			return nil, fmt.Errorf("annus %d, new moon %d: %w", annus, i, err)
		}
		newMoons[i] = d
	}
	ws, err := dateCST(eph.SolarTerm[0])
	if err != nil {
		return nil, fmt.Errorf("annus %d, winter solstice: %w", annus, err)
	}
	wsNext, err := dateCST(eph.SolarTerm[24])
	if err != nil {
		return nil, fmt.Errorf("annus %d, next winter solstice: %w", annus, err)
	}

	// The eleventh month is the one whose head is the last new moon on
	// or before the solstice day. The same rule bounds both solstices so
	// that consecutive sui tile the calendar exactly, including when a
	// new moon falls on the solstice day itself (as at the end of 1984,
	// 1995 and 2014).
	m11 := lastOnOrBefore(newMoons, ws)
	m11Next := lastOnOrBefore(newMoons, wsNext)
	if m11 < 0 || m11Next < 0 {
		panic(fmt.Sprintf("chinese: annus %d: no new moon before winter solstice %v", annus, ws))
	}
	needsLeap := false
	switch m11Next - m11 {
	case 12:
	case 13:
		needsLeap = true
	default:
		panic(fmt.Sprintf("chinese: annus %d: %d months between winter solstices", annus, m11Next-m11))
	}

	months := make([]NewMoon, 0, m11Next-m11+1)
	month := 10
	term := 0
	for i := m11; i <= m11Next; i++ {
		if needsLeap {
			termDate, err := dateCST(eph.SolarTerm[term])
			if err != nil {
				return nil, fmt.Errorf("annus %d, solar term %d: %w", annus, term, err)
			}
			if !newMoons[i+1].After(termDate) {
				// The month ends on or before its would-be principal
				// term: no principal term falls inside it, so it is the
				// leap month, keeping the preceding month's number.
				months = append(months, NewMoon{Month: Leap(month), Date: newMoons[i]})
				needsLeap = false
				continue
			}
		}
		month = month%12 + 1
		months = append(months, NewMoon{Month: Common(month), Date: newMoons[i]})
		term += 2
	}
	if needsLeap {
		panic(fmt.Sprintf("chinese: annus %d: thirteen months but no term-less month", annus))
	}

	return &Annus{Annus: annus, Ephemeris: eph, Months: months}, nil
}

// lastOnOrBefore returns the index of the last date in the sorted slice
// on or before bound, or -1.
func lastOnOrBefore(dates []kalendarilo.Date, bound kalendarilo.Date) int {
	return sort.Search(len(dates), func(i int) bool { return dates[i].After(bound) }) - 1
}

// FromDate builds the sui containing the given date, searching outward
// by civil year until a containing sui is found or the ephemeris data is
// exhausted.
func FromDate(date kalendarilo.Date) (*Annus, error) {
	year, _, _ := date.Gregorian()
	for {
		a, err := New(year)
		if err != nil {
			return nil, err
		}
		start := a.Months[0].Date
		end := a.Months[len(a.Months)-1].Date
		if !date.Before(start) && date.Before(end) {
			return a, nil
		}
		if date.Before(start) {
			year--
		} else {
			year++
		}
	}
}

// YMDFor returns the lunisolar year, month and day of month for the given
// date. The civil year is Annus-1 when the month number is 11 or 12,
// since those months of a sui precede the new year.
//
// ErrBefore or ErrAfter is returned when the date lies outside the sui.
func (a *Annus) YMDFor(date kalendarilo.Date) (year int, month Month, day int, err error) {
	begin := a.Months[0].Date
	end := a.Months[len(a.Months)-1].Date
	if date.Before(begin) {
		return 0, Month{}, 0, ErrBefore
	}
	if !date.Before(end) {
		return 0, Month{}, 0, ErrAfter
	}

	i := sort.Search(len(a.Months), func(i int) bool { return a.Months[i].Date.After(date) }) - 1
	m := a.Months[i]
	day = date.Sub(m.Date) + 1
	year = a.Annus
	if m.Month.Num() >= 11 {
		year--
	}
	return year, m.Month, day, nil
}

// SolarTermFor returns the solar term most recently begun on or before
// the given date: the civil year the term belongs to, the term number 1
// (立春) through 24 (大寒), and the number of days since the term began
// (0 meaning the term begins that day).
//
// The supported span runs from the sui's first day to the day before the
// next winter solstice. Dates between the sui's first day and its
// starting solstice fall under the previous sui's final terms, so those
// need the previous year's ephemeris; ErrNoData is returned when it is
// unavailable. ErrBefore or ErrAfter is returned outside the span.
func (a *Annus) SolarTermFor(date kalendarilo.Date) (year, term, dayOffset int, err error) {
	if date.Before(a.Months[0].Date) {
		return 0, 0, 0, ErrBefore
	}
	wsNext, err := dateCST(a.Ephemeris.SolarTerm[24])
	if err != nil {
		return 0, 0, 0, err
	}
	if !date.Before(wsNext) {
		return 0, 0, 0, ErrAfter
	}
	ws, err := dateCST(a.Ephemeris.SolarTerm[0])
	if err != nil {
		return 0, 0, 0, err
	}
	if date.Before(ws) {
		prev, ok := ephemeris.Get(a.Annus - 1)
		if !ok {
			return 0, 0, 0, fmt.Errorf("annus %d: %w", a.Annus-1, ErrNoData)
		}
		for idx := 23; idx >= 22; idx-- {
			termDate, err := dateCST(prev.SolarTerm[idx])
			if err != nil {
				return 0, 0, 0, fmt.Errorf("annus %d, solar term %d: %w", a.Annus-1, idx, err)
			}
			if !date.Before(termDate) {
				return a.Annus - 1, termNumber(idx), date.Sub(termDate), nil
			}
		}
		panic(fmt.Sprintf("chinese: annus %d: solar terms do not cover %v", a.Annus-1, date))
	}

	idx := sort.Search(24, func(i int) bool {
		termDate, cerr := dateCST(a.Ephemeris.SolarTerm[i])
		if cerr != nil {
			// Later instants of a sui whose solstice converted cannot
			// precede the supported range.
			panic(fmt.Sprintf("chinese: annus %d, solar term %d: %v", a.Annus, i, cerr))
		}
		return termDate.After(date)
	}) - 1
	termDate, err := dateCST(a.Ephemeris.SolarTerm[idx])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("annus %d, solar term %d: %w", a.Annus, idx, err)
	}
	return a.Annus, termNumber(idx), date.Sub(termDate), nil
}

// termNumber converts a solar term index counted from the winter solstice
// into the conventional numbering from 立春 (1) to 大寒 (24).
func termNumber(idx int) int {
	return (idx+21)%24 + 1
}

// SexagenaryYear returns the sexagenary cycle number of a civil year, 1
// (甲子) through 60 (癸亥).
func SexagenaryYear(year int) int {
	return (modFloor(year, 60)+2696)%60 + 1
}

func modFloor(a, n int) int {
	return (a%n + n) % n
}
