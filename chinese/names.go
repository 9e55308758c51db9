// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package chinese

import (
	"fmt"
	"strings"
)

// NumChinese holds the Chinese numerals 一 through 九 at indices 1
// through 9; index 0 holds 十 to ease date formatting.
var NumChinese = []string{"十", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

var (
	stemNames   = []string{"癸", "甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬"}
	branchNames = []string{"亥", "子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌"}
)

// SexagenaryName returns the stem-branch name of a sexagenary cycle
// number, e.g. 甲子 for 1 and 癸亥 for 60.
func SexagenaryName(num int) string {
	return stemNames[modFloor(num, 10)] + branchNames[modFloor(num, 12)]
}

// String returns the Chinese name of the month, e.g. 正月, 冬月, 臘月 or
// 閏六月. It panics when the month number is not in 1 through 12.
func (m Month) String() string {
	var out strings.Builder
	if m.leap {
		out.WriteString("閏")
	}
	switch {
	case m.num == 1:
		out.WriteString("正")
	case m.num >= 2 && m.num <= 9:
		out.WriteString(NumChinese[m.num])
	case m.num == 10:
		out.WriteString("十")
	case m.num == 11:
		out.WriteString("冬")
	case m.num == 12:
		out.WriteString("臘")
	default:
		panic(fmt.Sprintf("chinese: month %d not in 1..12", m.num))
	}
	out.WriteString("月")
	return out.String()
}

// DayName returns the Chinese name of a day of the lunar month: 初一
// through 初十 for the first ten days, 廿一 through 廿九 for days 21
// through 29. It panics when the day is not in 1 through 30.
func DayName(day int) string {
	var prefix string
	switch {
	case day >= 1 && day <= 10:
		prefix = "初"
	case day >= 11 && day <= 19:
		prefix = "十"
	case day == 20:
		prefix = "二"
	case day >= 21 && day <= 29:
		prefix = "廿"
	case day == 30:
		prefix = "三"
	default:
		panic(fmt.Sprintf("chinese: day %d not in 1..30", day))
	}
	return prefix + NumChinese[day%10]
}

// solarTermNames is indexed by term number mod 24, so index 0 holds 大寒
// (term 24).
var solarTermNames = []string{
	"大寒", "立春", "雨水", "驚蟄", "春分", "清明", "穀雨", "立夏",
	"小滿", "芒種", "夏至", "小暑", "大暑", "立秋", "處暑", "白露",
	"秋分", "寒露", "霜降", "立冬", "小雪", "大雪", "冬至", "小寒",
}

// SolarTermName returns the name of a solar term numbered 1 (立春)
// through 24 (大寒).
func SolarTermName(term int) string {
	return solarTermNames[modFloor(term, 24)]
}
