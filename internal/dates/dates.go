// Package dates formats dates and durations the way the Hooting Yard
// pages print them. Spaces inside a date are non-breaking.
package dates

import (
	"fmt"
	"strconv"
	"time"
)

const nbsp = " "

// MinuteSecond formats seconds as "MM:SS", e.g. 194 -> "03:14".
func MinuteSecond(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// WrittenDate is "January the 22nd, 2012".
func WrittenDate(t time.Time) string {
	return t.Format("January") + nbsp + "the" + nbsp + Ordinal(t.Day()) + "," + nbsp + strconv.Itoa(t.Year())
}

// FullWrittenDate is "Friday, January the 8th, 2021".
func FullWrittenDate(t time.Time) string {
	return t.Format("Monday,") + nbsp + WrittenDate(t)
}

// BriefDate is "22nd Jan 2012".
func BriefDate(t time.Time) string {
	return Ordinal(t.Day()) + nbsp + t.Format("Jan") + nbsp + strconv.Itoa(t.Year())
}

// MonthAndYear is "January 2012".
func MonthAndYear(t time.Time) string {
	return t.Format("January") + nbsp + strconv.Itoa(t.Year())
}

// MonthID is the anchor of a month in the date indexes, "month-2012-01".
func MonthID(t time.Time) string {
	return t.Format("month-2006-01")
}

// Ordinal is 1 -> "1st", 2 -> "2nd", 11 -> "11th", 31 -> "31st".
func Ordinal(n int) string {
	suffix := "th"
	if teens := n % 100; teens < 11 || teens > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
