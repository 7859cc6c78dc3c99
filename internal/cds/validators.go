package cds

import "strings"

// Field validators. Each is a pure boolean predicate over well-typed input;
// none of them return errors. The normalizer uses them as advisory checks
// rather than hard gates: it prefers a best-effort record over rejecting a
// whole sign.

var validDayNames = map[string]struct{}{
	"MON": {}, "TUE": {}, "WED": {}, "THU": {}, "FRI": {}, "SAT": {}, "SUN": {},
	"MONDAY": {}, "TUESDAY": {}, "WEDNESDAY": {}, "THURSDAY": {},
	"FRIDAY": {}, "SATURDAY": {}, "SUNDAY": {},
}

var validRateUnits = map[string]struct{}{
	"minute": {}, "hour": {}, "day": {}, "month": {}, "year": {},
}

// ValidTimeFormat reports whether s is a strict 24-hour "HH:MM" string.
// Single-digit hours are rejected: "9:00" is invalid, "09:00" is valid.
func ValidTimeFormat(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && minute < 60
}

// ValidDays reports whether every entry is a full or abbreviated English
// weekday name, case-insensitively.
func ValidDays(days []string) bool {
	for _, d := range days {
		if _, ok := validDayNames[strings.ToUpper(d)]; !ok {
			return false
		}
	}
	return true
}

// ValidTimeSpan reports whether span has recognized day names, well-formed
// times, and start <= end. The ordering check models same-day windows only:
// an overnight span such as 22:00-02:00 is invalid here even when the sign
// legitimately means it. Known limitation, kept rather than special-cased.
func ValidTimeSpan(span *TimeSpan) bool {
	if span == nil {
		return false
	}
	if !ValidDays(span.DaysOfWeek) {
		return false
	}
	if !ValidTimeFormat(span.TimeOfDayStart) || !ValidTimeFormat(span.TimeOfDayEnd) {
		return false
	}
	return span.TimeOfDayStart <= span.TimeOfDayEnd
}

// ValidDuration reports whether minutes is a positive stay duration.
func ValidDuration(minutes int) bool {
	return minutes > 0
}

// ValidLocation reports whether loc decomposes into exactly two coordinates
// with longitude in [-180, 180] and latitude in [-90, 90].
func ValidLocation(loc *Location) bool {
	if loc == nil || len(loc.Coordinates) != 2 {
		return false
	}
	lon, lat := loc.Coordinates[0], loc.Coordinates[1]
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// ValidRate reports whether rate has a non-negative amount, a unit from the
// known vocabulary (case-insensitive), and a recognized period.
func ValidRate(rate *Rate) bool {
	if rate == nil || rate.Rate < 0 {
		return false
	}
	if _, ok := validRateUnits[strings.ToLower(rate.RateUnit)]; !ok {
		return false
	}
	return rate.RateUnitPeriod == Rolling || rate.RateUnitPeriod == Calendar
}
