package domain

import "strings"

// Weekdays is the canonical ordered list of weekday names used as keys in
// micro plans and availability maps. Every complete micro plan contains
// exactly these seven keys.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// validWeekdays is the set form of Weekdays for membership checks.
var validWeekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// IsWeekday returns true if name is one of the seven canonical weekday names.
func IsWeekday(name string) bool {
	return validWeekdays[name]
}

// NormalizeWeekday maps a case-insensitive day name to its canonical form.
func NormalizeWeekday(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, d := range Weekdays {
		if strings.EqualFold(d, name) {
			return d, true
		}
	}
	return "", false
}
