// Package idnumber derives a date of birth from a South African identity
// number. The first six digits encode YYMMDD; the century is inferred from
// the two-digit year.
package idnumber

import "time"

// centuryCutoff: two-digit years at or above this value are 1900s, below
// it 2000s. A 13-digit scheme cannot encode the century itself.
const centuryCutoff = 25

// DateOfBirth extracts the birth date encoded in id. ok is false when id
// is not exactly 13 digits or the encoded date is not a real calendar date
// (e.g. month 13). It never panics.
func DateOfBirth(id string) (time.Time, bool) {
	if len(id) != 13 {
		return time.Time{}, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}

	yy := int(id[0]-'0')*10 + int(id[1]-'0')
	month := int(id[2]-'0')*10 + int(id[3]-'0')
	day := int(id[4]-'0')*10 + int(id[5]-'0')

	year := 2000 + yy
	if yy >= centuryCutoff {
		year = 1900 + yy
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject anything that
	// did not round-trip.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
