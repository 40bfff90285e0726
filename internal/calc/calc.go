// Package calc provides the derived-value computations used when building
// the J101 output: ages, net income, per-child apportionment, and the text
// helpers for fixed-width form lines. Everything here is pure; monetary
// arithmetic uses shopspring/decimal throughout.
package calc

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Age returns whole years between dob and today, counting a year only once
// the birthday has passed.
func Age(dob, today time.Time) int {
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

// AgeString renders Age for display; a nil birth date yields "".
func AgeString(dob *time.Time, today time.Time) string {
	if dob == nil {
		return ""
	}
	return strconv.Itoa(Age(*dob, today))
}

// NetSalary is gross minus the sum of all deductions.
func NetSalary(gross decimal.Decimal, deductions ...decimal.Decimal) decimal.Decimal {
	net := gross
	for _, d := range deductions {
		net = net.Sub(d)
	}
	return net
}

// TotalIncome is net salary plus any additional income line.
func TotalIncome(net, other decimal.Decimal) decimal.Decimal {
	return net.Add(other)
}

// Apportion divides total evenly across n children. Zero children yields
// zero rather than a division error.
func Apportion(total decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero.Round(2)
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// WrapText splits s into a head line of at most limit characters and the
// remainder. Strings within the limit come back unchanged with an empty
// continuation. The split prefers the rightmost space at or before limit;
// with no space available the cut is hard, mid-word. Both segments are
// trimmed. Exactly two segments are returned; the remainder is never
// wrapped further. The limit counts characters, not bytes, so a cut never
// lands inside a multi-byte rune.
func WrapText(s string, limit int) (string, string) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, ""
	}
	cut := limit
	for i := limit - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut])), strings.TrimSpace(string(runes[cut:]))
}

// SplitPhone separates a contact number into its leading dialing code and
// the remainder. Spaces are stripped first. The J101 reserves a 3-character
// code box; numbers of 3 or fewer characters become the code in full with
// an empty remainder, so nothing is silently truncated.
func SplitPhone(s string) (code, rest string) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) <= 3 {
		return s, ""
	}
	return s[:3], s[3:]
}

// Money formats an amount with exactly two decimal places, the display
// form used on the J101.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
