// Package parseint reads the integer prefix of loosely typed form input.
package parseint

import (
	"errors"
	"strconv"
	"strings"
)

// Leading parses the optionally signed run of digits at the start of s,
// ignoring leading whitespace and anything after the digits. "12abc" is 12
// and "3.7" is 3. Values outside the int range saturate. It reports false
// when s does not start with a digit.
func Leading(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
