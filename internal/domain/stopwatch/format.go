package stopwatch

import (
	"fmt"
	"math"
	"time"

	"github.com/rpggio/courtroom/internal/parseint"
)

// MaxElapsed bounds the elapsed time so a running stopwatch cannot overflow.
const MaxElapsed = time.Duration(math.MaxInt64 / 2)

const maxMinutes = int(MaxElapsed / time.Minute)

// FormatMMSS renders d as zero padded minutes and seconds.
func FormatMMSS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseMMSS converts manual minute and second inputs into a duration, reading
// the integer prefix of each. Invalid or negative minutes count as zero,
// minutes are capped below MaxElapsed and seconds are clamped to 0..59.
func ParseMMSS(mm, ss string) time.Duration {
	m := min(max(leadingOrZero(mm), 0), maxMinutes-1)
	s := min(max(leadingOrZero(ss), 0), 59)
	return time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

func leadingOrZero(v string) int {
	n, _ := parseint.Leading(v)
	return n
}
