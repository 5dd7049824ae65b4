// Package nnduration provides JSON-compatible non-negative duration types.
package nnduration

import (
	"strconv"
	"strings"
	"time"
)

func parse(input string, unit time.Duration) (value uint64, e error) {
	if d, e := time.ParseDuration(input); e == nil {
		if d < 0 {
			return 0, strconv.ErrRange
		}
		return uint64(d / unit), nil
	}
	return strconv.ParseUint(input, 10, 64)
}

// Milliseconds is a duration in milliseconds unit.
// In JSON, it can be written as an integer or a string accepted by time.ParseDuration.
type Milliseconds uint64

// Duration converts to time.Duration.
func (d Milliseconds) Duration() time.Duration {
	return time.Duration(d) * time.Millisecond
}

// DurationOr converts non-zero value to time.Duration, or returns dflt if zero.
func (d Milliseconds) DurationOr(dflt Milliseconds) time.Duration {
	if d == 0 {
		return dflt.Duration()
	}
	return d.Duration()
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (d *Milliseconds) UnmarshalJSON(p []byte) error {
	return d.UnmarshalText([]byte(strings.Trim(string(p), `"`)))
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (d *Milliseconds) UnmarshalText(text []byte) error {
	v, e := parse(string(text), time.Millisecond)
	if e != nil {
		return e
	}
	*d = Milliseconds(v)
	return nil
}
