package attempt

import (
	"strconv"
	"strings"
)

// Correctness is the normalized outcome of an attempt as read from a log.
// Rows written by older versions encode it as 0/1, true/false or yes/no;
// anything else is Unknown, which counts as incorrect.
type Correctness struct {
	known bool
	value bool
}

// Unknown is an outcome that could not be parsed.
var Unknown = Correctness{}

// FromBool returns a known outcome.
func FromBool(correct bool) Correctness {
	return Correctness{known: true, value: correct}
}

// ParseCorrectness normalizes a stored correctness token. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseCorrectness(s string) Correctness {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return FromBool(true)
	case "0", "false", "no":
		return FromBool(false)
	case "":
		return Unknown
	}
	// Numeric columns may come back as "1.0" after a spreadsheet round trip.
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		switch f {
		case 1:
			return FromBool(true)
		case 0:
			return FromBool(false)
		}
	}
	return Unknown
}

// IsKnown reports whether the outcome was parsed successfully.
func (c Correctness) IsKnown() bool { return c.known }

// Bool reports a correct outcome. Unknown is false.
func (c Correctness) Bool() bool { return c.known && c.value }

// Int returns 1 for a correct outcome and 0 otherwise.
func (c Correctness) Int() int {
	if c.Bool() {
		return 1
	}
	return 0
}

// Normalize collapses Unknown to a known incorrect outcome.
func (c Correctness) Normalize() Correctness {
	return FromBool(c.Bool())
}

// String returns the numeric encoding written to logs.
func (c Correctness) String() string {
	return strconv.Itoa(c.Int())
}
