package alert

import (
	"strconv"
	"strings"
)

// Severity indexes SeverityColors.
type Severity int

const (
	SeverityNotClassified Severity = iota
	SeverityInformation
	SeverityWarning
	SeverityAverage
	SeverityHigh
	SeverityDisaster
	SeverityResolved
)

// SeverityColors holds the embed color for every severity, resolved last.
var SeverityColors = [...]string{
	"#97AAB3",
	"#7499FF",
	"#FFC859",
	"#FFA059",
	"#E97659",
	"#E45959",
	"#009900",
}

// Valid reports whether s indexes SeverityColors.
func (s Severity) Valid() bool {
	return s >= 0 && int(s) < len(SeverityColors)
}

// Color returns the severity color as an integer, or 0 when s is out of
// range or the table entry is not hexadecimal.
func (s Severity) Color() int {
	if !s.Valid() {
		return 0
	}
	c, err := strconv.ParseInt(strings.TrimPrefix(SeverityColors[s], "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(c)
}
