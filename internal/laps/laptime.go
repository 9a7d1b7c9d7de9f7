package laps

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseLapTime converts a "M:SS.sss" lap time into total seconds.
//
// The string must contain exactly one colon, an integer minute part and a
// decimal seconds part. Anything else yields an absent value; a malformed cell
// only ever drops its own row.
func ParseLapTime(s string) Optional[float64] {
	minStr, secStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || strings.Contains(secStr, ":") {
		return None[float64]()
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return None[float64]()
	}

	seconds, ok := parseDecimal(strings.TrimSpace(secStr))
	if !ok {
		return None[float64]()
	}

	return Some(float64(minutes)*60 + seconds)
}

// parseDecimal parses plain decimal notation. strconv.ParseFloat also takes
// hex floats ("0x1p4") and NaN/Inf; timing exports never contain those.
func parseDecimal(s string) (float64, bool) {
	if strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatLapTime renders seconds as "M:SS.sss".
func FormatLapTime(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	// Round to milliseconds first so 59.9996 does not print as 0:60.000.
	ms := int64(math.Round(seconds * 1000))
	minutes := ms / 60000
	rem := float64(ms%60000) / 1000
	return fmt.Sprintf("%s%d:%06.3f", sign, minutes, rem)
}
