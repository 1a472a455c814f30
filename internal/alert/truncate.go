package alert

const ellipsis = "..."

// Truncate shortens s to at most limit characters, replacing the tail with
// an ellipsis when it does not fit. Length is counted in code points.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string(r[:max(limit, 0)])
	}
	return string(r[:limit-len(ellipsis)]) + ellipsis
}
