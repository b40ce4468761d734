// Package progress maps processed work units to an integer percentage.
package progress

// Percent returns the integer percentage of processed units out of total,
// in [0, 100]. A non-positive total yields 0; processed counts that
// transiently exceed the total are capped at 100.
func Percent(processed, total int) int {
	if total <= 0 {
		return 0
	}
	if processed < 0 {
		return 0
	}
	pct := processed * 100 / total
	if pct > 100 {
		return 100
	}
	return pct
}
