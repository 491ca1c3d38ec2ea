// Package common provides small shared helpers.
package common

// Shorten abbreviates long hex identifiers for log output, keeping head and
// tail characters around an ellipsis.
func Shorten(v string, head, tail int) string {
	if len(v) <= head+tail {
		return v
	}
	return v[:head] + "..." + v[len(v)-tail:]
}
