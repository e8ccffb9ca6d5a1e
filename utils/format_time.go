// SPDX-License-Identifier: EPL-2.0

package utils

import "fmt"

// FormatTime renders a duration in seconds as MM:SS, switching to
// HH:MM:SS from one hour up.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
