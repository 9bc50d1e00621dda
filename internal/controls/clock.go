package controls

import "fmt"

// FormatClock renders milliseconds as mm:ss, or h:mm:ss from one hour up.
// Negative values render as zero.
func FormatClock(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	total := millis / 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
