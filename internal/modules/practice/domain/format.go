package domain

import (
	"fmt"
	"time"
)

// FormatElapsed renders d as MM:SS. Minutes keep growing past 99.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
