package postservice

import (
	"fmt"
	"time"
)

// timeAgo renders a coarse relative age for a past timestamp. Days win over
// hours, hours over minutes; anything under a minute is "just now". The unit
// word is always plural ("1 minutes ago"), matching what readers of the site
// have always seen.
func timeAgo(t time.Time, now time.Time) string {
	diff := now.Sub(t)

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d days ago", days)
	case hours > 0:
		return fmt.Sprintf("%d hours ago", hours)
	case minutes > 0:
		return fmt.Sprintf("%d minutes ago", minutes)
	default:
		return "just now"
	}
}
