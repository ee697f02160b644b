package nutrition

import (
	"fmt"
	"time"
)

// Window is the resolved time range statistics are aggregated over.
type Window struct {
	Range string    `json:"range"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// ResolveWindow turns a range keyword into concrete day bounds. Custom ranges
// parse start/end as 2006-01-02; start must not be after end.
func ResolveWindow(rng, start, end string, now time.Time) (Window, error) {
	today := dayStart(now)
	switch rng {
	case "", "today":
		return Window{Range: "today", From: today, To: today}, nil
	case "week":
		return Window{Range: "week", From: today.AddDate(0, 0, -6), To: today}, nil
	case "month":
		return Window{Range: "month", From: today.AddDate(0, -1, 1), To: today}, nil
	case "custom":
		from, err := time.ParseInLocation("2006-01-02", start, now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		to, err := time.ParseInLocation("2006-01-02", end, now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		if from.After(to) {
			return Window{}, fmt.Errorf("start date %s is after end date %s", start, end)
		}
		return Window{Range: "custom", From: from, To: to}, nil
	default:
		return Window{}, fmt.Errorf("unknown range %q", rng)
	}
}
