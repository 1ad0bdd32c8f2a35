package model

import (
	"fmt"
	"time"
)

// Window identifies a lookback period for a price series.
type Window string

const (
	Window1Mo Window = "1mo"
	Window3Mo Window = "3mo"
	Window6Mo Window = "6mo"
	Window1Y  Window = "1y"
	Window2Y  Window = "2y"
)

// DefaultWindow is used when callers do not specify a period.
const DefaultWindow = Window1Y

// ParseWindow validates a window token.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case Window1Mo, Window3Mo, Window6Mo, Window1Y, Window2Y:
		return w, nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

// Start returns the beginning of the window relative to now.
func (w Window) Start(now time.Time) time.Time {
	switch w {
	case Window1Mo:
		return now.AddDate(0, -1, 0)
	case Window3Mo:
		return now.AddDate(0, -3, 0)
	case Window6Mo:
		return now.AddDate(0, -6, 0)
	case Window2Y:
		return now.AddDate(-2, 0, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}
