package model

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	for _, tok := range []string{"1mo", "3mo", "6mo", "1y", "2y"} {
		w, err := ParseWindow(tok)
		if err != nil {
			t.Errorf("token %q: unexpected error %v", tok, err)
		}
		if string(w) != tok {
			t.Errorf("token %q: got %q", tok, w)
		}
	}
	for _, tok := range []string{"", "5d", "1w", "10y", "1Y"} {
		if _, err := ParseWindow(tok); err == nil {
			t.Errorf("token %q: expected error", tok)
		}
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		window Window
		want   time.Time
	}{
		{Window1Mo, time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)},
		{Window3Mo, time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)},
		{Window6Mo, time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)},
		{Window1Y, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)},
		{Window2Y, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := tt.window.Start(now); !got.Equal(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.window, tt.want, got)
		}
	}
}
