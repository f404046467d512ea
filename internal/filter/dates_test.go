package filter

import (
	"testing"
	"time"
)

type dated struct {
	at *time.Time
}

func tp(t time.Time) *time.Time { return &t }

// now is a Wednesday so the ISO week spans the prior Monday to Sunday.
var wednesday = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func TestCalendarDays(t *testing.T) {
	from := time.Date(2026, 3, 11, 23, 30, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 0, 15, 0, 0, time.UTC)
	if got := calendarDays(from, to); got != 1 {
		t.Errorf("calendarDays() = %d, want 1 (time of day ignored)", got)
	}

	if got := calendarDays(to, from); got != -1 {
		t.Errorf("calendarDays() reversed = %d, want -1", got)
	}
}

func TestIsoWeek(t *testing.T) {
	start, end := isoWeek(wednesday)
	if start.Weekday() != time.Monday {
		t.Errorf("isoWeek start weekday = %v, want Monday", start.Weekday())
	}
	if !start.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("isoWeek start = %v", start)
	}
	if end.Before(time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("isoWeek end = %v, want end of Sunday", end)
	}

	// A Sunday belongs to the week that started the prior Monday.
	sunday := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	start, _ = isoWeek(sunday)
	if !start.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("isoWeek(Sunday) start = %v, want prior Monday", start)
	}
}

func TestDeadlineWindow(t *testing.T) {
	deadline := func(d dated) *time.Time { return d.at }

	tests := []struct {
		name   string
		window string
		at     *time.Time
		want   bool
	}{
		{"empty window passes all", "", nil, true},
		{"ALL passes all", WindowAll, tp(wednesday.AddDate(1, 0, 0)), true},
		{"near bucket lower edge", Deadline0To30, tp(wednesday), true},
		{"near bucket upper edge", Deadline0To30, tp(wednesday.AddDate(0, 0, 30)), true},
		{"past deadline fails near bucket", Deadline0To30, tp(wednesday.AddDate(0, 0, -1)), false},
		{"mid bucket", Deadline31To90, tp(wednesday.AddDate(0, 0, 45)), true},
		{"mid bucket excludes day 30", Deadline31To90, tp(wednesday.AddDate(0, 0, 30)), false},
		{"far bucket", Deadline90Plus, tp(wednesday.AddDate(0, 0, 91)), true},
		{"nil only matches NO_DEADLINE", DeadlineNone, nil, true},
		{"present deadline fails NO_DEADLINE", DeadlineNone, tp(wednesday), false},
		{"nil fails numeric bucket", Deadline0To30, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeadlineWindow(tt.window, wednesday, deadline)(dated{at: tt.at})
			if got != tt.want {
				t.Errorf("DeadlineWindow(%q) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestVerifiedWindow(t *testing.T) {
	verified := func(d dated) *time.Time { return d.at }

	tests := []struct {
		name   string
		window string
		at     *time.Time
		want   bool
	}{
		{"empty window passes all", "", nil, true},
		{"fresh bucket", Verified0To90, tp(wednesday.AddDate(0, 0, -30)), true},
		{"fresh bucket upper edge", Verified0To90, tp(wednesday.AddDate(0, 0, -90)), true},
		{"aging bucket", Verified90To180, tp(wednesday.AddDate(0, 0, -120)), true},
		{"stale bucket", Verified180Plus, tp(wednesday.AddDate(0, 0, -200)), true},
		{"never verified matches no bucket", Verified180Plus, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifiedWindow(tt.window, wednesday, verified)(dated{at: tt.at})
			if got != tt.want {
				t.Errorf("VerifiedWindow(%q) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestFollowUpWindow(t *testing.T) {
	followUp := func(d dated) *time.Time { return d.at }

	tests := []struct {
		name   string
		window string
		at     *time.Time
		want   bool
	}{
		{"empty window passes all", "", nil, true},
		{"this week includes Friday", FollowUpThisWeek, tp(time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)), true},
		{"this week includes Monday", FollowUpThisWeek, tp(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)), true},
		{"this week excludes next Monday", FollowUpThisWeek, tp(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)), false},
		{"overdue is strictly before now", FollowUpOverdue, tp(wednesday.Add(-time.Hour)), true},
		{"future is not overdue", FollowUpOverdue, tp(wednesday.Add(time.Hour)), false},
		{"nil matches NONE", FollowUpNone, nil, true},
		{"present fails NONE", FollowUpNone, tp(wednesday), false},
		{"nil fails OVERDUE", FollowUpOverdue, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FollowUpWindow(tt.window, wednesday, followUp)(dated{at: tt.at})
			if got != tt.want {
				t.Errorf("FollowUpWindow(%q) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestValidWindow(t *testing.T) {
	if got := validWindow(Deadline0To30, Deadline0To30, Deadline31To90); got != Deadline0To30 {
		t.Errorf("validWindow() = %q, want %q", got, Deadline0To30)
	}
	if got := validWindow("BOGUS", Deadline0To30); got != WindowAll {
		t.Errorf("validWindow(BOGUS) = %q, want ALL", got)
	}
}
