package filter

import "time"

// Deadline windows bucket a future deadline by calendar days from now.
const (
	WindowAll        = "ALL"
	Deadline0To30    = "0_30"
	Deadline31To90   = "31_90"
	Deadline90Plus   = "90_PLUS"
	DeadlineNone     = "NO_DEADLINE"
	Verified0To90    = "0_90"
	Verified90To180  = "90_180"
	Verified180Plus  = "180_PLUS"
	FollowUpThisWeek = "THIS_WEEK"
	FollowUpOverdue  = "OVERDUE"
	FollowUpNone     = "NONE"
)

const (
	deadlineNearDays  = 30
	deadlineMidDays   = 90
	verifiedFreshDays = 90
	verifiedAgingDays = 180
	daysPerWeek       = 7
)

// calendarDays returns the difference to - from in whole calendar days,
// ignoring the time of day of either instant.
func calendarDays(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// isoWeek returns the Monday 00:00 and Sunday end of the ISO week holding t.
func isoWeek(t time.Time) (start, end time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = daysPerWeek // Sunday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = day.AddDate(0, 0, -(weekday - 1))
	end = start.AddDate(0, 0, daysPerWeek).Add(-time.Nanosecond)
	return start, end
}

// DeadlineWindow buckets a deadline relative to now. A record with no
// deadline only matches NO_DEADLINE, never a numeric bucket.
func DeadlineWindow[T any](window string, now time.Time, deadline func(T) *time.Time) Predicate[T] {
	if window == "" || window == WindowAll {
		return func(T) bool { return true }
	}
	return func(record T) bool {
		d := deadline(record)
		if window == DeadlineNone {
			return d == nil
		}
		if d == nil {
			return false
		}
		days := calendarDays(now, *d)
		switch window {
		case Deadline0To30:
			return days >= 0 && days <= deadlineNearDays
		case Deadline31To90:
			return days > deadlineNearDays && days <= deadlineMidDays
		default: // 90_PLUS
			return days > deadlineMidDays
		}
	}
}

// VerifiedWindow buckets the age of a verification date. Records never
// verified match no bucket.
func VerifiedWindow[T any](window string, now time.Time, verified func(T) *time.Time) Predicate[T] {
	if window == "" || window == WindowAll {
		return func(T) bool { return true }
	}
	return func(record T) bool {
		v := verified(record)
		if v == nil {
			return false
		}
		days := calendarDays(*v, now)
		switch window {
		case Verified0To90:
			return days >= 0 && days <= verifiedFreshDays
		case Verified90To180:
			return days > verifiedFreshDays && days <= verifiedAgingDays
		default: // 180_PLUS
			return days > verifiedAgingDays
		}
	}
}

// FollowUpWindow buckets the next follow-up date: inside the current ISO
// week (Mon-Sun), strictly before now, or absent.
func FollowUpWindow[T any](window string, now time.Time, followUp func(T) *time.Time) Predicate[T] {
	if window == "" || window == WindowAll {
		return func(T) bool { return true }
	}
	weekStart, weekEnd := isoWeek(now)
	return func(record T) bool {
		f := followUp(record)
		if window == FollowUpNone {
			return f == nil
		}
		if f == nil {
			return false
		}
		if window == FollowUpOverdue {
			return f.Before(now)
		}
		return !f.Before(weekStart) && !f.After(weekEnd)
	}
}

// validWindow returns the token if it is in allowed, else ALL. Unrecognized
// tokens silently widen the filter rather than erroring.
func validWindow(token string, allowed ...string) string {
	for _, a := range allowed {
		if token == a {
			return token
		}
	}
	return WindowAll
}
