// Package uiutil holds small formatting helpers shared by templates and handlers.
package uiutil

import (
	"strconv"
	"strings"
	"time"
)

const (
	FriendlyDateTimeLayout = "Mon, Jan 2, 2006 3:04 PM"
	FriendlyDateLayout     = "Jan 2, 2006"
	// DateTimeLocalLayout is the value format of <input type="datetime-local">.
	DateTimeLocalLayout = "2006-01-02T15:04"
)

// FriendlyRelativeTime describes how long before now t occurred.
// Times in the future are treated as "just now".
func FriendlyRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day") + " ago"
	default:
		return FormatFriendlyDate(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// FormatFriendlyDateTime returns a consistent, user-friendly timestamp in loc.
func FormatFriendlyDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(locOrUTC(loc)).Format(FriendlyDateTimeLayout)
}

// FormatFriendlyDate returns the calendar date of t.
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(FriendlyDateLayout)
}

// FormatDateTimeLocal renders t for a datetime-local input in loc.
func FormatDateTimeLocal(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(locOrUTC(loc)).Format(DateTimeLocalLayout)
}

// ParseDateTimeLocal parses a datetime-local input value in loc.
func ParseDateTimeLocal(v string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLocalLayout, strings.TrimSpace(v), locOrUTC(loc))
}

func locOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
