package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(time.Hour), "just now"},
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-24 * time.Hour), "1 day ago"},
		{now.Add(-10 * 24 * time.Hour), "Feb 19, 2026"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FriendlyRelativeTime(tt.at, now))
	}
}

func TestDateTimeLocalRoundTrip(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	at := time.Date(2026, 5, 1, 23, 30, 0, 0, time.UTC)

	v := FormatDateTimeLocal(at, loc)
	assert.Equal(t, "2026-05-01T18:30", v)

	parsed, err := ParseDateTimeLocal(v, loc)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))

	_, err = ParseDateTimeLocal("tomorrow", loc)
	require.Error(t, err)
	assert.Empty(t, FormatDateTimeLocal(time.Time{}, loc))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "abcd…", TruncateWithEllipsis("abcdefgh", 5))
	assert.Equal(t, "…", TruncateWithEllipsis("abcdefgh", 1))
}
