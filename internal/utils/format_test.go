package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSince(t *testing.T) {
	assert.Equal(t, "N/A", FormatSince(time.Time{}))
	assert.Equal(t, "0s ago", FormatSince(time.Now().Add(time.Hour)))
	assert.Equal(t, "15m ago", FormatSince(time.Now().Add(-15*time.Minute-time.Second)))
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name     string
		since    time.Duration
		expected string
	}{
		{"Seconds ago", 30 * time.Second, "30s ago"},
		{"Minutes ago", 15 * time.Minute, "15m ago"},
		{"Hours ago", 5 * time.Hour, "5h ago"},
		{"Days ago", 3 * 24 * time.Hour, "3d ago"},
		{"Weeks ago", 2 * 7 * 24 * time.Hour, "2w ago"},
		{"Months ago", 4 * 30 * 24 * time.Hour, "4mo ago"},
		{"Years ago", 2 * 365 * 24 * time.Hour, "2y ago"},
		{"Future time", -time.Hour, "0s ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatAge(tt.since))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "unlimited"},
		{-5, "unlimited"},
		{80, "80 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 30, "1.0 GiB"},
		{3 << 40, "3.0 TiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBytes(tt.n), "bytes=%d", tt.n)
	}
}
