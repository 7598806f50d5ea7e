// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"month", "2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"day", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"year", "2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 utc", "2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"rfc3339 offset", "2024-03-31T23:30:00-02:00", time.Date(2024, 4, 1, 1, 30, 0, 0, time.UTC)},
		{"rfc3339 fraction", "2024-03-15T10:30:00.123Z", time.Date(2024, 3, 15, 10, 30, 0, 123000000, time.UTC)},
		{"naive iso", "2024-03-15T10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"space offset", "2024-03-15 10:30:00+00:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"space naive", "2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"padded", "  2024-03-15 ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2024-13", "2024-02-30", "15/03/2024"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestResearchRequestHasDateRange(t *testing.T) {
	now := time.Now()
	assert.False(t, ResearchRequest{Topic: "x"}.HasDateRange())
	assert.False(t, ResearchRequest{Topic: "x", StartDate: &now}.HasDateRange())
	assert.True(t, ResearchRequest{Topic: "x", StartDate: &now, EndDate: &now}.HasDateRange())
}
