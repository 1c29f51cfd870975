package models

import (
	"testing"
	"time"
)

func TestIsValidFrequency(t *testing.T) {
	tests := []struct {
		freq     string
		expected bool
	}{
		{FrequencyDaily, true},
		{FrequencyWeekly, true},
		{FrequencyMonthly, true},
		{"yearly", false},
		{"DAILY", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.freq, func(t *testing.T) {
			if got := IsValidFrequency(tt.freq); got != tt.expected {
				t.Errorf("IsValidFrequency(%q) = %v, want %v", tt.freq, got, tt.expected)
			}
		})
	}
}

func TestNextAfter(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		frequency string
		next      time.Time
		now       time.Time
		expected  time.Time
	}{
		{
			name:      "daily steps one day",
			frequency: FrequencyDaily,
			next:      base,
			now:       base,
			expected:  base.AddDate(0, 0, 1),
		},
		{
			name:      "weekly steps seven days",
			frequency: FrequencyWeekly,
			next:      base,
			now:       base,
			expected:  base.AddDate(0, 0, 7),
		},
		{
			name:      "monthly steps one month",
			frequency: FrequencyMonthly,
			next:      base,
			now:       base,
			expected:  base.AddDate(0, 1, 0),
		},
		{
			name:      "missed periods collapse into one future occurrence",
			frequency: FrequencyDaily,
			next:      base,
			now:       base.AddDate(0, 0, 5),
			expected:  base.AddDate(0, 0, 6),
		},
		{
			name:      "future occurrence is kept",
			frequency: FrequencyWeekly,
			next:      base.AddDate(0, 0, 3),
			now:       base,
			expected:  base.AddDate(0, 0, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Schedule{Frequency: tt.frequency, NextDeliveryAt: tt.next}
			got := s.NextAfter(tt.now)
			if !got.Equal(tt.expected) {
				t.Errorf("NextAfter(%v) = %v, want %v", tt.now, got, tt.expected)
			}
		})
	}
}
