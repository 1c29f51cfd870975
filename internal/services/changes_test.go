package services

import (
	"reflect"
	"testing"
)

func TestFieldChanges(t *testing.T) {
	tests := []struct {
		name     string
		before   map[string]any
		after    map[string]any
		expected map[string]any
	}{
		{
			name:     "no changes",
			before:   map[string]any{"name": "Casco", "quantity": 10},
			after:    map[string]any{"name": "Casco", "quantity": 10},
			expected: map[string]any{},
		},
		{
			name:   "one field changed",
			before: map[string]any{"name": "Casco", "quantity": 10},
			after:  map[string]any{"name": "Casco", "quantity": 4},
			expected: map[string]any{
				"quantity": map[string]any{"old": 10, "new": 4},
			},
		},
		{
			name:   "field added",
			before: map[string]any{"name": "Casco"},
			after:  map[string]any{"name": "Casco", "category": "safety"},
			expected: map[string]any{
				"category": map[string]any{"old": nil, "new": "safety"},
			},
		},
		{
			name:   "nil to value",
			before: map[string]any{"supplier": nil},
			after:  map[string]any{"supplier": "ACME"},
			expected: map[string]any{
				"supplier": map[string]any{"old": nil, "new": "ACME"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldChanges(tt.before, tt.after)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("fieldChanges = %#v, want %#v", got, tt.expected)
			}
		})
	}
}
