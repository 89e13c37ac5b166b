package utils

import (
	"testing"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name        string
		phone       string
		countryCode string
		expected    string
		shouldError bool
	}{
		{
			name:        "US number with dialing code",
			phone:       "2025550123",
			countryCode: "+1",
			expected:    "+12025550123",
			shouldError: false,
		},
		{
			name:        "US number already in E.164",
			phone:       "+12025550123",
			countryCode: "+1",
			expected:    "+12025550123",
			shouldError: false,
		},
		{
			name:        "country code without plus",
			phone:       "2025550123",
			countryCode: "1",
			expected:    "+12025550123",
			shouldError: false,
		},
		{
			name:        "Indian number with spaces",
			phone:       "98765 43210",
			countryCode: "+91",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "leading and trailing spaces",
			phone:       "  2025550123  ",
			countryCode: "+1",
			expected:    "+12025550123",
			shouldError: false,
		},
		{
			name:        "too short",
			phone:       "123",
			countryCode: "+1",
			expected:    "",
			shouldError: true,
		},
		{
			name:        "not a number",
			phone:       "call me maybe",
			countryCode: "+1",
			expected:    "",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizePhoneNumber(tt.phone, tt.countryCode)

			if tt.shouldError {
				if err == nil {
					t.Errorf("expected error for input %q, got result %q", tt.phone, result)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.phone, err)
				return
			}

			if result != tt.expected {
				t.Errorf("NormalizePhoneNumber(%q, %q) = %q, want %q", tt.phone, tt.countryCode, result, tt.expected)
			}
		})
	}
}
