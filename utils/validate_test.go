package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	testCases := []struct {
		testName string
		addr     string
		want     bool
	}{
		{testName: "plain address", addr: "user@example.com", want: true},
		{testName: "subdomain", addr: "user@mail.example.co.uk", want: true},
		{testName: "plus tag", addr: "user+beta@example.com", want: true},
		{testName: "missing at", addr: "userexample.com", want: false},
		{testName: "missing domain dot", addr: "user@example", want: false},
		{testName: "missing local part", addr: "@example.com", want: false},
		{testName: "missing tld", addr: "user@example.", want: false},
		{testName: "embedded whitespace", addr: "us er@example.com", want: false},
		{testName: "double at", addr: "user@@example.com", want: false},
		{testName: "empty string", addr: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if got := IsValidEmail(tc.addr); got != tc.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tc.addr, got, tc.want)
			}
		})
	}
}
