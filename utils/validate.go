package utils

import "regexp"

// emailPattern matches the local@domain.tld shape the dashboard expects.
// Deliberately loose: one non-whitespace/non-@ run, an @, another run, a dot
// and a trailing run.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether addr looks like a deliverable email address.
func IsValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}
