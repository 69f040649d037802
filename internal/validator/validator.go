// Package validator gates source references before any download is attempted.
package validator

import "regexp"

// Matched from the start of the input only; anything may follow the first path separator.
var reVideoURL = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.?be)/.+`)

// IsValid reports whether s points at a recognized video host.
func IsValid(s string) bool {
	return reVideoURL.MatchString(s)
}
