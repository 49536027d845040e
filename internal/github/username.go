// Package github fetches and assembles GitHub profile data for candidate
// analysis.
package github

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9-]{1,39}$`)

// ErrInvalidUsername indicates input that cannot be a GitHub username.
type ErrInvalidUsername struct {
	Input string
}

func (e *ErrInvalidUsername) Error() string {
	return fmt.Sprintf("invalid GitHub username: %q", e.Input)
}

// ExtractUsername normalizes a username, profile URL, or @handle into a bare
// GitHub username.
func ExtractUsername(input string) (string, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "@")

	for _, prefix := range []string{
		"https://github.com/",
		"http://github.com/",
		"https://www.github.com/",
		"github.com/",
		"www.github.com/",
	} {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			s = s[len(prefix):]
			break
		}
	}
	// Keep only the first path segment of a profile URL.
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}

	if !usernameRe.MatchString(s) || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return "", &ErrInvalidUsername{Input: input}
	}
	return s, nil
}
