package extract

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	labeledNameRe = regexp.MustCompile(`(?i)^\s*(?:full name|candidate name|candidate|applicant|name)\s*[:\-]\s*(.+)$`)
	resumeOfRe    = regexp.MustCompile(`(?i)^\s*(?:resume of|cv of|curriculum vitae of)\s*[:\-]?\s*(.+)$`)
)

// headerKeywords mark lines that are document furniture rather than a name.
var headerKeywords = []string{
	"resume", "curriculum", "vitae", "contact", "email", "phone",
	"address", "objective", "summary", "profile",
}

// CandidateName guesses the candidate's name from resume text, falling back
// to a cleaned version of the filename when no plausible line is found.
func CandidateName(text, filename string) string {
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}

	for _, re := range []*regexp.Regexp{labeledNameRe, resumeOfRe} {
		for _, line := range lines[:limit] {
			if m := re.FindStringSubmatch(line); m != nil {
				candidate := strings.TrimSpace(m[1])
				if plausibleName(candidate) {
					return candidate
				}
			}
		}
	}

	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) < 5 || len(line) > 50 {
			continue
		}
		if containsHeaderKeyword(line) {
			continue
		}
		if plausibleName(line) {
			words := len(strings.Fields(line))
			if words >= 2 && words <= 4 {
				return line
			}
		}
	}

	return nameFromFilename(filename)
}

func plausibleName(s string) bool {
	if s == "" || strings.Contains(s, "@") {
		return false
	}
	if strings.ContainsAny(s, "0123456789") {
		return false
	}
	return len(strings.Fields(s)) <= 5
}

func containsHeaderKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// nameFromFilename turns "jane_doe-resume.pdf" into "Jane Doe Resume".
func nameFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
