package copyright

import (
	"regexp"
	"strconv"
	"strings"
)

// hintMarkers are lowercase substrings that make a line worth tokenizing.
var hintMarkers = []string{
	"©",
	"(c)",
	"|copy|", // reStructuredText
	"&#169",
	"&#xa9",
	"169",
	"xa9",
	"u00a9",
	"00a9",
	`\251`,
	"opyr", // also (c)opyright
	"opyl",
	"copr",
	"right",
	"reserv",
	"auth",
	"contrib",
	"commit",
	"filecontributor",
	"devel",
	"<s>", // Debian markup
	"</s>",
	"<s/>",
	"by ",
	"@",
}

var yearRe = regexp.MustCompile(`(?:^|[\(\.,\-\)\s]+)(?:19[6-9][0-9]|20[0-9]{2})(?:[\(\.,\-\)\s]+|$)`)

// HasYear reports whether line holds a year in 1960..2099 delimited by
// punctuation, whitespace or the edges of the line.
func HasYear(line string) bool {
	return yearRe.MatchString(line)
}

// HasCopyrightHint reports whether line contains any copyright marker,
// ignoring case.
func HasCopyrightHint(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range hintMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsCandidate reports whether line should be considered for detection.
func IsCandidate(line string) bool {
	return HasCopyrightHint(line) || HasYear(line)
}

// HasTrailingYear reports whether s ends with a year once trailing ASCII
// punctuation and whitespace are removed.
func HasTrailingYear(s string) bool {
	trimmed := strings.TrimRightFunc(s, func(r rune) bool {
		return isASCIIPunct(r) || isSpace(r)
	})
	if len(trimmed) < 4 {
		return false
	}
	last4 := trimmed[len(trimmed)-4:]
	for i := 0; i < 4; i++ {
		if last4[i] < '0' || last4[i] > '9' {
			return false
		}
	}
	year, err := strconv.Atoi(last4)
	return err == nil && year >= 1960 && year <= 2099
}
