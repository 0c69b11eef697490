package aegis

import (
	"fmt"
	"regexp"
)

// defaultPatterns is the built-in heuristic table. Each entry is matched
// case-insensitively against an unqualified field name, in order.
var defaultPatterns = []string{
	`email|e-mail`,
	`phone|mobile`,
	`credit\s?card`,
	`ssn|social\s?security`,
	`passport`,
	`driver\s?license|dl\s?number`,
	`bank\s?account`,
	`routing\s?number`,
	`iban|swift`,
	`national\s?id|nid`,
	`date\s?of\s?birth|dob`,
	`tax\s?id|tin|ein`,
	`address`,
	`ip\s?address|ipv4|ipv6`,
}

// DefaultPatterns returns a copy of the built-in heuristic pattern table.
// Append to it and pass the result as Config.Patterns to extend the table.
func DefaultPatterns() []string {
	out := make([]string, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}

// patternTable is an ordered list of compiled, case-insensitive patterns.
type patternTable []*regexp.Regexp

func compilePatterns(patterns []string) (patternTable, error) {
	table := make(patternTable, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("%w %q: %w", ErrInvalidPattern, p, err)}
		}
		table = append(table, re)
	}
	return table, nil
}

// match reports whether any pattern matches name.
func (t patternTable) match(name string) bool {
	for _, re := range t {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (t patternTable) strings() []string {
	out := make([]string, len(t))
	for i, re := range t {
		out[i] = re.String()[len("(?i)"):]
	}
	return out
}
