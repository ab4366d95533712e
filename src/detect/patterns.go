package detect

import (
	"regexp"
	"strings"
)

// Content regex families. Each pattern must match the full sampled value.
var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern      = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,4}[)]?[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,9}$`)
	ssnPattern        = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	creditCardPattern = regexp.MustCompile(`^\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}$`)
)

// patternFamily pairs a regex with the reason label it contributes and an
// optional normalization applied to each value before matching.
type patternFamily struct {
	label     string
	pattern   *regexp.Regexp
	normalize func(string) string
}

var patternFamilies = []patternFamily{
	{label: "email_pattern", pattern: emailPattern},
	{label: "phone_pattern", pattern: phonePattern},
	{label: "ssn_pattern", pattern: ssnPattern},
	// grouping separators are stripped before matching card numbers
	{label: "credit_card_pattern", pattern: creditCardPattern,
		normalize: func(s string) string { return strings.ReplaceAll(s, " ", "") }},
}

func (pf patternFamily) matches(value string) bool {
	if pf.normalize != nil {
		value = pf.normalize(value)
	}
	return pf.pattern.MatchString(value)
}
