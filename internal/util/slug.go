package util

import (
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(name string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

func ValidPincode(pin string) bool { return pincodeRe.MatchString(pin) }

var embeddedPincodeRe = regexp.MustCompile(`\b\d{6}\b`)

// ExtractPincode returns the first standalone 6-digit run found in s, or "".
// Longer digit runs (phone numbers) never match.
func ExtractPincode(s string) string { return embeddedPincodeRe.FindString(s) }

// SplitPincodes normalizes a comma separated pincode list into unique
// valid 6-digit codes, preserving order.
func SplitPincodes(raw string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		pin := strings.TrimSpace(part)
		if !ValidPincode(pin) {
			continue
		}
		if _, ok := seen[pin]; ok {
			continue
		}
		seen[pin] = struct{}{}
		out = append(out, pin)
	}
	return out
}
