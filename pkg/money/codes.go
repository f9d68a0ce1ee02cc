package money

import "strings"

// Code represents a currency code (e.g., "USD", "EUR").
// Codes are opaque keys; validity is decided by a Directory, not by the code itself.
type Code string

// Common currency codes
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	PLN Code = "PLN" // Polish Zloty
	GBP Code = "GBP" // British Pound
	JPY Code = "JPY" // Japanese Yen
)

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// NormalizeCode trims and uppercases a user supplied code.
func NormalizeCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// ParseCodes splits a comma separated list into unique, normalized codes.
// Order of first appearance is preserved and empty items are dropped.
func ParseCodes(list string) []Code {
	return Dedupe(splitCodes(list))
}

func splitCodes(list string) []Code {
	parts := strings.Split(list, ",")
	out := make([]Code, 0, len(parts))
	for _, p := range parts {
		if c := NormalizeCode(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Dedupe returns codes with duplicates removed, keeping the first occurrence.
func Dedupe(codes []Code) []Code {
	seen := make(map[Code]struct{}, len(codes))
	out := make([]Code, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Join renders codes the way the remote API expects them: "EUR,PLN".
func Join(codes []Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
