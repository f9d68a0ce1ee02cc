package money

import (
	"fmt"
	"math"
	"sort"
)

// RateMap maps a target currency to its rate relative to one implicit base currency.
type RateMap map[Code]float64

// Has reports whether a rate for code is present.
func (r RateMap) Has(code Code) bool {
	_, ok := r[code]
	return ok
}

// Rate returns the rate for code.
func (r RateMap) Rate(code Code) (float64, bool) {
	rate, ok := r[code]
	return rate, ok
}

// Missing returns the targets that have no rate in r, deduplicated and in request order.
func (r RateMap) Missing(targets []Code) []Code {
	var out []Code
	for _, c := range Dedupe(targets) {
		if !r.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Merge returns a new map holding every entry of r plus the entries of delta
// whose code is not already in r. Existing entries are never overwritten, so
// merging the same delta twice yields the same map.
func (r RateMap) Merge(delta RateMap) RateMap {
	out := make(RateMap, len(r)+len(delta))
	for c, rate := range r {
		out[c] = rate
	}
	for c, rate := range delta {
		if _, ok := out[c]; ok {
			continue
		}
		out[c] = rate
	}
	return out
}

// Codes returns the codes in r in lexical order.
func (r RateMap) Codes() []Code {
	out := make([]Code, 0, len(r))
	for c := range r {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate rejects zero, negative and non-finite rates.
func (r RateMap) Validate() error {
	for c, rate := range r {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidRate, c, rate)
		}
	}
	return nil
}
