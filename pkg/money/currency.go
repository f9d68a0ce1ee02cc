package money

import (
	"fmt"
	"sort"
)

// Currency describes a currency as published by the rate service.
type Currency struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	SymbolNative  string  `json:"symbol_native"`
	DecimalDigits int     `json:"decimal_digits"`
	Rounding      float64 `json:"rounding"`
	Code          Code    `json:"code"`
	NamePlural    string  `json:"name_plural"`
}

// Directory maps every code a source currency can be exchanged against to its metadata.
type Directory map[Code]Currency

// Has reports whether code is a known currency.
func (d Directory) Has(code Code) bool {
	_, ok := d[code]
	return ok
}

// Unknown returns the codes not present in d, deduplicated and in input order.
func (d Directory) Unknown(codes []Code) []Code {
	var out []Code
	for _, c := range Dedupe(codes) {
		if !d.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Codes returns all codes in lexical order.
func (d Directory) Codes() []Code {
	out := make([]Code, 0, len(d))
	for c := range d {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks that each record's own code matches its key and
// that precision fields are non-negative.
func (d Directory) Validate() error {
	for key, cur := range d {
		if cur.Code != key {
			return fmt.Errorf("%w: %q stored under %q", ErrCodeMismatch, cur.Code, key)
		}
		if cur.DecimalDigits < 0 {
			return fmt.Errorf("currency %s: negative decimal_digits %d", key, cur.DecimalDigits)
		}
	}
	return nil
}
