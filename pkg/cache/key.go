// Package cache defines how cached records are addressed and stored.
//
// A Key ties a record to a namespace, an optional scope (the source currency)
// and a time bucket. Records implicitly expire when wall-clock time moves into
// the next bucket: the new bucket yields a different Key and therefore a miss.
package cache

import (
	"fmt"
	"path"
	"time"
)

// Namespace separates the kinds of cached records.
type Namespace string

const (
	// NamespaceRates holds RateMap records, bucketed hourly.
	NamespaceRates Namespace = "rates"
	// NamespaceCurrencies holds currency Directory records, bucketed daily.
	NamespaceCurrencies Namespace = "currencies"
)

// Namespaces lists every namespace a store may hold.
func Namespaces() []Namespace {
	return []Namespace{NamespaceRates, NamespaceCurrencies}
}

// Granularity returns the bucket width for ns.
func (ns Namespace) Granularity() time.Duration {
	if ns == NamespaceRates {
		return time.Hour
	}
	return 24 * time.Hour
}

// bucket renders t as "HH00DDMMYYYY" for rates and "DDMMYYYY" otherwise.
func (ns Namespace) bucket(t time.Time) string {
	day := fmt.Sprintf("%02d%02d%04d", t.Day(), int(t.Month()), t.Year())
	if ns == NamespaceRates {
		return fmt.Sprintf("%02d00", t.Hour()) + day
	}
	return day
}

// Key identifies one time-scoped record.
type Key struct {
	Namespace Namespace
	Scope     string
	Bucket    string
	expiry    time.Time
}

// NewKey derives the key for (ns, scope) at instant now. It depends on nothing
// but its arguments: two instants in the same UTC bucket give equal keys.
func NewKey(ns Namespace, scope string, now time.Time) Key {
	utc := now.UTC()
	start := utc.Truncate(ns.Granularity())
	return Key{
		Namespace: ns,
		Scope:     scope,
		Bucket:    ns.bucket(utc),
		expiry:    start.Add(ns.Granularity()),
	}
}

// String renders the key as "namespace/scope/bucket".
func (k Key) String() string {
	if k.Scope == "" {
		return string(k.Namespace) + "/" + k.Bucket
	}
	return string(k.Namespace) + "/" + k.Scope + "/" + k.Bucket
}

// Path is the slash separated relative location of the record, e.g. "rates/USD140018102026.json".
func (k Key) Path() string {
	return path.Join(string(k.Namespace), k.Scope+k.Bucket+".json")
}

// Expiry is the instant the key's bucket closes.
func (k Key) Expiry() time.Time {
	return k.expiry
}

// Equal compares the identifying parts of two keys.
func (k Key) Equal(other Key) bool {
	return k.Namespace == other.Namespace && k.Scope == other.Scope && k.Bucket == other.Bucket
}
