package holiday

import (
	"context"
	"strings"
	"time"
)

// Kind is a single observance classification
type Kind uint8

const (
	KindYomTov Kind = 1 << iota
	KindModern
	KindErev
	KindCholHamoed
	KindMinor
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindYomTov, "yomtov"},
	{KindModern, "modern"},
	{KindErev, "erev"},
	{KindCholHamoed, "cholhamoed"},
	{KindMinor, "minor"},
}

// Kinds is a set of observance kinds
type Kinds uint8

// NewKinds builds a set from kinds
func NewKinds(kinds ...Kind) Kinds {
	var k Kinds
	for _, kind := range kinds {
		k |= Kinds(kind)
	}
	return k
}

// Has reports whether the set contains kind
func (k Kinds) Has(kind Kind) bool {
	return k&Kinds(kind) != 0
}

// HasAny reports whether the set contains any of kinds
func (k Kinds) HasAny(kinds ...Kind) bool {
	for _, kind := range kinds {
		if k.Has(kind) {
			return true
		}
	}
	return false
}

func (k Kinds) String() string {
	var names []string
	for _, kn := range kindNames {
		if k.Has(kn.kind) {
			names = append(names, kn.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseKind parses a kind name
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, kn := range kindNames {
		if kn.name == s {
			return kn.kind, true
		}
	}
	return 0, false
}

// Observance is a dated entry produced by a holiday data source
type Observance struct {
	Date      time.Time
	Name      string // canonical English name, used for matching
	LocalName string // localized display name
	Kinds     Kinds
}

// Source provides the observances of a Gregorian year for the Israeli
// calendar
type Source interface {
	Observances(ctx context.Context, year int) ([]Observance, error)
}
