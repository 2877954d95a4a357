// Package locale selects the overlay's user-visible strings from the page
// direction flag.
package locale

import (
	"fmt"
	"strings"
)

// Direction is the page text direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ParseDirection accepts "ltr" or "rtl" in any case; empty means LTR.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", LTR:
		return LTR, nil
	case RTL:
		return RTL, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be ltr or rtl", s)
	}
}

// Catalog holds the strings shown by the overlay's own panels.
type Catalog struct {
	Dir        Direction
	Loading    string
	ErrorTitle string
	Retry      string
}

var catalogs = map[Direction]Catalog{
	LTR: {Dir: LTR, Loading: "Loading...", ErrorTitle: "Loading Error", Retry: "Try Again"},
	RTL: {Dir: RTL, Loading: "جاري التحميل...", ErrorTitle: "خطأ في التحميل", Retry: "حاول مرة أخرى"},
}

// For returns the catalog for dir, falling back to LTR.
func For(dir Direction) Catalog {
	if c, ok := catalogs[dir]; ok {
		return c
	}
	return catalogs[LTR]
}
