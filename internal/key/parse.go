// Package key turns noun store keys such as "2nd Person" into a base key
// and a zero-based index.
package key

import (
	"regexp"
	"strconv"
	"strings"
)

// ordinalPrefix matches "<digits><suffix><one whitespace><rest>". RE2's \s
// leaves out vertical tab, so it is listed explicitly.
var ordinalPrefix = regexp.MustCompile(`(?s)^([0-9]+)(st|nd|rd|th)[\s\v](.*)$`)

// KeyParser is satisfied by Parser and by anything that wants to stand in
// for it (tests, instrumented wrappers).
type KeyParser interface {
	Parse(rawKey string, index *int) (string, int, error)
}

// Parser decomposes raw keys. The zero value accepts any of the four
// suffixes after any number.
type Parser struct {
	// StrictSuffix requires the suffix to agree with the number, so "1th"
	// and "2st" are not recognised as ordinals.
	StrictSuffix bool
}

// Parse splits rawKey into its base key and index using the zero Parser.
func Parse(rawKey string, index *int) (string, int, error) {
	return Parser{}.Parse(rawKey, index)
}

// Parse splits rawKey into its base key and zero-based index.
//
// An ordinal prefix ("478th Thing") yields index N-1. index, when not nil,
// must agree with the prefix or a *MismatchError is returned. Without a
// prefix the key is returned unchanged with index, or 0. Only the leading
// ordinal is stripped: "1st 2nd Thing" yields ("2nd Thing", 0).
func (p Parser) Parse(rawKey string, index *int) (string, int, error) {
	if index != nil && *index < 0 {
		return "", 0, ErrNegativeIndex
	}

	baseKey, nth, ok := p.splitOrdinal(rawKey)
	if !ok {
		if index != nil {
			return rawKey, *index, nil
		}
		return rawKey, 0, nil
	}

	if index != nil && *index != nth {
		return "", 0, &MismatchError{Key: rawKey, Index: *index, Ordinal: nth}
	}
	return baseKey, nth, nil
}

// splitOrdinal returns the base key and zero-based index encoded by a
// leading ordinal. ok is false when rawKey has no usable prefix.
func (p Parser) splitOrdinal(rawKey string) (baseKey string, nth int, ok bool) {
	m := ordinalPrefix.FindStringSubmatch(rawKey)
	if m == nil {
		return "", 0, false
	}
	digits, suffix, rest := m[1], m[2], m[3]

	if strings.TrimSpace(rest) == "" {
		return "", 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return "", 0, false
	}

	if p.StrictSuffix && strconv.Itoa(n)+suffix != Ordinal(n) {
		return "", 0, false
	}

	return rest, n - 1, true
}
