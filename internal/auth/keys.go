// Package auth resolves presented credentials against the configured key set
// and derives the tenant identity that scopes private notes.
package auth

import (
	"crypto/subtle"
	"strings"
)

// fullWidthComma is accepted as a list delimiter alongside ','.
const fullWidthComma = "，"

// Keys is the normalized, de-duplicated set of valid credentials.
// The zero value is an empty set and authorizes nothing.
type Keys struct {
	entries []string
}

// ParseKeys builds a key set from a single legacy value and a comma-separated
// list. Both may be empty. Entries are trimmed and blanks are dropped.
func ParseKeys(legacy, list string) Keys {
	seen := make(map[string]struct{})
	var out []string

	add := func(k string) {
		k = strings.TrimSpace(k)
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	add(legacy)
	for _, k := range strings.Split(strings.ReplaceAll(list, fullWidthComma, ","), ",") {
		add(k)
	}

	return Keys{entries: out}
}

// Len returns the number of distinct keys.
func (k Keys) Len() int {
	return len(k.entries)
}

// BearerPrefixed counts keys that start with the "Bearer " scheme. The scheme
// is stripped from presented credentials, so a plain "Authorization: <key>"
// header never matches such a key.
func (k Keys) BearerPrefixed() int {
	n := 0
	for _, e := range k.entries {
		if hasBearerPrefix(e) {
			n++
		}
	}
	return n
}

// Contains reports whether candidate exactly matches a key. All keys are
// compared so the running time does not depend on where a match sits.
func (k Keys) Contains(candidate string) bool {
	c := []byte(candidate)
	found := 0
	for _, e := range k.entries {
		found |= subtle.ConstantTimeCompare([]byte(e), c)
	}
	return found == 1
}
