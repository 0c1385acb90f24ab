package cache

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Key is an ordered sequence of identifiers forming a prefix tree over
// cached resource queries. Equal logical queries must always produce
// equal keys - that is what makes two requesters of the same data share
// one cached entry.
type Key []string

// String returns a human-readable form for logs
func (k Key) String() string {
	return strings.Join(k, "/")
}

// mapKey returns the internal map key. The separator cannot appear in
// URL query parameters, so distinct keys never collide.
func (k Key) mapKey() string {
	return strings.Join(k, "\x1f")
}

// HasPrefix reports whether k extends prefix (or equals it)
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}
	return true
}

// ListKey builds the key for a filtered list query:
// [kind, "list", canonical-params]. Empty params collapse to
// [kind, "list"] so that invalidating the list prefix reaches every
// filtered variant.
func ListKey(kind string, params map[string]string) Key {
	if len(params) == 0 {
		return Key{kind, "list"}
	}
	return Key{kind, "list", canonicalParams(params)}
}

// DetailKey builds the key for a single-entity query: [kind, "detail", id]
func DetailKey(kind string, id int64) Key {
	return Key{kind, "detail", strconv.FormatInt(id, 10)}
}

// canonicalParams renders params in stable sorted order so equal
// parameter sets always canonicalize identically. Keys and values are
// escaped so separator characters inside a value never collide with
// another parameter set.
func canonicalParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
