package utils

import (
	"net/url"
	"strconv"
)

// QueryInt parses an integer query parameter, falling back to def when
// missing or malformed.
func QueryInt(q url.Values, key string, def int) int {
	v := q.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
