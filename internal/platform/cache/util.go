package cache

import "net/url"

// safe escapes a logical key for use inside a Redis key. The mapping is injective, so distinct
// keys never share an entry, and it leaves no glob metacharacters for SCAN MATCH.
// It escapes rune by rune, so safe(prefix) is always a prefix of safe(prefix+rest).
func safe(s string) string {
	return url.QueryEscape(s)
}
