// Package daily picks the same target word for everyone on a given UTC day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Pick returns the day's word from candidates. The list is sorted first so
// the result does not depend on the order the word source returned it in.
func Pick(candidates []string, date time.Time, salt string) string {
	if len(candidates) == 0 {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	return sorted[WordIndex(date, salt, len(sorted))]
}

// Picker returns a pick function bound to the current day, suitable for
// play.Deps.Pick.
func Picker(salt string, now func() time.Time) func([]string) string {
	if now == nil {
		now = time.Now
	}
	return func(candidates []string) string { return Pick(candidates, now(), salt) }
}
