// Package translator converts between external-dns's endpoint model and
// the router's device DNS records: TTL encoding, per-target record
// translation in both directions, and a record-map for apply-time lookup.
package translator

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	secondsPerWeek = 7 * 24 * 3600
	secondsPerDay  = 24 * 3600
	secondsPerHour = 3600
	secondsPerMin  = 60
)

// DefaultTTLSeconds is used when an endpoint specifies no TTL.
const DefaultTTLSeconds = secondsPerDay

// EncodeTTL renders seconds in the device's "WwDdHhMmSs" format, always
// emitting all five segments even when zero.
func EncodeTTL(seconds int64) string {
	w := seconds / secondsPerWeek
	seconds %= secondsPerWeek
	d := seconds / secondsPerDay
	seconds %= secondsPerDay
	h := seconds / secondsPerHour
	seconds %= secondsPerHour
	m := seconds / secondsPerMin
	s := seconds % secondsPerMin
	return fmt.Sprintf("%dw%dd%dh%dm%ds", w, d, h, m, s)
}

var ttlSegmentPattern = regexp.MustCompile(`(\d+)([wdhms])`)

// DecodeTTL parses the device's "WwDdHhMmSs" format, with each segment
// optional, back into seconds. An empty string decodes to zero.
func DecodeTTL(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	matches := ttlSegmentPattern.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return 0, fmt.Errorf("translator: malformed ttl %q", s)
	}
	var total int64
	for _, m := range matches {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("translator: malformed ttl %q: %w", s, err)
		}
		switch m[2] {
		case "w":
			total += n * secondsPerWeek
		case "d":
			total += n * secondsPerDay
		case "h":
			total += n * secondsPerHour
		case "m":
			total += n * secondsPerMin
		case "s":
			total += n
		}
	}
	return total, nil
}
