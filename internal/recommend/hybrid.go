// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

// Interleave merges collaborative and content lists into at most n ids:
// the first n/2 collaborative ids, then the content ids, keeping the first
// occurrence of each id.
func Interleave(cf, cb []string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	half := n / 2
	if half > len(cf) {
		half = len(cf)
	}

	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)

	add := func(ids []string) {
		for _, id := range ids {
			if len(out) == n {
				return
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	add(cf[:half])
	add(cb)
	return out
}

// MostRecent returns the interaction with the latest timestamp. Among equal
// timestamps the one appearing last in history wins.
func MostRecent(history []Interaction) (Interaction, bool) {
	if len(history) == 0 {
		return Interaction{}, false
	}

	best := history[0]
	for _, in := range history[1:] {
		if !in.Timestamp.Before(best.Timestamp) {
			best = in
		}
	}
	return best, true
}
