package ratelimit

import (
	"net/http"
	"strings"
)

var healthTier = Tier{Name: "health"}

// MatchTier returns the tier of a request, or nil when the default limit applies.
// Exact paths win over prefixes, and longer prefixes over shorter ones.
func MatchTier(path, method string, tiers []Tier) *Tier {
	if path == "/health" && method == http.MethodGet {
		t := healthTier
		return &t
	}

	for i := range tiers {
		if tiers[i].Method == method && tiers[i].Path == path {
			return &tiers[i]
		}
	}

	var best *Tier
	for i := range tiers {
		t := &tiers[i]
		if t.Method != method || !strings.HasSuffix(t.Path, "/") || !strings.HasPrefix(path, t.Path) {
			continue
		}
		if best == nil || len(t.Path) > len(best.Path) {
			best = t
		}
	}
	return best
}
