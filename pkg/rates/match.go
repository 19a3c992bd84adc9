package rates

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxEditDistance is the Levenshtein threshold for the similar matcher.
const maxEditDistance = 2

// Matcher is one postcode matching strategy. Match returns the first
// candidate it accepts, or nil.
type Matcher struct {
	Kind  MatchKind
	Match func(postcode string, candidates []RegionCandidate) *RegionCandidate
}

// DefaultMatchChain returns the matching strategies in precedence order:
// exact string equality, integer equality (formatting and leading zeros),
// fuzzy similarity, then the first candidate carrying any id at all.
func DefaultMatchChain() []Matcher {
	return []Matcher{
		{Kind: MatchExact, Match: matchExact},
		{Kind: MatchNumeric, Match: matchNumeric},
		{Kind: MatchSimilar, Match: matchSimilar},
		{Kind: MatchFallback, Match: matchFirstAvailable},
	}
}

// MatchRegion evaluates the chain in order and returns the first hit.
func MatchRegion(postcode string, candidates []RegionCandidate, chain []Matcher) (RegionMatch, bool) {
	for _, m := range chain {
		if c := m.Match(postcode, candidates); c != nil {
			return RegionMatch{RegionID: c.ID, Name: c.Name, Kind: m.Kind}, true
		}
	}
	return RegionMatch{}, false
}

func matchExact(postcode string, candidates []RegionCandidate) *RegionCandidate {
	for i, c := range candidates {
		if c.ID != "" && c.PostCode == postcode {
			return &candidates[i]
		}
	}
	return nil
}

func matchNumeric(postcode string, candidates []RegionCandidate) *RegionCandidate {
	want, err := strconv.Atoi(strings.TrimSpace(postcode))
	if err != nil {
		return nil
	}
	for i, c := range candidates {
		if c.ID == "" {
			continue
		}
		got, err := strconv.Atoi(strings.TrimSpace(c.PostCode))
		if err == nil && got == want {
			return &candidates[i]
		}
	}
	return nil
}

func matchSimilar(postcode string, candidates []RegionCandidate) *RegionCandidate {
	for i, c := range candidates {
		if c.ID == "" || c.PostCode == "" {
			continue
		}
		if strings.Contains(c.PostCode, postcode) || strings.Contains(postcode, c.PostCode) {
			return &candidates[i]
		}
		if levenshtein.ComputeDistance(c.PostCode, postcode) <= maxEditDistance {
			return &candidates[i]
		}
	}
	return nil
}

// matchFirstAvailable is the last resort: any candidate with an id.
func matchFirstAvailable(_ string, candidates []RegionCandidate) *RegionCandidate {
	for i, c := range candidates {
		if c.ID != "" {
			return &candidates[i]
		}
	}
	return nil
}
