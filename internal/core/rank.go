package core

import "sort"

// Rank orders candidates by descending confidence and truncates the result
// to limit. The sort is stable, so tied candidates keep their input order.
// Candidates with zero confidence are hard-excluded and never emitted.
func Rank(candidates []Candidate, limit int) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Confidence > 0 {
			ranked = append(ranked, c)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
