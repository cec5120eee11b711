package match

import "strings"

// Ratio is the classic sequence similarity ratio between two strings:
// twice the total number of matched characters divided by the combined
// length of both strings. Matched characters are counted by finding the
// longest contiguous matching block and recursing on the unmatched
// remainders to either side. Identical strings score 1, disjoint strings 0.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

// matchingChars sums the lengths of all matching blocks between a and b.
func matchingChars(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest contiguous run of runes common to a and b,
// returning its start in each string and its length. Ties resolve to the
// earliest occurrence in a, then in b.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	// runLen[j] is the length of the common run ending at a[i-1], b[j].
	runLen := make(map[int]int, len(b))
	for i := range a {
		next := make(map[int]int, len(b))
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		runLen = next
	}
	return bestA, bestB, bestSize
}

// missingChars measures how many characters of the expected title are not
// accounted for by the candidate title. Both titles are normalized and
// split on hyphens; each expected part is credited with its length scaled
// by the best Ratio it achieves against any candidate part. A candidate
// part may serve as the best match for several expected parts; that reuse
// is part of the scoring contract, not an optimal assignment problem.
//
// The result may be negative when part-wise credit exceeds the space-free
// character count; callers clamp the final confidence instead.
func missingChars(expected, candidate string) float64 {
	expNorm := Normalize(expected)
	candNorm := Normalize(candidate)

	totalExpected := len([]rune(strings.ReplaceAll(expNorm, " ", "")))
	if totalExpected == 0 {
		return 0
	}

	candParts := splitParts(candNorm)
	matching := 0.0
	for _, expPart := range splitParts(expNorm) {
		best := 0.0
		for _, candPart := range candParts {
			if r := Ratio(strings.ToLower(expPart), strings.ToLower(candPart)); r > best {
				best = r
			}
		}
		matching += float64(len([]rune(expPart))) * best
	}

	return float64(totalExpected) - matching
}
