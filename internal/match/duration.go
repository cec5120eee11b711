package match

// Adjustment describes how a candidate's duration affects its confidence.
type Adjustment int

const (
	// AdjustNone leaves the confidence untouched.
	AdjustNone Adjustment = iota
	// AdjustPenalty subtracts the configured duration penalty from the base
	// confidence before similarity penalties are applied.
	AdjustPenalty
	// AdjustExclude forces the confidence to zero regardless of how well the
	// title matches.
	AdjustExclude
)

// DurationAdjust classifies a duration in seconds against the penalty and
// exclusion thresholds. Anything longer than excludeAfter is excluded,
// anything longer than penaltyAfter is penalized, the rest passes clean.
func DurationAdjust(seconds, penaltyAfter, excludeAfter int) Adjustment {
	switch {
	case seconds > excludeAfter:
		return AdjustExclude
	case seconds > penaltyAfter:
		return AdjustPenalty
	default:
		return AdjustNone
	}
}
