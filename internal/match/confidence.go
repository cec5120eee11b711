package match

import "math"

// Default scoring constants. They are heuristics tuned against real search
// results, exposed through Config rather than hardcoded.
const (
	DefaultAutoAcceptThreshold = 70
	DefaultDurationCeilingSecs = 600
	DefaultDurationPenaltySecs = 300
	DefaultDurationPenalty     = 50
	DefaultCharPenalty         = 10
)

// Config carries the tunable constants of the scoring pipeline.
type Config struct {
	// Denylist holds keywords that exclude a candidate outright.
	Denylist []string
	// DurationCeilingSecs is the hard cutoff; longer candidates score zero.
	DurationCeilingSecs int
	// DurationPenaltySecs is the soft cutoff; longer candidates lose
	// DurationPenalty points.
	DurationPenaltySecs int
	// DurationPenalty is subtracted from the base confidence for candidates
	// over the soft cutoff.
	DurationPenalty int
	// CharPenalty is subtracted per expected character the candidate title
	// fails to account for.
	CharPenalty int
}

// DefaultConfig returns the scoring configuration with the stock denylist
// and thresholds.
func DefaultConfig() Config {
	return Config{
		Denylist:            DefaultDenylist(),
		DurationCeilingSecs: DefaultDurationCeilingSecs,
		DurationPenaltySecs: DefaultDurationPenaltySecs,
		DurationPenalty:     DefaultDurationPenalty,
		CharPenalty:         DefaultCharPenalty,
	}
}

// Confidence combines the keyword, duration and similarity signals for one
// candidate into a single score in [0, 100]. Keyword hits and durations
// over the hard ceiling short-circuit to zero. Otherwise the score starts
// at 100, loses the duration penalty when applicable, then loses CharPenalty
// points per missing character; both penalties apply to the same base and
// the result is clamped once at the end.
func Confidence(cfg Config, expectedTitle, candidateTitle string, durationSeconds int) int {
	if Excluded(candidateTitle, cfg.Denylist) {
		return 0
	}

	confidence := 100.0
	switch DurationAdjust(durationSeconds, cfg.DurationPenaltySecs, cfg.DurationCeilingSecs) {
	case AdjustExclude:
		return 0
	case AdjustPenalty:
		confidence -= float64(cfg.DurationPenalty)
	}

	confidence -= missingChars(expectedTitle, candidateTitle) * float64(cfg.CharPenalty)
	return clampScore(confidence)
}

// Similarity scores the candidate title against the expected title on
// character-match fidelity alone, without keyword or duration signals.
func Similarity(cfg Config, expectedTitle, candidateTitle string) int {
	return clampScore(100 - missingChars(expectedTitle, candidateTitle)*float64(cfg.CharPenalty))
}

func clampScore(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}
	return int(math.Round(v))
}
