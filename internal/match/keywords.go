package match

import "strings"

// DefaultDenylist returns the keywords that disqualify a candidate title
// outright: alternate versions, spoken-word content and scene-specific
// noise that never is the studio track being asked for.
func DefaultDenylist() []string {
	return []string{
		"review", "rework", "podcast", "interview", "live", "cover",
		"neuro", "evil", "neurofunk", "neurohop", "neurobass", "neurodub",
		"remix", "bootleg", "bootlegged", "bootleggers", "mashup", "edit",
		"flip", "flipped", "flipz", "flipzter",
	}
}

// Excluded reports whether the raw candidate title contains any denylisted
// term, case-insensitively. A single hit excludes the candidate; exclusion
// overrides every other scoring signal.
func Excluded(title string, denylist []string) bool {
	lower := strings.ToLower(title)
	for _, keyword := range denylist {
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
