package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Outcome is the terminal state of the interactive selection step.
type Outcome int

const (
	// OutcomeNoResults signals that the ranking was empty: no adequate match.
	OutcomeNoResults Outcome = iota
	// OutcomeSelected signals that a candidate was accepted.
	OutcomeSelected
	// OutcomeCancelled signals that the user backed out.
	OutcomeCancelled
)

// Resolution is the result of resolving a ranking: the outcome, the
// accepted candidate when there is one, and whether it was accepted
// automatically.
type Resolution struct {
	Outcome  Outcome
	Selected *Candidate
	Auto     bool
}

// Resolver decides which ranked candidate to accept. A top candidate at or
// above the auto-accept threshold is taken without asking; otherwise the
// user picks from a capped list and confirms the pick.
type Resolver struct {
	console     Console
	logger      *zap.Logger
	autoAccept  int
	displayCap  int
	cancelToken string
}

// NewResolver creates a resolver driving the given console.
func NewResolver(cfg *Config, console Console, logger *zap.Logger) *Resolver {
	return &Resolver{
		console:    console,
		logger:     logger,
		autoAccept: cfg.App.AutoAcceptThreshold,
		displayCap: cfg.App.DisplayCap,
		// Answers are lowercased before comparison, so the token must be too.
		cancelToken: strings.ToLower(cfg.App.CancelToken),
	}
}

// Resolve walks the decision states for a ranked candidate list. Invalid
// interactive input re-prompts; the only ways out of the choice loop are a
// valid index or the cancel token. A console read error (EOF, context
// cancellation) resolves to Cancelled.
func (r *Resolver) Resolve(ctx context.Context, candidates []Candidate) Resolution {
	if len(candidates) == 0 {
		return Resolution{Outcome: OutcomeNoResults}
	}

	top := candidates[0]
	if top.Confidence >= r.autoAccept {
		r.logger.Info("Auto-accepting top candidate",
			zap.String("title", top.Title),
			zap.Int("confidence", top.Confidence))
		return Resolution{Outcome: OutcomeSelected, Selected: &top, Auto: true}
	}

	shown := candidates
	if len(shown) > r.displayCap {
		shown = shown[:r.displayCap]
	}

	r.console.Say("No confident match found. Available options:")
	for i, c := range shown {
		r.console.Say(fmt.Sprintf("%d. [%d%%] %s (%s)", i+1, c.Confidence, c.Title, FormatDuration(c.Duration)))
	}

	selected, ok := r.awaitChoice(ctx, shown)
	if !ok {
		return Resolution{Outcome: OutcomeCancelled}
	}
	if !r.awaitConfirm(ctx, selected) {
		r.console.Say("Search cancelled.")
		return Resolution{Outcome: OutcomeCancelled}
	}
	return Resolution{Outcome: OutcomeSelected, Selected: selected}
}

// awaitChoice prompts until the user enters a valid 1-based index or the
// cancel token.
func (r *Resolver) awaitChoice(ctx context.Context, shown []Candidate) (*Candidate, bool) {
	prompt := fmt.Sprintf("Select a number (or %q to cancel): ", r.cancelToken)
	for {
		answer, err := r.console.Prompt(ctx, prompt)
		if err != nil {
			r.logger.Debug("Choice prompt aborted", zap.Error(err))
			return nil, false
		}

		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == r.cancelToken {
			return nil, false
		}

		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(shown) {
			r.console.Say(fmt.Sprintf("Please enter a number between 1 and %d, or %q to cancel.", len(shown), r.cancelToken))
			continue
		}
		return &shown[idx-1], true
	}
}

// awaitConfirm shows the selection and asks for a yes/no answer. Anything
// that is not a yes cancels; it does not return to the choice list.
func (r *Resolver) awaitConfirm(ctx context.Context, selected *Candidate) bool {
	r.console.Say("=== Selected track ===")
	r.console.Say("Title:      " + selected.Title)
	r.console.Say("Duration:   " + FormatDuration(selected.Duration))
	r.console.Say(fmt.Sprintf("Confidence: %d%%", selected.Confidence))

	answer, err := r.console.Prompt(ctx, "Download this track? (y/n): ")
	if err != nil {
		r.logger.Debug("Confirm prompt aborted", zap.Error(err))
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
