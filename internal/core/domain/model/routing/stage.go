package routing

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Stage represents a step of the split/tag decision procedure.
// It implements a state machine with declared transitions so the abort
// semantics of each step are stated once, in one place, instead of being
// duplicated across branches of the decision tree.
//
// Stage transitions:
//
//	ClassifyDone ──┬──> SplitHomeLength ──┬──> SplitExternalCombined ──> Done
//	               │                      └──> Done
//	               ├──> SplitExternalCombined ──> Done
//	               ├──> SplitExternalNonLength ──> Done
//	               └──> Done
//
//	every non-terminal stage may also transition to Failed
//
// Done and Failed are terminal.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StageClassifyDone is the entry stage: the snapshot has been fetched and
	// classified, pre-step tagging has run, and a branch is about to be chosen.
	StageClassifyDone

	// StageSplitHomeLength splits length-at-home items together with
	// coupling-piece-at-home items into one sub-order.
	StageSplitHomeLength

	// StageSplitExternalCombined splits external length and non-length items,
	// grouped by destination location, one split per location.
	StageSplitExternalCombined

	// StageSplitExternalNonLength splits external non-length items by
	// destination location on the branch without any length items.
	StageSplitExternalNonLength

	// StageDone is the successful terminal stage.
	StageDone

	// StageFailed is the terminal stage after the first hard failure.
	// Splits and tags committed before the failure remain part of the result.
	StageFailed
)

// getStageStrings returns a map of Stage values to their string representations.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:                "Unknown",
		StageClassifyDone:           "ClassifyDone",
		StageSplitHomeLength:        "SplitHomeLength",
		StageSplitExternalCombined:  "SplitExternalCombined",
		StageSplitExternalNonLength: "SplitExternalNonLength",
		StageDone:                   "Done",
		StageFailed:                 "Failed",
	}
}

// getStageTransitions declares the allowed transitions of the decision
// procedure. Failed is reachable from every non-terminal stage so that the
// first hard failure can always abort the run.
func getStageTransitions() map[Stage][]Stage {
	return map[Stage][]Stage{
		StageClassifyDone: {
			StageSplitHomeLength,
			StageSplitExternalCombined,
			StageSplitExternalNonLength,
			StageDone,
			StageFailed,
		},
		StageSplitHomeLength: {
			StageSplitExternalCombined,
			StageDone,
			StageFailed,
		},
		StageSplitExternalCombined: {
			StageDone,
			StageFailed,
		},
		StageSplitExternalNonLength: {
			StageDone,
			StageFailed,
		},
		StageDone:   {},
		StageFailed: {},
	}
}

// Validate checks if the Stage value is one of the named stages.
// StageUnknown and out-of-range values are invalid.
func (s Stage) Validate() error {
	if _, ok := getStageTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
// Implements fmt.Stringer and is safe on any Stage value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the stage ends the run.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// CanTransitionTo reports whether moving from the current stage to next is a
// declared transition.
func (s Stage) CanTransitionTo(next Stage) bool {
	for _, allowed := range getStageTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the state machine to the next stage.
//
// Returns:
//   - (next, nil) when the transition is declared
//   - (0, error) when the transition is not allowed from the current stage
func (s Stage) Transition(next Stage) (Stage, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause("stage transition is invalid",
			fmt.Errorf("%s cannot transition to %s", s, next))
	}

	return next, nil
}
