package selftest

// Tier is the level of help given back after a submission.
type Tier string

const (
	// TierConfirm is the short confirmation for a correct answer.
	TierConfirm Tier = "confirm"

	// TierEncourage is gentle encouragement to retry after the first miss.
	TierEncourage Tier = "encourage"

	// TierHint adds a hint derived from the explanation after the second miss.
	TierHint Tier = "hint"

	// TierReveal is the full explanation with the correct answer, given from
	// the third miss on.
	TierReveal Tier = "reveal"
)

// Escalation is the feedback decision for one submission.
type Escalation struct {
	// Tier is the feedback level to present.
	Tier Tier

	// RevealAnswer is true when the correct answer should be shown.
	RevealAnswer bool

	// RetrySameQuestion is true when the learner must attempt the same
	// question again before advancing.
	RetrySameQuestion bool
}

// Escalate maps an attempt number and correctness to the feedback tier.
// attempt is the tracker's count AFTER counting the current submission,
// so the first submission is attempt 1; values below 1 are treated as 1.
// Pure function; all state lives in the AttemptTracker.
func Escalate(attempt int, correct bool) Escalation {
	if correct {
		return Escalation{Tier: TierConfirm}
	}
	if attempt < 1 {
		attempt = 1
	}
	switch attempt {
	case 1:
		return Escalation{Tier: TierEncourage, RetrySameQuestion: true}
	case 2:
		return Escalation{Tier: TierHint, RetrySameQuestion: true}
	default:
		return Escalation{Tier: TierReveal, RevealAnswer: true}
	}
}
