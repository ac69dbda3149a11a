package streak

// Outcome classifies what a completion day did to the streak
type Outcome string

const (
	// OutcomeFirst is the first credit ever recorded
	OutcomeFirst Outcome = "first"

	// OutcomeSameDay means the day was already credited
	OutcomeSameDay Outcome = "same_day"

	// OutcomeConsecutive means the day directly follows the last credit
	OutcomeConsecutive Outcome = "consecutive"

	// OutcomeShielded means shields covered the missed days
	OutcomeShielded Outcome = "shielded"

	// OutcomeBroken means the gap was not covered and the streak restarted at one
	OutcomeBroken Outcome = "broken"

	// OutcomeIgnored means the day is earlier than the last credit (clock skew)
	OutcomeIgnored Outcome = "ignored"
)

// RepairStatus is the result of a repair attempt
type RepairStatus string

const (
	RepairStatusRepaired          RepairStatus = "repaired"
	RepairStatusNoOffer           RepairStatus = "no_offer"
	RepairStatusInsufficientFunds RepairStatus = "insufficient_funds"
)

// Gap sizes, in calendar days between the last credit and the new one
const (
	gapConsecutive = 1
	gapOneMissed   = 2
	gapTwoMissed   = 3
)
