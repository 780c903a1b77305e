package app

// PlayersPerMatch fixes match capacity. The engine coordinates exactly two
// connected players; a third connection attempt is rejected at admission.
const PlayersPerMatch = 2

// Settlement units. Normal rounds settle the net lane difference; the other
// outcomes use fixed stakes.
const (
	// SpecialHandUnits is the stake when a special hand decides the round.
	SpecialHandUnits = 3
	// WalkoverUnits is the stake when a round is won by default.
	WalkoverUnits = 1
)

// Round result reasons, echoed verbatim in the result broadcast.
const (
	ReasonLanes       = "lanes"
	ReasonSpecialHand = "special_hand"
	ReasonWalkover    = "walkover"
)
