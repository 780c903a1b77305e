package domain

// Lane sizes for an arranged hand.
const (
	FrontSize  = 3
	MiddleSize = 5
	BackSize   = 5
)

// Arrangement is a player's split of their 13 dealt cards into three lanes.
type Arrangement struct {
	Front  []Card
	Middle []Card
	Back   []Card
}

// HasLaneSizes reports whether the lanes are sized 3/5/5.
func (a Arrangement) HasLaneSizes() bool {
	return len(a.Front) == FrontSize && len(a.Middle) == MiddleSize && len(a.Back) == BackSize
}

// Cards returns all lane cards front-to-back.
func (a Arrangement) Cards() []Card {
	out := make([]Card, 0, FrontSize+MiddleSize+BackSize)
	out = append(out, a.Front...)
	out = append(out, a.Middle...)
	out = append(out, a.Back...)
	return out
}

// Ordered reports whether lane strength is non-decreasing front to back.
func (a Arrangement) Ordered() bool {
	front := Evaluate(a.Front)
	middle := Evaluate(a.Middle)
	back := Evaluate(a.Back)
	return Compare(middle, front) >= 0 && Compare(back, middle) >= 0
}

// CoversDealt reports whether submitted is exactly the dealt card set: same
// cards, no duplicates, no foreign cards. Identity lookup, never positional.
func CoversDealt(dealt, submitted []Card) bool {
	if len(dealt) != len(submitted) {
		return false
	}
	remaining := make(map[Card]int, len(dealt))
	for _, c := range dealt {
		remaining[c]++
	}
	for _, c := range submitted {
		if remaining[c] == 0 {
			return false
		}
		remaining[c]--
	}
	return true
}
