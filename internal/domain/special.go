package domain

import "fmt"

// SpecialCategory tags a whole-13-card pattern that bypasses lane arrangement
// and outranks any arranged hand. Higher values beat lower ones.
type SpecialCategory int32

const (
	SpecialNone SpecialCategory = iota
	SpecialThreeFlushes
	SpecialSixPairs
	SpecialAllSmall
	SpecialAllBig
	SpecialDragon
	SpecialRoyalDragon
)

var specialNames = map[SpecialCategory]string{
	SpecialNone:         "",
	SpecialThreeFlushes: "three_flushes",
	SpecialSixPairs:     "six_pairs",
	SpecialAllSmall:     "all_small",
	SpecialAllBig:       "all_big",
	SpecialDragon:       "dragon",
	SpecialRoyalDragon:  "royal_dragon",
}

func (s SpecialCategory) String() string {
	if name, ok := specialNames[s]; ok {
		return name
	}
	return fmt.Sprintf("special(%d)", int32(s))
}

// specialPredicate pairs a category with its detector. Checked strongest
// first; the first match wins.
type specialPredicate struct {
	category SpecialCategory
	matches  func([]Card) bool
}

var specialPredicates = []specialPredicate{
	{SpecialRoyalDragon, isRoyalDragon},
	{SpecialDragon, isDragon},
	{SpecialAllBig, isAllBig},
	{SpecialAllSmall, isAllSmall},
	{SpecialSixPairs, isSixPairs},
	{SpecialThreeFlushes, isThreeFlushes},
}

// DetectSpecial examines a full 13-card hand before arrangement. It panics on
// any other cardinality (caller bug).
func DetectSpecial(cards []Card) SpecialCategory {
	if len(cards) != HandSize {
		panic(fmt.Sprintf("domain: DetectSpecial called with %d cards, want %d", len(cards), HandSize))
	}
	for _, p := range specialPredicates {
		if p.matches(cards) {
			return p.category
		}
	}
	return SpecialNone
}

// isDragon: the 13 distinct ranks 2..A each appear exactly once, any suits.
func isDragon(cards []Card) bool {
	var seen [15]bool
	for _, c := range cards {
		if seen[c.Rank] {
			return false
		}
		seen[c.Rank] = true
	}
	return true
}

// isRoyalDragon: a dragon held entirely in one suit.
func isRoyalDragon(cards []Card) bool {
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return isDragon(cards)
}

// isAllBig: every card ranks 8 or above.
func isAllBig(cards []Card) bool {
	for _, c := range cards {
		if c.Rank < 8 {
			return false
		}
	}
	return true
}

// isAllSmall: every card ranks 8 or below.
func isAllSmall(cards []Card) bool {
	for _, c := range cards {
		if c.Rank > 8 {
			return false
		}
	}
	return true
}

// isSixPairs: six disjoint pairs can be drawn from the rank multiset. A triple
// contributes one pair, so both 6 pairs + singleton and 5 pairs + triple
// qualify.
func isSixPairs(cards []Card) bool {
	counts := make(map[int32]int, HandSize)
	for _, c := range cards {
		counts[c.Rank]++
	}
	pairs := 0
	for _, n := range counts {
		pairs += n / 2
	}
	return pairs == 6
}

// isThreeFlushes: the 13 cards partition into suit-homogeneous groups sized
// {3,5,5}. Every assignment of the three lane sizes to the four suits is
// tried, not just the "exactly three suits present" shape, so 2-suit (8+5)
// and 4-suit holdings are handled.
func isThreeFlushes(cards []Card) bool {
	var counts [4]int
	for _, c := range cards {
		counts[c.Suit]++
	}
	laneSizes := [3]int{FrontSize, MiddleSize, BackSize}
	for s0 := 0; s0 < 4; s0++ {
		for s1 := 0; s1 < 4; s1++ {
			for s2 := 0; s2 < 4; s2++ {
				var need [4]int
				need[s0] += laneSizes[0]
				need[s1] += laneSizes[1]
				need[s2] += laneSizes[2]
				fits := true
				for s := 0; s < 4; s++ {
					if need[s] > counts[s] {
						fits = false
						break
					}
				}
				if fits {
					return true
				}
			}
		}
	}
	return false
}
