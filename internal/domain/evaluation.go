package domain

import (
	"fmt"
	"sort"
)

// Category ranks the strength class of a 3- or 5-card grouping.
type Category int32

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = map[Category]string{
	HighCard:      "high_card",
	Pair:          "pair",
	TwoPair:       "two_pair",
	ThreeOfAKind:  "three_of_a_kind",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full_house",
	FourOfAKind:   "four_of_a_kind",
	StraightFlush: "straight_flush",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int32(c))
}

// Evaluation is the stateless strength descriptor of a single lane. Primary,
// Secondary and Tertiary hold the values of the multiplicity groups that
// define the category; Kickers always holds the tie-break sequence for
// categories decided card-by-card.
type Evaluation struct {
	Category  Category
	Primary   int32
	Secondary int32
	Tertiary  int32
	Kickers   []int32
}

// Evaluate classifies a 3- or 5-card grouping. Any other cardinality is a
// caller bug and panics.
func Evaluate(cards []Card) Evaluation {
	switch len(cards) {
	case 3:
		return evaluateThree(cards)
	case 5:
		return evaluateFive(cards)
	default:
		panic(fmt.Sprintf("domain: Evaluate called with %d cards, want 3 or 5", len(cards)))
	}
}

// rankGroup is a run of same-rank cards, used to pick the defining groups.
type rankGroup struct {
	rank  int32
	count int
}

// groupRanks returns rank groups ordered by count descending, rank descending.
func groupRanks(cards []Card) []rankGroup {
	counts := make(map[int32]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// descendingValues returns all card values sorted high to low.
func descendingValues(cards []Card) []int32 {
	values := make([]int32, len(cards))
	for i, c := range cards {
		values[i] = c.Rank
	}
	sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })
	return values
}

func evaluateThree(cards []Card) Evaluation {
	groups := groupRanks(cards)
	kickers := descendingValues(cards)

	switch groups[0].count {
	case 3:
		return Evaluation{Category: ThreeOfAKind, Primary: groups[0].rank, Kickers: kickers}
	case 2:
		// Pair ties break on kickers alone, same as the 5-card shape, so the
		// cross-size front/middle comparison stays symmetric.
		return Evaluation{Category: Pair, Primary: groups[0].rank, Kickers: kickers}
	default:
		return Evaluation{Category: HighCard, Primary: kickers[0], Kickers: kickers}
	}
}

func evaluateFive(cards []Card) Evaluation {
	groups := groupRanks(cards)
	kickers := descendingValues(cards)

	flush := true
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straight, straightHigh, straightKickers := straightShape(kickers)

	switch {
	case straight && flush:
		return Evaluation{Category: StraightFlush, Primary: straightHigh, Kickers: straightKickers}
	case groups[0].count == 4:
		return Evaluation{
			Category:  FourOfAKind,
			Primary:   groups[0].rank,
			Secondary: groups[1].rank,
			Kickers:   kickers,
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return Evaluation{
			Category:  FullHouse,
			Primary:   groups[0].rank,
			Secondary: groups[1].rank,
			Kickers:   kickers,
		}
	case flush:
		return Evaluation{Category: Flush, Primary: kickers[0], Kickers: kickers}
	case straight:
		return Evaluation{Category: Straight, Primary: straightHigh, Kickers: straightKickers}
	case groups[0].count == 3:
		return Evaluation{Category: ThreeOfAKind, Primary: groups[0].rank, Kickers: kickers}
	case groups[0].count == 2 && groups[1].count == 2:
		return Evaluation{
			Category:  TwoPair,
			Primary:   groups[0].rank,
			Secondary: groups[1].rank,
			Tertiary:  groups[2].rank,
			Kickers:   kickers,
		}
	case groups[0].count == 2:
		return Evaluation{Category: Pair, Primary: groups[0].rank, Kickers: kickers}
	default:
		return Evaluation{Category: HighCard, Primary: kickers[0], Kickers: kickers}
	}
}

// straightShape reports whether the descending values form five consecutive
// ranks. The wheel A-2-3-4-5 counts with the Ace demoted to 1: its high card
// is 5 and its tie-break kickers are remapped accordingly. The remap is local
// to the returned evaluation and never touches the original cards.
func straightShape(values []int32) (ok bool, high int32, kickers []int32) {
	if len(values) != 5 {
		return false, 0, nil
	}
	distinct := true
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			distinct = false
			break
		}
	}
	if !distinct {
		return false, 0, nil
	}

	if values[0]-values[4] == 4 {
		return true, values[0], values
	}

	// Wheel: A,5,4,3,2 descending.
	if values[0] == RankAce && values[1] == 5 && values[4] == RankTwo {
		return true, 5, []int32{5, 4, 3, 2, 1}
	}

	return false, 0, nil
}
