package bot

import (
	"sort"

	"shisanshui/internal/domain"
)

// BestArrangement searches a 13-card hand for the strongest legal lane split:
// back lanes are tried strongest first, then the strongest middle whose
// leftover front keeps the arrangement legal. The search is exhaustive over
// the C(13,5)*C(8,5) splits, so it finds a legal arrangement whenever one
// exists.
func BestArrangement(hand []domain.Card) (domain.Arrangement, bool) {
	if len(hand) != domain.HandSize {
		return domain.Arrangement{}, false
	}

	for _, back := range rankedSubsets(hand) {
		rest := withoutIndexes(hand, back.indexes)
		// Once the search has moved past the strongest back candidate, the
		// rest can still contain a stronger 5-subset, so the back lane must be
		// re-checked against every middle.
		for _, middle := range rankedSubsets(rest) {
			if domain.Compare(back.eval, middle.eval) < 0 {
				continue
			}
			front := withoutIndexes(rest, middle.indexes)
			if domain.Compare(middle.eval, domain.Evaluate(front)) >= 0 {
				return domain.Arrangement{
					Front:  front,
					Middle: pickIndexes(rest, middle.indexes),
					Back:   pickIndexes(hand, back.indexes),
				}, true
			}
		}
	}

	return domain.Arrangement{}, false
}

type ratedSubset struct {
	indexes [5]int
	eval    domain.Evaluation
}

// rankedSubsets evaluates every 5-card subset of cards and returns them
// strongest first.
func rankedSubsets(cards []domain.Card) []ratedSubset {
	n := len(cards)
	out := make([]ratedSubset, 0, 1287)
	var pick [5]int
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			out = append(out, ratedSubset{
				indexes: pick,
				eval:    domain.Evaluate(pickIndexes(cards, pick)),
			})
			return
		}
		for i := start; i <= n-(5-depth); i++ {
			pick[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)

	sort.Slice(out, func(i, j int) bool {
		return domain.Compare(out[i].eval, out[j].eval) > 0
	})
	return out
}

func pickIndexes(cards []domain.Card, indexes [5]int) []domain.Card {
	out := make([]domain.Card, 0, 5)
	for _, i := range indexes {
		out = append(out, cards[i])
	}
	return out
}

func withoutIndexes(cards []domain.Card, indexes [5]int) []domain.Card {
	skip := make(map[int]bool, 5)
	for _, i := range indexes {
		skip[i] = true
	}
	out := make([]domain.Card, 0, len(cards)-5)
	for i, c := range cards {
		if !skip[i] {
			out = append(out, c)
		}
	}
	return out
}
