package domain

import (
	"math/rand"
	"sort"
)

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal distributes HandSize cards to each player round-robin, one card at a
// time: player i receives the cards at shuffled positions i, i+n, i+2n, ...
// The remainder of the deck is unused in this variant.
func Deal(deck []Card, playerCount int) [][]Card {
	hands := make([][]Card, playerCount)
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for round := 0; round < HandSize; round++ {
		for p := 0; p < playerCount; p++ {
			hands[p] = append(hands[p], deck[round*playerCount+p])
		}
	}
	return hands
}

// SortHand orders cards by descending rank, suit as tiebreak for stable output.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
}
