package domain

import "fmt"

// Suits, in deck order.
const (
	SuitSpades int32 = iota
	SuitHearts
	SuitDiamonds
	SuitClubs
)

// Named ranks. Ranks run 2..14 with Ace high.
const (
	RankTwo   int32 = 2
	RankJack  int32 = 11
	RankQueen int32 = 12
	RankKing  int32 = 13
	RankAce   int32 = 14
)

// HandSize is the number of cards dealt to each player.
const HandSize = 13

// Card is a single playing card. Cards are immutable values compared by
// (rank, suit) identity.
type Card struct {
	Suit int32
	Rank int32
}

var suitLetters = [4]string{"S", "H", "D", "C"}

// String renders a card as e.g. "AS" or "10H".
func (c Card) String() string {
	rank := ""
	switch c.Rank {
	case RankJack:
		rank = "J"
	case RankQueen:
		rank = "Q"
	case RankKing:
		rank = "K"
	case RankAce:
		rank = "A"
	default:
		rank = fmt.Sprintf("%d", c.Rank)
	}
	if c.Suit < 0 || c.Suit > 3 {
		return rank + "?"
	}
	return rank + suitLetters[c.Suit]
}

// NewDeck returns the 52 distinct cards in deterministic order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := SuitSpades; s <= SuitClubs; s++ {
		for r := RankTwo; r <= RankAce; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}
