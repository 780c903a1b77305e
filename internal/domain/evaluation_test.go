package domain

import (
	"reflect"
	"testing"
)

func TestEvaluateRoyalStraightFlush(t *testing.T) {
	cards := []Card{
		{Suit: SuitSpades, Rank: 10},
		{Suit: SuitSpades, Rank: RankJack},
		{Suit: SuitSpades, Rank: RankQueen},
		{Suit: SuitSpades, Rank: RankKing},
		{Suit: SuitSpades, Rank: RankAce},
	}
	eval := Evaluate(cards)
	if eval.Category != StraightFlush {
		t.Fatalf("category = %v, want straight_flush", eval.Category)
	}
	if eval.Primary != RankAce {
		t.Fatalf("primary = %d, want 14", eval.Primary)
	}
}

func TestEvaluateWheelStraight(t *testing.T) {
	cards := []Card{
		{Suit: SuitHearts, Rank: 2},
		{Suit: SuitDiamonds, Rank: 3},
		{Suit: SuitClubs, Rank: 4},
		{Suit: SuitSpades, Rank: 5},
		{Suit: SuitClubs, Rank: RankAce},
	}
	eval := Evaluate(cards)
	if eval.Category != Straight {
		t.Fatalf("category = %v, want straight", eval.Category)
	}
	if eval.Primary != 5 {
		t.Fatalf("primary = %d, want 5 (ace plays low)", eval.Primary)
	}
	if !reflect.DeepEqual(eval.Kickers, []int32{5, 4, 3, 2, 1}) {
		t.Fatalf("kickers = %v, want [5 4 3 2 1]", eval.Kickers)
	}
	// The remap must not leak into the cards themselves.
	if cards[4].Rank != RankAce {
		t.Fatalf("ace card mutated to rank %d", cards[4].Rank)
	}
}

func TestEvaluateFourOfAKind(t *testing.T) {
	cards := []Card{
		{Suit: SuitSpades, Rank: RankAce},
		{Suit: SuitHearts, Rank: RankAce},
		{Suit: SuitDiamonds, Rank: RankAce},
		{Suit: SuitClubs, Rank: RankAce},
		{Suit: SuitSpades, Rank: RankKing},
	}
	eval := Evaluate(cards)
	if eval.Category != FourOfAKind {
		t.Fatalf("category = %v, want four_of_a_kind", eval.Category)
	}
	if eval.Primary != RankAce || eval.Secondary != RankKing {
		t.Fatalf("primary/secondary = %d/%d, want 14/13", eval.Primary, eval.Secondary)
	}
}

func TestEvaluateFullHouse(t *testing.T) {
	cards := []Card{
		{Suit: SuitSpades, Rank: 9},
		{Suit: SuitHearts, Rank: 9},
		{Suit: SuitDiamonds, Rank: 9},
		{Suit: SuitClubs, Rank: 4},
		{Suit: SuitSpades, Rank: 4},
	}
	eval := Evaluate(cards)
	if eval.Category != FullHouse {
		t.Fatalf("category = %v, want full_house", eval.Category)
	}
	if eval.Primary != 9 || eval.Secondary != 4 {
		t.Fatalf("primary/secondary = %d/%d, want 9/4", eval.Primary, eval.Secondary)
	}
}

func TestEvaluateTwoPair(t *testing.T) {
	cards := []Card{
		{Suit: SuitSpades, Rank: RankJack},
		{Suit: SuitHearts, Rank: RankJack},
		{Suit: SuitDiamonds, Rank: 6},
		{Suit: SuitClubs, Rank: 6},
		{Suit: SuitSpades, Rank: RankQueen},
	}
	eval := Evaluate(cards)
	if eval.Category != TwoPair {
		t.Fatalf("category = %v, want two_pair", eval.Category)
	}
	if eval.Primary != RankJack || eval.Secondary != 6 || eval.Tertiary != RankQueen {
		t.Fatalf("groups = %d/%d/%d, want 11/6/12", eval.Primary, eval.Secondary, eval.Tertiary)
	}
}

func TestEvaluateThreeCardHands(t *testing.T) {
	tests := []struct {
		name        string
		cards       []Card
		wantType    Category
		wantPrimary int32
	}{
		{
			name: "Trips",
			cards: []Card{
				{Suit: SuitSpades, Rank: 7},
				{Suit: SuitHearts, Rank: 7},
				{Suit: SuitDiamonds, Rank: 7},
			},
			wantType:    ThreeOfAKind,
			wantPrimary: 7,
		},
		{
			name: "Pair",
			cards: []Card{
				{Suit: SuitSpades, Rank: 2},
				{Suit: SuitHearts, Rank: 2},
				{Suit: SuitDiamonds, Rank: 9},
			},
			wantType:    Pair,
			wantPrimary: 2,
		},
		{
			name: "HighCard",
			cards: []Card{
				{Suit: SuitSpades, Rank: RankAce},
				{Suit: SuitHearts, Rank: 9},
				{Suit: SuitDiamonds, Rank: 4},
			},
			wantType:    HighCard,
			wantPrimary: RankAce,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eval := Evaluate(tc.cards)
			if eval.Category != tc.wantType {
				t.Fatalf("category = %v, want %v", eval.Category, tc.wantType)
			}
			if eval.Primary != tc.wantPrimary {
				t.Fatalf("primary = %d, want %d", eval.Primary, tc.wantPrimary)
			}
		})
	}
}

func TestEvaluateNoThreeCardStraightOrFlush(t *testing.T) {
	// 3-card lanes never rank as straights or flushes in this variant.
	cards := []Card{
		{Suit: SuitSpades, Rank: 5},
		{Suit: SuitSpades, Rank: 6},
		{Suit: SuitSpades, Rank: 7},
	}
	eval := Evaluate(cards)
	if eval.Category != HighCard {
		t.Fatalf("category = %v, want high_card", eval.Category)
	}
}

func TestEvaluatePanicsOnBadCardinality(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for 4-card input")
		}
	}()
	Evaluate([]Card{{}, {}, {}, {}})
}
