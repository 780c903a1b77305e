package domain

import "testing"

func TestArrangementOrderedRejectsStrongFront(t *testing.T) {
	// Trips in front against a high-card middle is the classic foul.
	arr := Arrangement{
		Front: []Card{
			{SuitSpades, RankAce}, {SuitHearts, RankAce}, {SuitDiamonds, RankAce},
		},
		Middle: []Card{
			{SuitSpades, 2}, {SuitHearts, 3}, {SuitDiamonds, 4}, {SuitClubs, 5}, {SuitSpades, 7},
		},
		Back: []Card{
			{SuitSpades, 9}, {SuitHearts, 9}, {SuitDiamonds, 9}, {SuitClubs, 9}, {SuitSpades, 13},
		},
	}
	if arr.Ordered() {
		t.Fatalf("middle weaker than front must be a foul")
	}
}

func TestArrangementOrderedAcceptsIncreasingLanes(t *testing.T) {
	arr := Arrangement{
		Front: []Card{
			{SuitSpades, 2}, {SuitHearts, 5}, {SuitDiamonds, 8},
		},
		Middle: []Card{
			{SuitSpades, 10}, {SuitHearts, 10}, {SuitDiamonds, 3}, {SuitClubs, 6}, {SuitSpades, 4},
		},
		Back: []Card{
			{SuitClubs, 12}, {SuitHearts, 12}, {SuitDiamonds, 12}, {SuitClubs, 7}, {SuitSpades, 7},
		},
	}
	if !arr.Ordered() {
		t.Fatalf("non-decreasing lanes must be legal")
	}
}

func TestArrangementOrderedAcceptsEqualCategories(t *testing.T) {
	// Middle pair below back pair: equal category, ordered by kicker.
	arr := Arrangement{
		Front: []Card{
			{SuitSpades, 2}, {SuitHearts, 4}, {SuitDiamonds, 6},
		},
		Middle: []Card{
			{SuitSpades, 8}, {SuitHearts, 8}, {SuitDiamonds, 3}, {SuitClubs, 5}, {SuitSpades, 9},
		},
		Back: []Card{
			{SuitClubs, 11}, {SuitHearts, 11}, {SuitDiamonds, 4}, {SuitClubs, 6}, {SuitSpades, 10},
		},
	}
	if !arr.Ordered() {
		t.Fatalf("higher pair behind lower pair must be legal")
	}
}

func TestArrangementOrderedSameRankPairFrontAndMiddle(t *testing.T) {
	// All four nines split across front and middle: the middle pair carries
	// bigger kickers, so the arrangement is non-decreasing and legal.
	arr := Arrangement{
		Front: []Card{
			{SuitSpades, 9}, {SuitHearts, 9}, {SuitDiamonds, 3},
		},
		Middle: []Card{
			{SuitDiamonds, 9}, {SuitClubs, 9}, {SuitSpades, RankAce},
			{SuitHearts, RankKing}, {SuitClubs, RankQueen},
		},
		Back: []Card{
			{SuitSpades, RankJack}, {SuitHearts, RankJack},
			{SuitSpades, 10}, {SuitClubs, 8}, {SuitHearts, 7},
		},
	}
	if !arr.Ordered() {
		t.Fatalf("same-rank pairs with stronger middle kickers must be legal")
	}
}

func TestCoversDealt(t *testing.T) {
	dealt := []Card{
		{SuitSpades, 2}, {SuitHearts, 3}, {SuitDiamonds, 4},
	}

	if !CoversDealt(dealt, []Card{{SuitDiamonds, 4}, {SuitSpades, 2}, {SuitHearts, 3}}) {
		t.Fatalf("reordered dealt cards must pass")
	}
	if CoversDealt(dealt, []Card{{SuitSpades, 2}, {SuitSpades, 2}, {SuitHearts, 3}}) {
		t.Fatalf("duplicated card must fail")
	}
	if CoversDealt(dealt, []Card{{SuitSpades, 2}, {SuitHearts, 3}, {SuitClubs, 4}}) {
		t.Fatalf("foreign card must fail")
	}
	if CoversDealt(dealt, []Card{{SuitSpades, 2}, {SuitHearts, 3}}) {
		t.Fatalf("missing card must fail")
	}
}
