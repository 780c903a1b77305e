package nakama

import (
	"fmt"

	"shisanshui/internal/app"
	"shisanshui/internal/domain"
)

// WireCard identifies a card on the wire by suit letter and rank value.
type WireCard struct {
	Suit string `json:"suit"` // "S","H","D","C"
	Rank int32  `json:"rank"` // 2..14, Ace high
}

// SubmitArrangementRequest is the client's lane split, referencing cards from
// its own dealt hand.
type SubmitArrangementRequest struct {
	Front  []WireCard `json:"front"`
	Middle []WireCard `json:"middle"`
	Back   []WireCard `json:"back"`
}

type PlayerJoinedMsg struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	DisplayName string `json:"display_name"`
}

type PlayerLeftMsg struct {
	UserID string `json:"user_id"`
}

// RoundStartedMsg is sent privately to each player with their 13 cards.
type RoundStartedMsg struct {
	Hand    []WireCard `json:"hand"`
	Special string     `json:"special,omitempty"`
}

type GameStateMsg struct {
	Message string `json:"message"`
}

type ArrangementAcceptedMsg struct {
	UserID string `json:"user_id"`
}

type GameErrorMsg struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

type LaneDetailsMsg struct {
	Front  int `json:"front"`
	Middle int `json:"middle"`
	Back   int `json:"back"`
}

// RevealedHandMsg discloses one player's full hand in the result broadcast.
type RevealedHandMsg struct {
	UserID  string     `json:"user_id"`
	Cards   []WireCard `json:"cards"`
	Front   []WireCard `json:"front,omitempty"`
	Middle  []WireCard `json:"middle,omitempty"`
	Back    []WireCard `json:"back,omitempty"`
	Special string     `json:"special,omitempty"`
}

// GameResultMsg is broadcast identically to both players.
type GameResultMsg struct {
	Winner  *string           `json:"winner"` // null on a drawn round
	Reason  string            `json:"reason"`
	Details *LaneDetailsMsg   `json:"details,omitempty"`
	Players []RevealedHandMsg `json:"players"`
	Units   int64             `json:"units"`
}

var wireSuits = map[string]int32{
	"S": domain.SuitSpades,
	"H": domain.SuitHearts,
	"D": domain.SuitDiamonds,
	"C": domain.SuitClubs,
}

var suitWire = [4]string{"S", "H", "D", "C"}

func cardToWire(c domain.Card) WireCard {
	return WireCard{Suit: suitWire[c.Suit], Rank: c.Rank}
}

func cardsToWire(cards []domain.Card) []WireCard {
	out := make([]WireCard, len(cards))
	for i, c := range cards {
		out[i] = cardToWire(c)
	}
	return out
}

func cardFromWire(w WireCard) (domain.Card, error) {
	suit, ok := wireSuits[w.Suit]
	if !ok {
		return domain.Card{}, fmt.Errorf("unknown suit %q", w.Suit)
	}
	if w.Rank < domain.RankTwo || w.Rank > domain.RankAce {
		return domain.Card{}, fmt.Errorf("rank %d out of range", w.Rank)
	}
	return domain.Card{Suit: suit, Rank: w.Rank}, nil
}

func cardsFromWire(cards []WireCard) ([]domain.Card, error) {
	out := make([]domain.Card, len(cards))
	for i, w := range cards {
		c, err := cardFromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func arrangementFromWire(req SubmitArrangementRequest) (domain.Arrangement, error) {
	front, err := cardsFromWire(req.Front)
	if err != nil {
		return domain.Arrangement{}, err
	}
	middle, err := cardsFromWire(req.Middle)
	if err != nil {
		return domain.Arrangement{}, err
	}
	back, err := cardsFromWire(req.Back)
	if err != nil {
		return domain.Arrangement{}, err
	}
	return domain.Arrangement{Front: front, Middle: middle, Back: back}, nil
}

func revealedToWire(r app.RevealedHand) RevealedHandMsg {
	msg := RevealedHandMsg{
		UserID: r.UserID,
		Cards:  cardsToWire(r.Cards),
	}
	if r.Arrangement != nil {
		msg.Front = cardsToWire(r.Arrangement.Front)
		msg.Middle = cardsToWire(r.Arrangement.Middle)
		msg.Back = cardsToWire(r.Arrangement.Back)
	}
	if r.Special != domain.SpecialNone {
		msg.Special = r.Special.String()
	}
	return msg
}

func resultToWire(p app.RoundResultPayload) GameResultMsg {
	msg := GameResultMsg{
		Reason: p.Reason,
		Units:  p.Units,
		Players: []RevealedHandMsg{
			revealedToWire(p.Players[0]),
			revealedToWire(p.Players[1]),
		},
	}
	if p.WinnerID != "" {
		winner := p.WinnerID
		msg.Winner = &winner
	}
	if p.Details != nil {
		msg.Details = &LaneDetailsMsg{
			Front:  p.Details.Front,
			Middle: p.Details.Middle,
			Back:   p.Details.Back,
		}
	}
	return msg
}
