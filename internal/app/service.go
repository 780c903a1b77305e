package app

import (
	"errors"
	"math/rand"
	"time"

	"shisanshui/internal/domain"
)

// Service contains the arrangement-match use-cases operating on domain state.
// It is pure CPU-bound logic; the ports layer serializes all calls for a given
// round, so no internal locking is needed.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrRoundScored    = errors.New("round already scored")
	ErrUnknownPlayer  = errors.New("player not part of this round")
	ErrAlreadyReady   = errors.New("arrangement already locked in")
	ErrLaneSizes      = errors.New("lanes must hold 3, 5 and 5 cards")
	ErrCardOwnership  = errors.New("submitted cards do not match the dealt hand")
	ErrLaneOrder      = errors.New("front must not beat middle, middle must not beat back")
	ErrTooFewPlayers  = errors.New("two players are required to start a round")
	ErrNothingToScore = errors.New("no ready player to resolve the round for")
)

// StartRound shuffles a fresh deck, deals 13 cards to each player and runs
// special-hand detection before anyone is asked to arrange. Hand events are
// targeted to their recipient only; nothing about a hand ever reaches the
// opponent before the reveal. If both players hold special hands the round is
// scored immediately and the result event is included.
func (s *Service) StartRound(playerIDs [2]string) (*domain.Round, []Event, error) {
	for _, id := range playerIDs {
		if id == "" {
			return nil, nil, ErrTooFewPlayers
		}
	}

	deck := domain.ShuffleDeck(s.rng, domain.NewDeck())
	hands := domain.Deal(deck, PlayersPerMatch)

	round := &domain.Round{
		Players: make(map[string]*domain.Player, PlayersPerMatch),
		Order:   playerIDs,
	}

	events := make([]Event, 0, PlayersPerMatch+2)
	events = append(events, Event{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{Message: "New round: arrange your hand"},
	})

	for i, id := range playerIDs {
		domain.SortHand(hands[i])
		special := domain.DetectSpecial(hands[i])
		player := &domain.Player{
			UserID:  id,
			Seat:    i + 1,
			Dealt:   hands[i],
			Special: special,
			Ready:   special != domain.SpecialNone,
		}
		round.Players[id] = player

		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID:  id,
				Hand:    player.Dealt,
				Special: special,
			},
			Recipients: []string{id},
		})
	}

	// Two special hands meet the barrier without any submission.
	if round.BothReady() {
		events = append(events, s.scoreRound(round))
	}

	return round, events, nil
}

// SubmitArrangement validates a player's lane split and, once the second
// player is ready, scores the round. Validation failures leave the player's
// readiness untouched so a corrected resubmission can follow.
func (s *Service) SubmitArrangement(round *domain.Round, userID string, arr domain.Arrangement) ([]Event, error) {
	if round.Scored {
		return nil, ErrRoundScored
	}
	player := round.Player(userID)
	if player == nil {
		return nil, ErrUnknownPlayer
	}
	if player.Ready {
		return nil, ErrAlreadyReady
	}
	if !arr.HasLaneSizes() {
		return nil, ErrLaneSizes
	}
	if !domain.CoversDealt(player.Dealt, arr.Cards()) {
		return nil, ErrCardOwnership
	}
	if !arr.Ordered() {
		return nil, ErrLaneOrder
	}

	player.Arrangement = &arr
	player.Ready = true

	events := []Event{{
		Kind:       EventArrangementAccepted,
		Payload:    ArrangementAcceptedPayload{UserID: userID},
		Recipients: []string{userID},
	}}

	if round.BothReady() {
		events = append(events, s.scoreRound(round))
	}

	return events, nil
}

// ResolveWalkover ends the round in favor of the one remaining ready player,
// after the other disconnected or timed out without ever reaching ready.
func (s *Service) ResolveWalkover(round *domain.Round, leaverID string) ([]Event, error) {
	if round.Scored {
		return nil, ErrRoundScored
	}
	winner := round.Opponent(leaverID)
	if winner == nil {
		return nil, ErrUnknownPlayer
	}
	if !winner.Ready {
		return nil, ErrNothingToScore
	}

	round.Scored = true
	return []Event{{
		Kind: EventRoundResult,
		Payload: RoundResultPayload{
			WinnerID: winner.UserID,
			Reason:   ReasonWalkover,
			Players:  revealBoth(round),
			Units:    WalkoverUnits,
		},
	}}, nil
}

// scoreRound computes the result exactly once. Special hands short-circuit
// lane comparison entirely; otherwise each lane contributes one point to its
// winner and the majority takes the round.
func (s *Service) scoreRound(round *domain.Round) Event {
	round.Scored = true

	p1 := round.Players[round.Order[0]]
	p2 := round.Players[round.Order[1]]

	payload := RoundResultPayload{Players: revealBoth(round)}

	switch {
	case p1.Special != domain.SpecialNone && p2.Special != domain.SpecialNone:
		payload.Reason = ReasonSpecialHand
		switch {
		case p1.Special > p2.Special:
			payload.WinnerID = p1.UserID
			payload.Units = SpecialHandUnits
		case p2.Special > p1.Special:
			payload.WinnerID = p2.UserID
			payload.Units = SpecialHandUnits
		}
		// Equal categories: drawn round, no settlement.

	case p1.Special != domain.SpecialNone:
		payload.Reason = ReasonSpecialHand
		payload.WinnerID = p1.UserID
		payload.Units = SpecialHandUnits

	case p2.Special != domain.SpecialNone:
		payload.Reason = ReasonSpecialHand
		payload.WinnerID = p2.UserID
		payload.Units = SpecialHandUnits

	default:
		details := LaneDetails{
			Front:  domain.Compare(domain.Evaluate(p1.Arrangement.Front), domain.Evaluate(p2.Arrangement.Front)),
			Middle: domain.Compare(domain.Evaluate(p1.Arrangement.Middle), domain.Evaluate(p2.Arrangement.Middle)),
			Back:   domain.Compare(domain.Evaluate(p1.Arrangement.Back), domain.Evaluate(p2.Arrangement.Back)),
		}
		payload.Reason = ReasonLanes
		payload.Details = &details

		net := details.Front + details.Middle + details.Back
		switch {
		case net > 0:
			payload.WinnerID = p1.UserID
			payload.Units = int64(net)
		case net < 0:
			payload.WinnerID = p2.UserID
			payload.Units = int64(-net)
		}
	}

	return Event{Kind: EventRoundResult, Payload: payload}
}

func revealBoth(round *domain.Round) [2]RevealedHand {
	var out [2]RevealedHand
	for i, id := range round.Order {
		p := round.Players[id]
		out[i] = RevealedHand{
			UserID:      id,
			Cards:       p.Dealt,
			Arrangement: p.Arrangement,
			Special:     p.Special,
		}
	}
	return out
}
