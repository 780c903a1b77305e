package app

import "shisanshui/internal/domain"

// EventKind identifies emitted app events for dispatch by the ports layer.
type EventKind string

const (
	EventHandDealt           EventKind = "hand_dealt"
	EventRoundStarted        EventKind = "round_started"
	EventArrangementAccepted EventKind = "arrangement_accepted"
	EventRoundResult         EventKind = "round_result"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// HandDealtPayload carries one player's private 13-card deal and, when the
// whole hand qualifies, the special category that made them auto-ready.
type HandDealtPayload struct {
	UserID  string
	Hand    []domain.Card
	Special domain.SpecialCategory
}

// RoundStartedPayload is the broadcast state-change notice for a new deal.
type RoundStartedPayload struct {
	Message string
}

// ArrangementAcceptedPayload acknowledges a valid submission to its sender.
type ArrangementAcceptedPayload struct {
	UserID string
}

// LaneDetails holds per-lane outcomes from the first seat's perspective:
// 1 win, -1 loss, 0 tie.
type LaneDetails struct {
	Front  int
	Middle int
	Back   int
}

// RevealedHand is one player's full disclosure in the round result.
type RevealedHand struct {
	UserID      string
	Cards       []domain.Card
	Arrangement *domain.Arrangement // nil when a special hand skipped arranging
	Special     domain.SpecialCategory
}

// RoundResultPayload is broadcast identically to both players.
type RoundResultPayload struct {
	WinnerID string // empty on a drawn round
	Reason   string
	Details  *LaneDetails // nil when the round was decided by special hands
	Players  [2]RevealedHand
	Units    int64 // settlement units owed by the loser to the winner
}
