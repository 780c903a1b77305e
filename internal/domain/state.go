package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseWaiting indicates the match is waiting for a second player.
	PhaseWaiting Phase = "waiting"
	// PhaseArranging indicates hands are dealt and players are arranging lanes.
	PhaseArranging Phase = "arranging"
	// PhaseResult indicates the round has been scored and awaits reset.
	PhaseResult Phase = "result"
)

// Player holds per-round state for one participant.
type Player struct {
	UserID string
	Seat   int // 1-based

	Dealt       []Card
	Arrangement *Arrangement // nil until an accepted submission
	Special     SpecialCategory
	Ready       bool
}

// Round captures the authoritative state of one deal between two players.
// It is owned exclusively by the match coordinator; all domain helpers are
// pure and safe to call from anywhere.
type Round struct {
	Players map[string]*Player
	Order   [2]string // user IDs in seat order
	Scored  bool
}

// Player returns the round participant with the given user ID, or nil.
func (r *Round) Player(userID string) *Player {
	return r.Players[userID]
}

// Opponent returns the other participant, or nil for an unknown user ID.
func (r *Round) Opponent(userID string) *Player {
	if r.Players[userID] == nil {
		return nil
	}
	for _, id := range r.Order {
		if id != userID {
			return r.Players[id]
		}
	}
	return nil
}

// BothReady reports whether the synchronization barrier has been reached.
func (r *Round) BothReady() bool {
	for _, id := range r.Order {
		p := r.Players[id]
		if p == nil || !p.Ready {
			return false
		}
	}
	return true
}
