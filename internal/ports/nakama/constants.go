package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an
	// open match.
	RpcQuickMatch = "quick_match"

	// MatchName is the authoritative match handler name registered with
	// Nakama.
	MatchName = "shisanshui_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSubmitArrangement int64 = 1

	// Server -> Client events
	OpPlayerJoined        int64 = 101
	OpPlayerLeft          int64 = 102
	OpRoundStarted        int64 = 103 // sent privately: the recipient's hand
	OpGameState           int64 = 104
	OpArrangementAccepted int64 = 105
	OpGameError           int64 = 106
	OpRoundResult         int64 = 107
)

// Error codes carried in GameErrorMsg.
const (
	ErrCodeProtocol    int32 = 400
	ErrCodeArrangement int32 = 422
	ErrCodeSession     int32 = 409
	ErrCodeAborted     int32 = 410
)
