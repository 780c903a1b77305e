package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"

	"shisanshui/internal/app"
	"shisanshui/internal/bot"
	"shisanshui/internal/config"
	"shisanshui/internal/domain"
	"shisanshui/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is advertised for quick-match queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for one two-player match.
// All mutation happens inside the match handler callbacks, which Nakama runs
// to completion one at a time, so no locking is needed.
type MatchState struct {
	Seats     [app.PlayersPerMatch]string
	Presences map[string]runtime.Presence

	App   *app.Service
	Round *domain.Round

	Tick                int64
	ResetAtTick         int64 // when > 0, deal the next round at this tick
	ArrangeDeadlineTick int64 // when > 0, the arranging phase expires at this tick

	BotsEnabled        bool
	BotMinDelay        int
	BotMaxDelay        int
	BotAutoFillDelay   int
	LoneHumanSinceTick int64
	BotActAtTick       int64
	Bots               map[string]*bot.Agent

	Economy ports.EconomyPort
}

func (ms *MatchState) occupiedSeats() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) openSeats() int {
	return app.PlayersPerMatch - ms.occupiedSeats()
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) humanCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	state := &MatchState{
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		Economy:          NewNakamaEconomyAdapter(nk),
		BotMinDelay:      1,
		BotMaxDelay:      3,
		BotAutoFillDelay: config.GetBotAutoFillDelaySeconds(),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["shisanshui_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["shisanshui_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["shisanshui_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= state.BotMinDelay {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["shisanshui_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.BotAutoFillDelay = i
		}
	}

	tickRate := 1
	return state, tickRate, buildLabel(state)
}

// MatchJoinAttempt admits at most two concurrent players. A seated player may
// rejoin; a third connection is rejected explicitly rather than queued.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	if matchState.openSeats() <= 0 {
		// A bot seat can be reclaimed by a human between rounds.
		if matchState.Round == nil {
			for _, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					return state, true, ""
				}
			}
		}
		return state, false, "match_full"
	}

	return state, true, ""
}

// MatchJoin seats joining presences and deals the moment the second player is
// in.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		uid := p.GetUserId()
		matchState.Presences[uid] = p

		if matchState.seatOf(uid) >= 0 {
			continue // rejoin refreshes the presence only
		}

		assigned := false
		for i, seat := range matchState.Seats {
			if seat == "" {
				matchState.Seats[i] = uid
				assigned = true
				break
			}
		}
		if !assigned && matchState.Round == nil {
			for i, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seat, uid, i)
					delete(matchState.Bots, seat)
					matchState.Seats[i] = uid
					assigned = true
					break
				}
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", uid)
			continue
		}

		evt, _ := json.Marshal(PlayerJoinedMsg{
			UserID:      uid,
			Seat:        matchState.seatOf(uid) + 1,
			DisplayName: p.GetUsername(),
		})
		_ = dispatcher.BroadcastMessage(OpPlayerJoined, evt, nil, nil, true)
	}

	mh.updateLabel(matchState, dispatcher, logger)

	if matchState.Round == nil && matchState.occupiedSeats() == app.PlayersPerMatch {
		mh.startRound(ctx, matchState, dispatcher, logger)
	} else if matchState.Round == nil {
		mh.sendState(matchState, dispatcher, logger, "Waiting for an opponent")
	}

	return matchState
}

// MatchLeave frees seats and resolves or aborts a round in flight. A
// disconnect is handled like any other message: inside the serialized
// callback, against authoritative state.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		uid := p.GetUserId()
		delete(matchState.Presences, uid)

		seat := matchState.seatOf(uid)
		if seat < 0 {
			continue
		}
		matchState.Seats[seat] = ""

		evt, _ := json.Marshal(PlayerLeftMsg{UserID: uid})
		_ = dispatcher.BroadcastMessage(OpPlayerLeft, evt, nil, nil, true)

		if matchState.Round != nil && matchState.Round.Player(uid) != nil {
			mh.resolveDeparture(ctx, matchState, dispatcher, logger, uid)
		}
	}

	// Pending reset can no longer redeal once a seat is empty.
	if matchState.occupiedSeats() < app.PlayersPerMatch {
		matchState.ResetAtTick = 0
	}

	if matchState.humanCount() == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// resolveDeparture ends the round after uid left: a walkover when the
// remaining player already locked in, otherwise an abort.
func (mh *matchHandler) resolveDeparture(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, uid string) {
	events, err := state.App.ResolveWalkover(state.Round, uid)
	if err == nil {
		mh.dispatchEvents(ctx, state, dispatcher, logger, events)
		return
	}

	logger.Debug("resolveDeparture: no walkover (%v), aborting round", err)
	msg, _ := json.Marshal(GameErrorMsg{
		Code:    ErrCodeAborted,
		Message: "A player disconnected; the round was aborted",
	})
	_ = dispatcher.BroadcastMessage(OpGameError, msg, nil, nil, true)
	mh.clearRound(state)
	mh.updateLabel(state, dispatcher, logger)
}

// MatchLoop processes in-match messages, then drives the timers: automatic
// redeal after a result, the optional arranging deadline, and bot behavior.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpSubmitArrangement:
			mh.handleSubmitArrangement(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
			mh.sendError(matchState, dispatcher, logger, msg.GetUserId(), ErrCodeProtocol, "unknown message opcode")
		}
	}

	if matchState.Round == nil && matchState.ResetAtTick > 0 && tick >= matchState.ResetAtTick {
		matchState.ResetAtTick = 0
		if matchState.occupiedSeats() == app.PlayersPerMatch {
			mh.startRound(ctx, matchState, dispatcher, logger)
		} else {
			mh.sendState(matchState, dispatcher, logger, "Waiting for an opponent")
			mh.updateLabel(matchState, dispatcher, logger)
		}
	}

	if matchState.Round != nil && matchState.ArrangeDeadlineTick > 0 && tick >= matchState.ArrangeDeadlineTick {
		mh.expireArranging(ctx, matchState, dispatcher, logger)
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleSubmitArrangement(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.seatOf(senderID) < 0 {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeSession, "you are not seated in this match")
		return
	}
	if state.Round == nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeSession, "no round in progress")
		return
	}

	var request SubmitArrangementRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleSubmitArrangement: Malformed payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeProtocol, "malformed submission payload")
		return
	}

	arrangement, err := arrangementFromWire(request)
	if err != nil {
		logger.Warn("handleSubmitArrangement: Invalid card from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeProtocol, err.Error())
		return
	}

	events, err := state.App.SubmitArrangement(state.Round, senderID, arrangement)
	if err != nil {
		logger.Warn("handleSubmitArrangement: User %s submission rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeArrangement, err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// expireArranging applies the optional deadline: walkover for the single
// ready player, or a fresh deal when neither locked in.
func (mh *matchHandler) expireArranging(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.ArrangeDeadlineTick = 0
	round := state.Round

	var readyID, lateID string
	for _, id := range round.Order {
		if round.Players[id].Ready {
			readyID = id
		} else {
			lateID = id
		}
	}

	if readyID != "" && lateID != "" {
		logger.Info("expireArranging: %s timed out, walkover for %s", lateID, readyID)
		events, err := state.App.ResolveWalkover(round, lateID)
		if err != nil {
			logger.Error("expireArranging: walkover failed: %v", err)
			return
		}
		mh.dispatchEvents(ctx, state, dispatcher, logger, events)
		return
	}

	logger.Info("expireArranging: No submissions before the deadline, redealing.")
	msg, _ := json.Marshal(GameErrorMsg{Code: ErrCodeAborted, Message: "Arranging timed out; the round was aborted"})
	_ = dispatcher.BroadcastMessage(OpGameError, msg, nil, nil, true)
	mh.clearRound(state)
	state.ResetAtTick = state.Tick + int64(config.GetResetDelaySeconds())
	mh.updateLabel(state, dispatcher, logger)
}

// processBots fills an empty seat for a lone human after a delay and lets a
// seated bot arrange its hand after a randomized think time.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round == nil && state.ResetAtTick == 0 {
		if state.humanCount() == 1 && state.occupiedSeats() == 1 {
			if state.LoneHumanSinceTick == 0 {
				state.LoneHumanSinceTick = state.Tick
			}
			if state.Tick-state.LoneHumanSinceTick >= int64(state.BotAutoFillDelay) {
				state.LoneHumanSinceTick = 0
				mh.seatBot(ctx, state, dispatcher, logger)
			}
		} else {
			state.LoneHumanSinceTick = 0
		}
	}

	if state.Round == nil || state.Round.Scored {
		state.BotActAtTick = 0
		return
	}

	for _, id := range state.Round.Order {
		player := state.Round.Players[id]
		if !bot.IsBot(id) || player.Ready {
			continue
		}

		if state.BotActAtTick == 0 {
			delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
			state.BotActAtTick = state.Tick + int64(delay)
			continue
		}
		if state.Tick < state.BotActAtTick {
			continue
		}
		state.BotActAtTick = 0

		agent, exists := state.Bots[id]
		if !exists {
			agent = bot.NewAgent(id)
			state.Bots[id] = agent
		}

		arrangement, err := agent.Arrange(player.Dealt)
		if err != nil {
			logger.Error("processBots: Bot %s failed to arrange: %v", id, err)
			continue
		}
		events, err := state.App.SubmitArrangement(state.Round, id, arrangement)
		if err != nil {
			logger.Error("processBots: Bot %s submission rejected: %v", id, err)
			continue
		}
		mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	}
}

func (mh *matchHandler) seatBot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetIdentity(i)
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = bot.NewAgent(identity.UserID)
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.DisplayName, identity.UserID, i)

		evt, _ := json.Marshal(PlayerJoinedMsg{
			UserID:      identity.UserID,
			Seat:        i + 1,
			DisplayName: identity.DisplayName,
		})
		_ = dispatcher.BroadcastMessage(OpPlayerJoined, evt, nil, nil, true)
		break
	}

	mh.updateLabel(state, dispatcher, logger)

	if state.Round == nil && state.occupiedSeats() == app.PlayersPerMatch {
		mh.startRound(ctx, state, dispatcher, logger)
	}
}

func (mh *matchHandler) startRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	round, events, err := state.App.StartRound(state.Seats)
	if err != nil {
		logger.Error("startRound: %v", err)
		return
	}
	state.Round = round

	if turn := config.GetTurnDurationSeconds(); turn > 0 && !round.Scored {
		state.ArrangeDeadlineTick = state.Tick + int64(turn)
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// dispatchEvents converts app events to wire messages. Targeted events reach
// only their recipients; a result event also settles wallets and arms the
// reset timer.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		var opCode int64
		var payload any

		switch ev.Kind {
		case app.EventRoundStarted:
			opCode = OpGameState
			p := ev.Payload.(app.RoundStartedPayload)
			payload = GameStateMsg{Message: p.Message}

		case app.EventHandDealt:
			opCode = OpRoundStarted
			p := ev.Payload.(app.HandDealtPayload)
			msg := RoundStartedMsg{Hand: cardsToWire(p.Hand)}
			if p.Special != domain.SpecialNone {
				msg.Special = p.Special.String()
			}
			payload = msg

		case app.EventArrangementAccepted:
			opCode = OpArrangementAccepted
			p := ev.Payload.(app.ArrangementAcceptedPayload)
			payload = ArrangementAcceptedMsg{UserID: p.UserID}

		case app.EventRoundResult:
			opCode = OpRoundResult
			p := ev.Payload.(app.RoundResultPayload)
			payload = resultToWire(p)
			mh.settleRound(ctx, state, logger, p)

		default:
			logger.Warn("dispatchEvents: Unknown event kind: %v", ev.Kind)
			continue
		}

		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("dispatchEvents: Failed to marshal %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// Targeted events with no connected recipient (a bot's private
			// deal) must not leak to everyone else.
			if len(recipients) == 0 {
				continue
			}
		}

		_ = dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)

		if ev.Kind == app.EventRoundResult {
			mh.clearRound(state)
			state.ResetAtTick = state.Tick + int64(config.GetResetDelaySeconds())
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

// settleRound applies the wallet changes for a decided round. Draws and bot
// seats move nothing.
func (mh *matchHandler) settleRound(ctx context.Context, state *MatchState, logger runtime.Logger, result app.RoundResultPayload) {
	if state.Economy == nil || result.WinnerID == "" || result.Units == 0 {
		return
	}

	stake := result.Units * config.GetBaseBet("")
	metadata := map[string]interface{}{
		"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
		"reason":   result.Reason,
	}

	updates := make([]ports.WalletUpdate, 0, 2)
	for _, player := range result.Players {
		if bot.IsBot(player.UserID) {
			continue
		}
		amount := stake
		if player.UserID != result.WinnerID {
			amount = -stake
		}
		updates = append(updates, ports.WalletUpdate{
			UserID:   player.UserID,
			Amount:   amount,
			Metadata: metadata,
		})
	}

	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settleRound: Failed to update balances: %v", err)
	}
}

func (mh *matchHandler) clearRound(state *MatchState) {
	state.Round = nil
	state.ArrangeDeadlineTick = 0
	state.BotActAtTick = 0
}

// sendError sends a GameErrorMsg to a specific user only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int32, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendError: Cannot send error to %s: presence not found", userID)
		return
	}

	data, _ := json.Marshal(GameErrorMsg{Code: code, Message: message})
	_ = dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) sendState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, message string) {
	data, _ := json.Marshal(GameStateMsg{Message: message})
	_ = dispatcher.BroadcastMessage(OpGameState, data, nil, nil, true)
}

func buildLabel(state *MatchState) string {
	phase := string(domain.PhaseWaiting)
	if state.Round != nil {
		phase = string(domain.PhaseArranging)
	} else if state.ResetAtTick > 0 {
		phase = string(domain.PhaseResult)
	}
	b, _ := json.Marshal(MatchLabel{Open: state.openSeats(), Game: "shisanshui", Phase: phase})
	return string(b)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(buildLabel(state)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

// MatchTerminate runs on match shutdown.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated.")
	return state
}

// MatchSignal handles out-of-band signals; unused.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
