package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"mafka/internal/app"
	"mafka/internal/bot"
	"mafka/internal/config"
	"mafka/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match
// handler. One match hosts one human and their table of bots.
type MatchState struct {
	HumanID   string                      `json:"human_id"`
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"`
	Rng       *rand.Rand                  `json:"-"`

	BotMinDelay  int `json:"bot_min_delay"`
	BotMaxDelay  int `json:"bot_max_delay"`
	BotVoteDelay int `json:"bot_vote_delay"`

	// Bot scheduling. BanterAt and BallotsAt are absolute ticks; zero
	// means unscheduled, negative means already fired this phase. All
	// three reset whenever the phase changes, so actions queued for an
	// earlier phase never leak into the next one.
	BanterAt        int64          `json:"-"`
	BallotsAt       int64          `json:"-"`
	PendingTriggers []bot.Category `json:"-"`

	lastPhase domain.Phase
}

type matchHandler struct{}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadNames("data/bot_names.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot names: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		Presences:    make(map[string]runtime.Presence),
		App:          app.NewService(nil, cfg),
		Rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		BotMinDelay:  cfg.BotChatDelayMinSeconds,
		BotMaxDelay:  cfg.BotChatDelayMaxSeconds,
		BotVoteDelay: cfg.BotVoteDelaySeconds,
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["mafka_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["mafka_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["mafka_bot_vote_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotVoteDelay = i
		}
	}
	if state.BotMinDelay <= 0 {
		state.BotMinDelay = 2
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay + 3
	}
	if state.BotVoteDelay <= 0 {
		state.BotVoteDelay = 2
	}

	tickRate := 1 // one tick per second, timers count in seconds
	return state, tickRate, mh.labelFor(state, logger)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.HumanID != "" && matchState.HumanID != presence.GetUserId() {
		return state, false, "match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		matchState.HumanID = p.GetUserId()
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave terminates the match when the human disconnects. The bots
// have no one left to play for.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if p.GetUserId() == matchState.HumanID {
			logger.Info("MatchLeave: Human %s left, terminating match.", p.GetUserId())
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpSendChat:
			mh.handleSendChat(matchState, dispatcher, logger, msg)
		case OpCastVote:
			mh.handleCastVote(matchState, dispatcher, logger, msg)
		case OpSelectTarget:
			mh.handleSelectTarget(matchState, dispatcher, logger, msg)
		case OpAdvancePhase:
			mh.handleAdvancePhase(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.Game != nil && !matchState.Game.Over() {
		events := matchState.App.Tick(matchState.Game)
		mh.broadcastEvents(matchState, dispatcher, logger, events)
		mh.processBots(matchState, dispatcher, logger)
	}
	mh.syncPhase(matchState, dispatcher, logger)

	return matchState
}

// syncPhase notices phase transitions made anywhere this tick and
// resets the bot scheduler, refreshes the label, and ships a fresh
// snapshot to the table.
func (mh *matchHandler) syncPhase(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Phase == state.lastPhase {
		return
	}
	state.lastPhase = state.Game.Phase
	state.BanterAt = 0
	state.BallotsAt = 0
	state.PendingTriggers = nil

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(state, dispatcher, logger)
}

// processBots drives the table's bots: jittered chatter during the
// discussion phases and a single delayed ballot sweep during the vote
// phases.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game

	switch g.Phase {
	case domain.PhaseDay:
		if state.BanterAt == 0 {
			state.BanterAt = state.Tick + state.jitter()
		}
		if state.Tick >= state.BanterAt {
			events := state.App.BotBanter(g, state.PendingTriggers)
			state.PendingTriggers = nil
			state.BanterAt = state.Tick + state.jitter()
			mh.broadcastEvents(state, dispatcher, logger, events)
		}

	case domain.PhaseMafiaChat:
		if state.BanterAt == 0 {
			state.BanterAt = state.Tick + state.jitter()
		}
		if state.Tick >= state.BanterAt {
			events := state.App.BotMafiaBanter(g)
			state.BanterAt = state.Tick + state.jitter()
			mh.broadcastEvents(state, dispatcher, logger, events)
		}

	case domain.PhaseVoting:
		if state.BallotsAt == 0 {
			state.BallotsAt = state.Tick + int64(state.BotVoteDelay)
		}
		if state.BallotsAt > 0 && state.Tick >= state.BallotsAt {
			state.BallotsAt = -1
			events := state.App.BotsCastDayVotes(g)
			mh.broadcastEvents(state, dispatcher, logger, events)
		}

	case domain.PhaseMafiaTurn:
		if state.BallotsAt == 0 {
			state.BallotsAt = state.Tick + int64(state.BotVoteDelay)
		}
		if state.BallotsAt > 0 && state.Tick >= state.BallotsAt {
			state.BallotsAt = -1
			events := state.App.BotsCastNightVotes(g)
			mh.broadcastEvents(state, dispatcher, logger, events)
		}
	}
}

func (state *MatchState) jitter() int64 {
	span := state.BotMaxDelay - state.BotMinDelay + 1
	return int64(state.Rng.Intn(span) + state.BotMinDelay)
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.HumanID {
		return
	}
	if state.Game != nil && !state.Game.Over() {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 409, "game already in progress")
		return
	}

	var req StartGameRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("StartGame: Invalid request from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed request")
		return
	}

	game, events, err := state.App.StartGame(req.PlayerName, req.PlayerCount, req.TestMode, nil)
	if err != nil {
		logger.Warn("StartGame: Rejected for %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	if human := game.Human(); human != nil {
		human.UserID = state.HumanID
	}

	state.Game = game
	state.lastPhase = ""
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.syncPhase(state, dispatcher, logger)
	logger.Info("StartGame: Session opened with %d seats (test=%v).", len(game.Seats), req.TestMode)
}

func (mh *matchHandler) handleSendChat(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat := mh.senderSeat(state, msg)
	if seat == nil {
		return
	}

	var req SendChatRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Debug("SendChat: Malformed frame from %s: %v", msg.GetUserId(), err)
		return
	}
	if req.MafiaChannel != (state.Game.Phase == domain.PhaseMafiaChat) {
		logger.Debug("SendChat: Channel flag does not match phase %s, dropped.", state.Game.Phase)
		return
	}

	events, err := state.App.SendChat(state.Game, seat.ID, req.Text)
	if err != nil {
		logger.Debug("SendChat: Dropped from seat %d: %v", seat.ID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)

	// A human message provokes a quick bot reaction on the same channel.
	switch state.Game.Phase {
	case domain.PhaseDay:
		state.PendingTriggers = bot.AnalyzeTriggers(req.Text)
		state.BanterAt = state.Tick + 1
	case domain.PhaseMafiaChat:
		state.BanterAt = state.Tick + 1
	}
}

func (mh *matchHandler) handleCastVote(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat := mh.senderSeat(state, msg)
	if seat == nil {
		return
	}

	var req CastVoteRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Debug("CastVote: Malformed frame from %s: %v", msg.GetUserId(), err)
		return
	}
	if req.Night != (state.Game.Phase == domain.PhaseMafiaTurn) {
		logger.Debug("CastVote: Ballot type does not match phase %s, dropped.", state.Game.Phase)
		return
	}

	events, err := state.App.CastVote(state.Game, seat.ID, req.TargetID)
	if err != nil {
		logger.Debug("CastVote: Dropped from seat %d: %v", seat.ID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleSelectTarget(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat := mh.senderSeat(state, msg)
	if seat == nil {
		return
	}

	var req SelectTargetRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Debug("SelectTarget: Malformed frame from %s: %v", msg.GetUserId(), err)
		return
	}

	events, err := state.App.SelectTarget(state.Game, seat.ID, req.TargetID)
	if err != nil {
		logger.Debug("SelectTarget: Dropped from seat %d: %v", seat.ID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleAdvancePhase(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.HumanID || state.Game == nil {
		return
	}

	events, err := state.App.AdvancePhase(state.Game)
	if err != nil {
		logger.Debug("AdvancePhase: Dropped: %v", err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.syncPhase(state, dispatcher, logger)
}

// senderSeat resolves an incoming frame to the human's seat, or nil
// when the frame cannot act on the running game.
func (mh *matchHandler) senderSeat(state *MatchState, msg runtime.MatchData) *domain.Seat {
	if state.Game == nil || msg.GetUserId() != state.HumanID {
		return nil
	}
	return state.Game.Human()
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts one app event into a dispatcher frame. Events
// with seat recipients go only to the connected presences behind those
// seats; if none are connected the frame is dropped rather than leaked
// to the table.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventChatMessage:
		opCode = OpChatMessage
	case app.EventPhaseChanged:
		opCode = OpPhaseChanged
	case app.EventSheriffResult:
		opCode = OpSheriffResult
	case app.EventGameOver:
		opCode = OpGameOver
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seatID := range ev.Recipients {
			seat := state.Game.Seat(seatID)
			if seat == nil || seat.UserID == "" {
				continue
			}
			if p, ok := state.Presences[seat.UserID]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// broadcastSnapshot ships each connected presence its own view of the
// table. Roles are redacted to what that viewer has earned: their own
// card, the dead, mafia teammates, the sheriff's check results, and
// everything once the game is over or in test mode.
func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID, presence := range state.Presences {
		payload := mh.snapshotFor(state, userID)
		bytes, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to marshal snapshot: %v", err)
			return
		}
		dispatcher.BroadcastMessage(OpSnapshot, bytes, []runtime.Presence{presence}, nil, true)
	}
}

func (mh *matchHandler) snapshotFor(state *MatchState, userID string) SnapshotPayload {
	g := state.Game
	if g == nil {
		return SnapshotPayload{Phase: domain.PhaseSetup}
	}

	var viewer *domain.Seat
	for _, s := range g.Seats {
		if s.UserID == userID && !s.Bot {
			viewer = s
			break
		}
	}

	snapshot := SnapshotPayload{
		Phase:        g.Phase,
		Day:          g.Day,
		TimerSeconds: g.TimerRemaining,
		Winner:       g.Winner,
		MafiaCount:   g.MafiaCount,
		Messages:     g.Public.Messages(),
		Votes:        g.Votes,
	}
	if viewer != nil {
		snapshot.YourSeat = viewer.ID
		snapshot.YourRole = string(viewer.Role)
	}
	if g.TestMode || g.Over() || (viewer != nil && viewer.Role == domain.RoleMafia) {
		snapshot.MafiaMessages = g.MafiaLog.Messages()
	}
	if g.TestMode || g.Over() || (viewer != nil && viewer.Role == domain.RoleSheriff) {
		snapshot.Checked = g.Checked
	}

	for _, s := range g.Seats {
		view := SeatView{ID: s.ID, Name: s.Name, Alive: s.Alive, Bot: s.Bot}
		if roleVisible(g, viewer, s) {
			view.Role = string(s.Role)
		}
		snapshot.Seats = append(snapshot.Seats, view)
	}
	return snapshot
}

func roleVisible(g *domain.Game, viewer, seat *domain.Seat) bool {
	if g.TestMode || g.Over() || !seat.Alive {
		return true
	}
	if viewer == nil {
		return false
	}
	if viewer.ID == seat.ID {
		return true
	}
	if viewer.Role == domain.RoleMafia && seat.Role == domain.RoleMafia {
		return true
	}
	if viewer.Role == domain.RoleSheriff {
		if _, checked := g.Checked[seat.ID]; checked {
			return true
		}
	}
	return false
}

// sendError sends an ErrorPayload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	bytes, err := json.Marshal(ErrorPayload{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) labelFor(state *MatchState, logger runtime.Logger) string {
	phase := "lobby"
	switch {
	case state.Game != nil && state.Game.Over():
		phase = "finished"
	case state.Game != nil:
		phase = "playing"
	}
	open := 0
	if state.HumanID == "" {
		open = 1
	}

	bytes, err := json.Marshal(MatchLabel{Game: "mafka", Open: open, State: phase})
	if err != nil {
		logger.Error("Failed to marshal match label: %v", err)
		return ""
	}
	return string(bytes)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(mh.labelFor(state, logger)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
