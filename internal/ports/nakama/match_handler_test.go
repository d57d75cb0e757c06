package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"mafka/internal/app"
	"mafka/internal/bot"
	"mafka/internal/config"
	"mafka/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	opCodes        []int64
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	md.opCodes = append(md.opCodes, opCode)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) sawOpCode(op int64) bool {
	for _, code := range md.opCodes {
		if code == op {
			return true
		}
	}
	return false
}

// testPresence is a minimal runtime.Presence for handler tests.
type testPresence struct {
	userID string
}

func (p testPresence) GetUserId() string                  { return p.userID }
func (p testPresence) GetSessionId() string               { return "session-" + p.userID }
func (p testPresence) GetNodeId() string                  { return "node" }
func (p testPresence) GetHidden() bool                    { return false }
func (p testPresence) GetPersistence() bool               { return false }
func (p testPresence) GetUsername() string                { return p.userID }
func (p testPresence) GetStatus() string                  { return "" }
func (p testPresence) GetReason() runtime.PresenceReason  { return runtime.PresenceReasonUnknown }

// testMatchData is a client frame for handler tests.
type testMatchData struct {
	testPresence
	opCode int64
	data   []byte
}

func (d testMatchData) GetOpCode() int64      { return d.opCode }
func (d testMatchData) GetData() []byte       { return d.data }
func (d testMatchData) GetReliable() bool     { return true }
func (d testMatchData) GetReceiveTime() int64 { return 0 }

func frame(userID string, opCode int64, payload any) testMatchData {
	data, _ := json.Marshal(payload)
	return testMatchData{
		testPresence: testPresence{userID: userID},
		opCode:       opCode,
		data:         data,
	}
}

func newTestState(humanID string) *MatchState {
	state := &MatchState{
		HumanID:      humanID,
		Presences:    map[string]runtime.Presence{humanID: testPresence{userID: humanID}},
		App:          app.NewService(rand.New(rand.NewSource(1)), config.Default()),
		Rng:          rand.New(rand.NewSource(1)),
		BotMinDelay:  2,
		BotMaxDelay:  5,
		BotVoteDelay: 2,
	}
	return state
}

func TestMatchJoinAttemptRejectsSecondHuman(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("user-1")

	_, ok, reason := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, testPresence{userID: "user-2"}, nil)
	if ok {
		t.Fatal("second human was admitted")
	}
	if reason == "" {
		t.Fatal("no rejection reason returned")
	}

	_, ok, _ = handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, testPresence{userID: "user-1"}, nil)
	if !ok {
		t.Fatal("returning human was rejected")
	}
}

func TestMatchLeaveHumanTerminates(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("user-1")

	out := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, []runtime.Presence{testPresence{userID: "user-1"}})
	if out != nil {
		t.Fatal("match kept running without its human")
	}
}

func TestHandleStartGameRejectsBadSetup(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")

	handler.handleStartGame(state, dispatcher, noopLogger{},
		frame("user-1", OpStartGame, StartGameRequest{PlayerName: "Ann", PlayerCount: 3}))

	if state.Game != nil {
		t.Fatal("game opened with 3 players")
	}
	if dispatcher.lastOpCode != OpError {
		t.Fatalf("last opcode = %d, want error frame", dispatcher.lastOpCode)
	}

	handler.handleStartGame(state, dispatcher, noopLogger{},
		frame("user-1", OpStartGame, StartGameRequest{PlayerName: "", PlayerCount: 6}))
	if state.Game != nil {
		t.Fatal("game opened without a player name")
	}
}

func TestHandleStartGameOpensSession(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")

	handler.handleStartGame(state, dispatcher, noopLogger{},
		frame("user-1", OpStartGame, StartGameRequest{PlayerName: "Ann", PlayerCount: 6}))

	if state.Game == nil {
		t.Fatal("game did not open")
	}
	if len(state.Game.Seats) != 6 {
		t.Fatalf("got %d seats", len(state.Game.Seats))
	}
	human := state.Game.Human()
	if human == nil || human.UserID != "user-1" {
		t.Fatalf("human seat not bound to presence: %+v", human)
	}
	if !dispatcher.sawOpCode(OpSnapshot) {
		t.Fatal("no snapshot broadcast after start")
	}
	if !dispatcher.sawOpCode(OpChatMessage) {
		t.Fatal("no opening narration broadcast")
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatal("label never updated")
	}

	// A second start while the game runs must be refused.
	dispatcher.lastOpCode = 0
	handler.handleStartGame(state, dispatcher, noopLogger{},
		frame("user-1", OpStartGame, StartGameRequest{PlayerName: "Ann", PlayerCount: 6}))
	if dispatcher.lastOpCode != OpError {
		t.Fatal("restart during a running game was not refused")
	}
}

func TestHandleStartGameIgnoresStrangers(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")

	handler.handleStartGame(state, dispatcher, noopLogger{},
		frame("user-9", OpStartGame, StartGameRequest{PlayerName: "Mallory", PlayerCount: 6}))

	if state.Game != nil {
		t.Fatal("stranger opened a game")
	}
	if dispatcher.broadcastCount != 0 {
		t.Fatal("stranger received a reply")
	}
}

func fixedGame(humanRole domain.Role) *domain.Game {
	roles := []domain.Role{humanRole, domain.RoleMafia, domain.RoleSheriff, domain.RoleCivilian}
	if humanRole == domain.RoleMafia {
		roles = []domain.Role{humanRole, domain.RoleCivilian, domain.RoleSheriff, domain.RoleMafia}
	}
	seats := make([]*domain.Seat, len(roles))
	for i, r := range roles {
		seats[i] = &domain.Seat{ID: i + 1, Name: "Seat" + string(rune('A'+i)), Role: r, Alive: true, Bot: i != 0}
	}
	seats[0].UserID = "user-1"
	return &domain.Game{
		Phase:      domain.PhaseDay,
		Day:        1,
		Seats:      seats,
		Public:     domain.NewChatLog(nil),
		MafiaLog:   domain.NewChatLog(nil),
		Votes:      map[int]int{},
		MafiaVotes: map[int]int{},
		Checked:    map[int]domain.Role{},
	}
}

func TestSnapshotRedactsLivingRoles(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleCivilian)
	state.Game.MafiaLog.Append(2, "secret plotting", false)
	state.Game.Seats[3].Alive = false

	snapshot := handler.snapshotFor(state, "user-1")

	if snapshot.YourSeat != 1 || snapshot.YourRole != string(domain.RoleCivilian) {
		t.Fatalf("viewer identity wrong: %+v", snapshot)
	}
	for _, view := range snapshot.Seats {
		switch view.ID {
		case 1:
			if view.Role == "" {
				t.Fatal("own role hidden")
			}
		case 4:
			if view.Role == "" {
				t.Fatal("dead seat role hidden")
			}
		default:
			if view.Role != "" {
				t.Fatalf("living seat %d role leaked: %q", view.ID, view.Role)
			}
		}
	}
	if len(snapshot.MafiaMessages) != 0 {
		t.Fatal("mafia log leaked to a civilian")
	}
}

func TestSnapshotMafiaViewerSeesFamily(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleMafia)
	state.Game.MafiaLog.Append(4, "tonight we strike", false)

	snapshot := handler.snapshotFor(state, "user-1")

	var teammateVisible bool
	for _, view := range snapshot.Seats {
		if view.ID == 4 && view.Role == string(domain.RoleMafia) {
			teammateVisible = true
		}
		if view.ID == 3 && view.Role != "" {
			t.Fatal("sheriff role leaked to mafia viewer")
		}
	}
	if !teammateVisible {
		t.Fatal("mafia teammate hidden from mafia viewer")
	}
	if len(snapshot.MafiaMessages) == 0 {
		t.Fatal("mafia viewer missing the mafia log")
	}
}

func TestSnapshotRevealsAllAtGameOver(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleCivilian)
	state.Game.Phase = domain.PhaseGameOver
	state.Game.Winner = domain.WinnerCivilians

	snapshot := handler.snapshotFor(state, "user-1")
	for _, view := range snapshot.Seats {
		if view.Role == "" {
			t.Fatalf("seat %d role hidden after game over", view.ID)
		}
	}
	if snapshot.Winner != domain.WinnerCivilians {
		t.Fatalf("winner = %q", snapshot.Winner)
	}
}

func TestSnapshotTestModeRevealsEverything(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleCivilian)
	state.Game.TestMode = true
	state.Game.Seats[0].Bot = true
	state.Game.Seats[0].UserID = ""
	state.Game.MafiaLog.Append(2, "observer should see this", false)
	state.Game.Checked[2] = domain.RoleMafia

	snapshot := handler.snapshotFor(state, "user-1")

	for _, view := range snapshot.Seats {
		if view.Role == "" {
			t.Fatalf("seat %d role hidden from the test-mode observer", view.ID)
		}
	}
	if len(snapshot.MafiaMessages) == 0 {
		t.Fatal("mafia log hidden from the test-mode observer")
	}
	if snapshot.Checked[2] != domain.RoleMafia {
		t.Fatal("check results hidden from the test-mode observer")
	}
}

func TestMatchLoopAdvancesTimerAndSyncs(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleCivilian)
	state.lastPhase = domain.PhaseDay
	state.Game.TimerRemaining = 1

	out := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 10, state, nil)
	if out == nil {
		t.Fatal("match loop terminated")
	}

	if state.Game.Phase != domain.PhaseVoting {
		t.Fatalf("phase = %s, want voting after timer expiry", state.Game.Phase)
	}
	if !dispatcher.sawOpCode(OpPhaseChanged) {
		t.Fatal("no phase change broadcast")
	}
	if !dispatcher.sawOpCode(OpSnapshot) {
		t.Fatal("no snapshot after phase change")
	}
}

func TestStaleBotScheduleClearedOnPhaseChange(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleCivilian)
	state.lastPhase = domain.PhaseDay
	state.BanterAt = 99
	state.PendingTriggers = []bot.Category{bot.CategoryAccusation}

	state.Game.Phase = domain.PhaseVoting
	handler.syncPhase(state, dispatcher, noopLogger{})

	if state.BanterAt != 0 || state.BallotsAt != 0 || state.PendingTriggers != nil {
		t.Fatalf("stale schedule survived: banter=%d ballots=%d triggers=%v",
			state.BanterAt, state.BallotsAt, state.PendingTriggers)
	}
}

func TestProcessBotsCastsBallotsOnce(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game = fixedGame(domain.RoleCivilian)
	state.Game.Phase = domain.PhaseVoting
	state.Tick = 10

	handler.processBots(state, dispatcher, noopLogger{})
	if state.BallotsAt != 10+int64(state.BotVoteDelay) {
		t.Fatalf("ballots scheduled at %d", state.BallotsAt)
	}
	if len(state.Game.Votes) != 0 {
		t.Fatal("ballots cast before the delay")
	}

	state.Tick = state.BallotsAt
	handler.processBots(state, dispatcher, noopLogger{})
	if state.BallotsAt != -1 {
		t.Fatalf("ballot sweep not marked done: %d", state.BallotsAt)
	}
	if len(state.Game.Votes) == 0 && state.Game.Phase == domain.PhaseVoting {
		t.Fatal("bots never voted")
	}
}

func TestLabelFor(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState("")
	state.Presences = map[string]runtime.Presence{}

	var label MatchLabel
	if err := json.Unmarshal([]byte(handler.labelFor(state, noopLogger{})), &label); err != nil {
		t.Fatalf("label not valid JSON: %v", err)
	}
	if label.Game != "mafka" || label.Open != 1 || label.State != "lobby" {
		t.Fatalf("lobby label = %+v", label)
	}

	state.HumanID = "user-1"
	state.Game = fixedGame(domain.RoleCivilian)
	if err := json.Unmarshal([]byte(handler.labelFor(state, noopLogger{})), &label); err != nil {
		t.Fatalf("label not valid JSON: %v", err)
	}
	if label.Open != 0 || label.State != "playing" {
		t.Fatalf("playing label = %+v", label)
	}
}
