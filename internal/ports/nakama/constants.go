package nakama

const (
	// RpcQuickMatch finds or creates a session match for the caller.
	RpcQuickMatch = "quick_match"

	// MatchNameMafka is the authoritative match handler name registered with Nakama.
	MatchNameMafka = "mafka_match"
)

// Client op codes.
const (
	OpStartGame    int64 = 1
	OpSendChat     int64 = 2
	OpCastVote     int64 = 3
	OpSelectTarget int64 = 4
	OpAdvancePhase int64 = 5
)

// Server op codes.
const (
	OpSnapshot      int64 = 101
	OpChatMessage   int64 = 102
	OpPhaseChanged  int64 = 103
	OpSheriffResult int64 = 104
	OpGameOver      int64 = 105
	OpError         int64 = 106
)
