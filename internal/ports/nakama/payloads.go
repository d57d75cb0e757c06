package nakama

import "mafka/internal/domain"

// Client request payloads, JSON-encoded in the match data frame.

type StartGameRequest struct {
	PlayerName  string `json:"player_name"`
	PlayerCount int    `json:"player_count"`
	TestMode    bool   `json:"test_mode"`
}

type SendChatRequest struct {
	Text string `json:"text"`
	// MafiaChannel routes the message to the night channel; it must agree
	// with the current phase or the intent is dropped.
	MafiaChannel bool `json:"mafia_channel"`
}

type CastVoteRequest struct {
	TargetID int `json:"target_id"`
	// Night marks a mafia kill ballot as opposed to the day lynch vote.
	Night bool `json:"night"`
}

type SelectTargetRequest struct {
	TargetID int `json:"target_id"`
}

// Server payloads.

// SeatView is one seat as a specific viewer is allowed to see it. Role
// stays empty unless the viewer is entitled to it.
type SeatView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
	Bot   bool   `json:"bot"`
	Role  string `json:"role,omitempty"`
}

// SnapshotPayload carries the full observable state for one viewer.
type SnapshotPayload struct {
	Phase         domain.Phase        `json:"phase"`
	Day           int                 `json:"day"`
	TimerSeconds  int                 `json:"timer_seconds"`
	Winner        domain.Winner       `json:"winner,omitempty"`
	MafiaCount    int                 `json:"mafia_count"`
	Seats         []SeatView          `json:"seats"`
	Messages      []domain.Message    `json:"messages"`
	MafiaMessages []domain.Message    `json:"mafia_messages,omitempty"`
	Votes         map[int]int         `json:"votes,omitempty"`
	Checked       map[int]domain.Role `json:"checked_players,omitempty"`
	YourSeat      int                 `json:"your_seat"`
	YourRole      string              `json:"your_role,omitempty"`
}

type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MatchLabel is the JSON label advertised through the match registry.
type MatchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	State string `json:"state"`
}
