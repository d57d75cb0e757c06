package app

import "mafka/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventChatMessage   EventKind = "chat_message"
	EventPhaseChanged  EventKind = "phase_changed"
	EventSheriffResult EventKind = "sheriff_result"
	EventGameOver      EventKind = "game_over"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // seat ids; empty means broadcast to the table
}

// Channel names for chat message payloads.
const (
	ChannelPublic = "public"
	ChannelMafia  = "mafia"
)

type ChatMessagePayload struct {
	Channel string         `json:"channel"`
	Message domain.Message `json:"message"`
}

type PhaseChangedPayload struct {
	Phase        domain.Phase `json:"phase"`
	Day          int          `json:"day"`
	TimerSeconds int          `json:"timer_seconds"`
}

type SheriffResultPayload struct {
	TargetID   int    `json:"target_id"`
	TargetName string `json:"target_name"`
	IsMafia    bool   `json:"is_mafia"`
}

type GameOverPayload struct {
	Winner domain.Winner `json:"winner"`
}
