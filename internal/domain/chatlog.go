package domain

import (
	"strings"
	"time"
)

// SystemAuthorID is the reserved author id for narrator messages.
const SystemAuthorID = 0

// Message is a single chat entry in one channel.
type Message struct {
	ID        int       `json:"id"`
	AuthorID  int       `json:"author_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	System    bool      `json:"system,omitempty"`
}

// ChatLog is an append-only ordered message sequence for one channel.
// Entries are never removed or reordered; the mafia channel is replaced
// wholesale by the state machine when night begins.
type ChatLog struct {
	entries []Message
	now     func() time.Time
}

// NewChatLog returns an empty log. A nil clock defaults to time.Now.
func NewChatLog(now func() time.Time) *ChatLog {
	if now == nil {
		now = time.Now
	}
	return &ChatLog{now: now}
}

// Append adds an entry with the channel's next sequence id and the
// current timestamp, and returns it.
func (l *ChatLog) Append(authorID int, text string, system bool) Message {
	msg := Message{
		ID:        len(l.entries) + 1,
		AuthorID:  authorID,
		Text:      text,
		Timestamp: l.now(),
		System:    system,
	}
	l.entries = append(l.entries, msg)
	return msg
}

// Reset discards every entry. Sequence ids restart from 1.
func (l *ChatLog) Reset() {
	l.entries = nil
}

// Messages returns the entries in append order.
func (l *ChatLog) Messages() []Message {
	return l.entries
}

// Len returns the number of entries.
func (l *ChatLog) Len() int {
	return len(l.entries)
}

// CountBySeat returns how many non-system entries the seat has authored.
func (l *ChatLog) CountBySeat(seatID int) int {
	n := 0
	for _, m := range l.entries {
		if !m.System && m.AuthorID == seatID {
			n++
		}
	}
	return n
}

// SeatSaidAny reports whether any non-system entry by the seat contains
// one of the given substrings, case-insensitively.
func (l *ChatLog) SeatSaidAny(seatID int, substrings []string) bool {
	for _, m := range l.entries {
		if m.System || m.AuthorID != seatID {
			continue
		}
		text := strings.ToLower(m.Text)
		for _, sub := range substrings {
			if strings.Contains(text, sub) {
				return true
			}
		}
	}
	return false
}
