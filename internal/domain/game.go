package domain

// Game holds the authoritative state for one session. It is created by
// the start-game operation, mutated exclusively by the app service, and
// discarded when the session ends.
type Game struct {
	Phase Phase
	Day   int

	Seats []*Seat

	Public   *ChatLog // day discussion, visible to everyone
	MafiaLog *ChatLog // visible to mafia seats only, reset each night

	Votes      map[int]int // day ballot: voter seat id -> target seat id
	MafiaVotes map[int]int // night ballot: mafia voter seat id -> target seat id
	Checked    map[int]Role // sheriff investigations, persists all game

	// SelectedSeat holds the human sheriff's in-progress investigation
	// pick; it never doubles as the kill target.
	SelectedSeat int
	// NightTarget is the mafia's chosen victim, stored at the end of the
	// mafia turn and applied only during the results transition.
	NightTarget int
	// LastChecked is the seat investigated this night, for the morning
	// summary. Cleared when a new night begins.
	LastChecked int

	// Eliminated holds the floor during the last-word phase.
	Eliminated *Seat

	Winner     Winner
	MafiaCount int
	TestMode   bool

	// TimerRemaining counts down the current phase in seconds; zero means
	// no timer is armed.
	TimerRemaining int
	// AutoAdvance paces the automatic night and results beats; it is not
	// part of the observable snapshot.
	AutoAdvance int
}

// Human returns the human seat, or nil in test mode.
func (g *Game) Human() *Seat {
	return HumanSeat(g.Seats)
}

// Seat returns the seat with the given id, or nil.
func (g *Game) Seat(id int) *Seat {
	return SeatByID(g.Seats, id)
}

// Over reports whether the session reached its terminal phase.
func (g *Game) Over() bool {
	return g.Phase == PhaseGameOver
}
