package domain

// Seat is a participant slot in the session, human or bot.
type Seat struct {
	ID     int    // unique positive id, 1 is the human seat unless test mode
	UserID string // Nakama user id for the human, minted id for bots
	Name   string
	Role   Role
	Alive  bool
	Bot    bool
}

// SeatByID returns the seat with the given id, or nil.
func SeatByID(seats []*Seat, id int) *Seat {
	for _, s := range seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// HumanSeat returns the single human-controlled seat, or nil when every
// seat is engine-controlled (test mode).
func HumanSeat(seats []*Seat) *Seat {
	for _, s := range seats {
		if !s.Bot {
			return s
		}
	}
	return nil
}

// Living returns all seats still alive.
func Living(seats []*Seat) []*Seat {
	out := make([]*Seat, 0, len(seats))
	for _, s := range seats {
		if s.Alive {
			out = append(out, s)
		}
	}
	return out
}

// LivingMafia returns the living mafia seats.
func LivingMafia(seats []*Seat) []*Seat {
	out := make([]*Seat, 0, len(seats))
	for _, s := range seats {
		if s.Alive && s.Role == RoleMafia {
			out = append(out, s)
		}
	}
	return out
}

// LivingTown returns the living non-mafia seats.
func LivingTown(seats []*Seat) []*Seat {
	out := make([]*Seat, 0, len(seats))
	for _, s := range seats {
		if s.Alive && s.Role != RoleMafia {
			out = append(out, s)
		}
	}
	return out
}

// LivingSheriff returns the living sheriff seat, or nil.
func LivingSheriff(seats []*Seat) *Seat {
	for _, s := range seats {
		if s.Alive && s.Role == RoleSheriff {
			return s
		}
	}
	return nil
}
