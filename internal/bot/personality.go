package bot

// Personality selects which column of the phrase banks a bot speaks
// from. It is a stable function of the seat id, so a bot keeps one
// voice for the whole session.
type Personality int

const (
	Aggressive Personality = iota
	Defensive
	Analytical
	Calm

	personalityCount = 4
)

// PersonalityFor derives the seat's fixed personality.
func PersonalityFor(seatID int) Personality {
	return Personality(seatID % personalityCount)
}
