package bot

import (
	"math/rand"

	"mafka/internal/domain"
)

// sheriffTellPatterns mark a player whose table talk sounds like a
// sheriff sharing observations. Mafia bots prioritize such players.
var sheriffTellPatterns = []string{"suspicious", "i checked", "i think that"}

// innocencePatterns mark loud innocence claims, which town-side bots
// read as a tell rather than a defense.
var innocencePatterns = []string{"i'm not mafia", "i'm innocent", "not me", "definitely not me"}

// ChooseDayVote picks the seat a bot votes against during the day, or
// zero when nobody qualifies. Each role reads the table differently:
// mafia hunts sheriff-sounding players, the sheriff votes on hard check
// results first, civilians go after the quiet and the over-defensive.
func ChooseDayVote(rng *rand.Rand, g *domain.Game, voter *domain.Seat) int {
	living := domain.Living(g.Seats)

	switch voter.Role {
	case domain.RoleMafia:
		var tells, others []*domain.Seat
		for _, s := range living {
			if s.ID == voter.ID || s.Role == domain.RoleMafia {
				continue
			}
			if g.Public.SeatSaidAny(s.ID, sheriffTellPatterns) {
				tells = append(tells, s)
			}
			others = append(others, s)
		}
		if t := pickSeat(rng, tells); t != nil {
			return t.ID
		}
		if t := pickSeat(rng, others); t != nil {
			return t.ID
		}
		return 0

	case domain.RoleSheriff:
		for _, s := range living {
			if g.Checked[s.ID] == domain.RoleMafia {
				return s.ID
			}
		}
	}

	var suspicious, others []*domain.Seat
	for _, s := range living {
		if s.ID == voter.ID {
			continue
		}
		if g.Public.CountBySeat(s.ID) < 2 || g.Public.SeatSaidAny(s.ID, innocencePatterns) {
			suspicious = append(suspicious, s)
		}
		others = append(others, s)
	}
	if t := pickSeat(rng, suspicious); t != nil {
		return t.ID
	}
	if t := pickSeat(rng, others); t != nil {
		return t.ID
	}
	return 0
}

// suspectedSheriff returns a living non-mafia seat whose public talk
// matches sheriff phrasing, or nil.
func suspectedSheriff(rng *rand.Rand, g *domain.Game, viewer *domain.Seat) *domain.Seat {
	var tells []*domain.Seat
	for _, s := range domain.Living(g.Seats) {
		if s.ID == viewer.ID || s.Role == domain.RoleMafia {
			continue
		}
		if g.Public.SeatSaidAny(s.ID, sheriffTellPatterns) {
			tells = append(tells, s)
		}
	}
	return pickSeat(rng, tells)
}

// ChooseNightKill picks a mafia bot's kill ballot, or zero when no
// target remains. Sheriff-sounding players die first, then the most
// talkative, then anyone outside the family.
func ChooseNightKill(rng *rand.Rand, g *domain.Game, voter *domain.Seat) int {
	var tells, active, targets []*domain.Seat
	for _, s := range domain.Living(g.Seats) {
		if s.Role == domain.RoleMafia {
			continue
		}
		if g.Public.SeatSaidAny(s.ID, sheriffTellPatterns) {
			tells = append(tells, s)
		}
		if g.Public.CountBySeat(s.ID) > 2 {
			active = append(active, s)
		}
		targets = append(targets, s)
	}

	if t := pickSeat(rng, tells); t != nil {
		return t.ID
	}
	if t := pickSeat(rng, active); t != nil {
		return t.ID
	}
	if t := pickSeat(rng, targets); t != nil {
		return t.ID
	}
	return 0
}

// ChooseInvestigation picks the seat a bot sheriff checks tonight, or
// zero with nobody left to check. Unchecked players acting suspicious
// come first, then any unchecked player, then anyone at all.
func ChooseInvestigation(rng *rand.Rand, g *domain.Game, sheriff *domain.Seat) int {
	var suspicious, unchecked, anyone []*domain.Seat
	for _, s := range domain.Living(g.Seats) {
		if s.ID == sheriff.ID {
			continue
		}
		anyone = append(anyone, s)
		if _, done := g.Checked[s.ID]; done {
			continue
		}
		unchecked = append(unchecked, s)
		if g.Public.CountBySeat(s.ID) < 2 || g.Public.SeatSaidAny(s.ID, innocencePatterns) {
			suspicious = append(suspicious, s)
		}
	}

	if t := pickSeat(rng, suspicious); t != nil {
		return t.ID
	}
	if t := pickSeat(rng, unchecked); t != nil {
		return t.ID
	}
	if t := pickSeat(rng, anyone); t != nil {
		return t.ID
	}
	return 0
}
