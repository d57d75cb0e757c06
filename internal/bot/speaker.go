package bot

import (
	"fmt"
	"math/rand"

	"mafka/internal/domain"
)

func pickSeat(rng *rand.Rand, seats []*domain.Seat) *domain.Seat {
	if len(seats) == 0 {
		return nil
	}
	return seats[rng.Intn(len(seats))]
}

func pickLine(rng *rand.Rand, lines []string) string {
	if len(lines) == 0 {
		return fallbackLine
	}
	return lines[rng.Intn(len(lines))]
}

// PickSpeaker chooses which living bot takes the floor during the day.
// Triggers bias the choice toward the bots with a stake in the topic:
// the sheriff reacts to sheriff talk, mafia reacts to accusations, and
// anyone may jump into a defense exchange.
func PickSpeaker(rng *rand.Rand, g *domain.Game, triggers []Category) *domain.Seat {
	var bots []*domain.Seat
	for _, s := range domain.Living(g.Seats) {
		if s.Bot {
			bots = append(bots, s)
		}
	}
	if len(bots) == 0 {
		return nil
	}

	if len(triggers) > 0 {
		var relevant []*domain.Seat
		for _, b := range bots {
			switch {
			case hasTrigger(triggers, CategorySheriff) && b.Role == domain.RoleSheriff:
				relevant = append(relevant, b)
			case hasTrigger(triggers, CategoryAccusation) && b.Role == domain.RoleMafia:
				relevant = append(relevant, b)
			case hasTrigger(triggers, CategoryDefense):
				relevant = append(relevant, b)
			}
		}
		if len(relevant) > 0 {
			return pickSeat(rng, relevant)
		}
	}
	return pickSeat(rng, bots)
}

// categoryFor maps the triggered topics to the phrase category the
// speaker answers with. Accusations outrank defenses, the sheriff
// category applies only to the actual sheriff.
func categoryFor(triggers []Category, role domain.Role) Category {
	switch {
	case hasTrigger(triggers, CategoryAccusation):
		return CategoryAccusation
	case hasTrigger(triggers, CategoryDefense):
		return CategoryDefense
	case hasTrigger(triggers, CategorySheriff) && role == domain.RoleSheriff:
		return CategorySheriff
	case hasTrigger(triggers, CategoryStrategy):
		return CategoryStrategy
	default:
		return CategoryDefault
	}
}

// DayUtterance produces the speaker's line for the public channel. A
// bot sheriff idling in small talk has a chance to drop a veiled hint
// once a check has confirmed a still-living mafioso; a mafia bot in the
// same situation has a chance to discredit whoever sounds like the
// sheriff.
func DayUtterance(rng *rand.Rand, g *domain.Game, speaker *domain.Seat, triggers []Category) string {
	cat := categoryFor(triggers, speaker.Role)

	if cat == CategoryDefault {
		switch speaker.Role {
		case domain.RoleSheriff:
			if suspect := confirmedMafia(g); suspect != nil && rng.Float64() > 0.5 {
				return fmt.Sprintf(pickLine(rng, sheriffHintLines), suspect.Name)
			}
		case domain.RoleMafia:
			if tell := suspectedSheriff(rng, g, speaker); tell != nil && rng.Float64() > 0.5 {
				return fmt.Sprintf(pickLine(rng, discreditLines), tell.Name)
			}
		}
	}
	return Phrase(rng, speaker.Role, PersonalityFor(speaker.ID), cat)
}

// Phrase draws one line from the role's bank for the given category,
// falling back to the default bank when the category has no entries.
func Phrase(rng *rand.Rand, role domain.Role, p Personality, cat Category) string {
	banks, ok := phraseBanks[role]
	if !ok {
		return fallbackLine
	}
	col := int(p) % personalityCount

	if lines := banks[cat][col]; len(lines) > 0 {
		return pickLine(rng, lines)
	}
	if lines := banks[CategoryDefault][col]; len(lines) > 0 {
		return pickLine(rng, lines)
	}
	return fallbackLine
}

// MafiaChatUtterance produces one line of night-channel chatter for a
// mafia bot. Half the time the bot names a concrete victim; otherwise
// it muses in its personality's voice.
func MafiaChatUtterance(rng *rand.Rand, g *domain.Game, speaker *domain.Seat) string {
	var targets []*domain.Seat
	for _, s := range domain.Living(g.Seats) {
		if s.Role != domain.RoleMafia {
			targets = append(targets, s)
		}
	}

	if len(targets) > 0 && rng.Float64() > 0.5 {
		target := pickSeat(rng, targets)
		return fmt.Sprintf(pickLine(rng, mafiaTargetLines), target.Name)
	}

	col := int(PersonalityFor(speaker.ID)) % personalityCount
	return pickLine(rng, mafiaChatLines[col])
}

// LastWords returns an eliminated bot's parting line. Mafia concede,
// townsfolk protest.
func LastWords(rng *rand.Rand, eliminated *domain.Seat) string {
	if eliminated.Role == domain.RoleMafia {
		return mafiaLastWord
	}
	return pickLine(rng, lastWordLines)
}

func confirmedMafia(g *domain.Game) *domain.Seat {
	for _, s := range g.Seats {
		if s.Alive && g.Checked[s.ID] == domain.RoleMafia {
			return s
		}
	}
	return nil
}
