package app

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mafka/internal/bot"
	"mafka/internal/config"
	"mafka/internal/domain"
)

// Service contains the match use-cases operating on domain state. All
// methods mutate the passed game in place and return the events the
// transport layer should deliver.
type Service struct {
	rng *rand.Rand
	cfg *config.GameConfig
}

// NewService constructs a Service with the provided rng and config, or
// time-seeded and default ones.
func NewService(rng *rand.Rand, cfg *config.GameConfig) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{rng: rng, cfg: cfg}
}

var (
	ErrNameRequired  = errors.New("player name is required")
	ErrWrongPhase    = errors.New("action not valid in current phase")
	ErrUnknownSeat   = errors.New("seat not found")
	ErrSeatDead      = errors.New("seat is not alive")
	ErrNotMafia      = errors.New("seat is not mafia")
	ErrNotSheriff    = errors.New("seat is not the sheriff")
	ErrNotYourFloor  = errors.New("only the eliminated player may speak now")
	ErrInvalidTarget = errors.New("target is not a living seat")
	ErrGameOver      = errors.New("game is over")
)

const (
	msgGameStarted    = "The game has begun! Day 1 has come. You have %d seconds for discussion."
	msgVotingBegins   = "Voting begins. You have %d seconds to pick who you think is the mafia."
	msgNoElimination  = "No one was eliminated by the vote."
	msgNightFalls     = "Night falls. The town goes to sleep..."
	msgChosenForExile = "Player %s was chosen for elimination."
	msgEliminated     = "Player %s was eliminated. Their role: %s."
	msgMafiaWakes     = "The mafia wakes up. Discuss who you want to kill."
	msgMafiaChoose    = "Mafia, choose your victim."
	msgSheriffTurn    = "The sheriff's turn. Choose a player to investigate."
	msgMorning        = "Morning comes."
	msgNightKill      = "%s was killed during the night. Their role: %s."
	msgNobodyDied     = "No one died this night."
	msgNewDay         = "Day %d. You have %d seconds for discussion."
	msgMafiaWins      = "The mafia has won! They eliminated the town."
	msgTownWins       = "The town has won! All the mafia are eliminated."
	msgVoteAgainst    = "I vote against %s!"
	msgVoteKill       = "I vote to kill %s."
)

// StartGame builds a fresh game for one human and playerCount-1 bots
// and opens day one. In test mode the human seat is replaced by a bot
// and human-death rules are suspended.
func (s *Service) StartGame(playerName string, playerCount int, testMode bool, roster []bot.Identity) (*domain.Game, []Event, error) {
	if playerCount < domain.MinPlayers || playerCount > domain.MaxPlayers {
		return nil, nil, domain.ErrPlayerCount
	}
	if !testMode && playerName == "" {
		return nil, nil, ErrNameRequired
	}
	if len(roster) < playerCount-1 {
		roster = bot.Roster(s.rng, playerCount-1)
	}

	seats := make([]*domain.Seat, 0, playerCount)
	if testMode {
		seats = append(seats, &domain.Seat{ID: 1, Name: "You (Test)", Alive: true, Bot: true})
	} else {
		seats = append(seats, &domain.Seat{ID: 1, Name: playerName, Alive: true})
	}
	for i := 2; i <= playerCount; i++ {
		id := roster[i-2]
		seats = append(seats, &domain.Seat{ID: i, UserID: id.UserID, Name: id.Name, Alive: true, Bot: true})
	}

	mafiaCount := domain.MafiaCountFor(playerCount)
	if err := domain.AssignRoles(s.rng, seats, mafiaCount); err != nil {
		return nil, nil, err
	}

	g := &domain.Game{
		Phase:      domain.PhaseDay,
		Day:        1,
		Seats:      seats,
		Public:     domain.NewChatLog(nil),
		MafiaLog:   domain.NewChatLog(nil),
		Votes:      map[int]int{},
		MafiaVotes: map[int]int{},
		Checked:    map[int]domain.Role{},
		MafiaCount: mafiaCount,
		TestMode:   testMode,
	}
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseDay)

	var events []Event
	events = s.appendSystem(g, events, fmt.Sprintf(msgGameStarted, s.cfg.DaySeconds))
	events = append(events, s.phaseEvent(g))
	return g, events, nil
}

// Tick advances the phase timer by one second and fires whatever
// transition comes due. The transport calls it once per match tick.
func (s *Service) Tick(g *domain.Game) []Event {
	if g == nil || g.Over() {
		return nil
	}

	if g.AutoAdvance > 0 {
		g.AutoAdvance--
		if g.AutoAdvance == 0 {
			switch g.Phase {
			case domain.PhaseNight:
				return s.beginNightAction(g)
			case domain.PhaseResults:
				return s.resolveResults(g)
			}
		}
		return nil
	}

	if g.TimerRemaining > 0 {
		g.TimerRemaining--
		if g.TimerRemaining == 0 {
			return s.closePhase(g)
		}
	}
	return nil
}

// AdvancePhase lets the human cut a timed phase short. The day and the
// last word may always be skipped; the mafia chat only by a living
// mafia human, and the sheriff turn only once the human sheriff has a
// pick recorded.
func (s *Service) AdvancePhase(g *domain.Game) ([]Event, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	human := g.Human()

	switch g.Phase {
	case domain.PhaseDay, domain.PhaseLastWord:
	case domain.PhaseMafiaChat:
		if human == nil || !human.Alive || human.Role != domain.RoleMafia {
			return nil, ErrNotMafia
		}
	case domain.PhaseSheriffTurn:
		if human == nil || !human.Alive || human.Role != domain.RoleSheriff {
			return nil, ErrNotSheriff
		}
		if g.SelectedSeat == 0 {
			return nil, ErrWrongPhase
		}
	default:
		return nil, ErrWrongPhase
	}

	g.TimerRemaining = 0
	return s.closePhase(g), nil
}

// SendChat records a human chat message on the channel the current
// phase allows. During the day any living seat may speak, during the
// last word only the eliminated seat holds the floor, and the mafia
// channel is open to living mafia during the night chat.
func (s *Service) SendChat(g *domain.Game, seatID int, text string) ([]Event, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	seat := g.Seat(seatID)
	if seat == nil {
		return nil, ErrUnknownSeat
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	switch g.Phase {
	case domain.PhaseDay, domain.PhaseVoting:
		if !seat.Alive {
			return nil, ErrSeatDead
		}
		msg := g.Public.Append(seatID, text, false)
		return []Event{s.chatEvent(ChannelPublic, msg, nil)}, nil

	case domain.PhaseLastWord:
		if g.Eliminated == nil || g.Eliminated.ID != seatID {
			return nil, ErrNotYourFloor
		}
		msg := g.Public.Append(seatID, text, false)
		return []Event{s.chatEvent(ChannelPublic, msg, nil)}, nil

	case domain.PhaseMafiaChat:
		if !seat.Alive {
			return nil, ErrSeatDead
		}
		if seat.Role != domain.RoleMafia {
			return nil, ErrNotMafia
		}
		msg := g.MafiaLog.Append(seatID, text, false)
		return []Event{s.chatEvent(ChannelMafia, msg, s.mafiaRecipients(g))}, nil

	default:
		return nil, ErrWrongPhase
	}
}

// CastVote records a ballot. During the day vote any living seat may
// vote; during the mafia turn only living mafia vote, on the night
// ballot. Re-votes overwrite. Once every eligible voter has a ballot
// in, the phase closes early.
func (s *Service) CastVote(g *domain.Game, voterID, targetID int) ([]Event, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	voter := g.Seat(voterID)
	if voter == nil {
		return nil, ErrUnknownSeat
	}
	if !voter.Alive {
		return nil, ErrSeatDead
	}
	target := g.Seat(targetID)
	if target == nil || !target.Alive || targetID == voterID {
		return nil, ErrInvalidTarget
	}

	switch g.Phase {
	case domain.PhaseVoting:
		g.Votes[voterID] = targetID
		if len(g.Votes) >= len(domain.Living(g.Seats)) {
			return s.closeVoting(g), nil
		}
		return nil, nil

	case domain.PhaseMafiaTurn:
		if voter.Role != domain.RoleMafia {
			return nil, ErrNotMafia
		}
		if target.Role == domain.RoleMafia {
			return nil, ErrInvalidTarget
		}
		g.MafiaVotes[voterID] = targetID
		if len(g.MafiaVotes) >= len(domain.LivingMafia(g.Seats)) {
			return s.closeMafiaTurn(g), nil
		}
		return nil, nil

	default:
		return nil, ErrWrongPhase
	}
}

// SelectTarget records the human sheriff's investigation pick. The
// check itself resolves when the sheriff turn ends.
func (s *Service) SelectTarget(g *domain.Game, seatID, targetID int) ([]Event, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	if g.Phase != domain.PhaseSheriffTurn {
		return nil, ErrWrongPhase
	}
	seat := g.Seat(seatID)
	if seat == nil {
		return nil, ErrUnknownSeat
	}
	if !seat.Alive {
		return nil, ErrSeatDead
	}
	if seat.Role != domain.RoleSheriff {
		return nil, ErrNotSheriff
	}
	target := g.Seat(targetID)
	if target == nil || !target.Alive || targetID == seatID {
		return nil, ErrInvalidTarget
	}

	g.SelectedSeat = targetID
	return nil, nil
}

// BotBanter lets one bot take the floor in the public channel during
// the day. Triggers from the human's last message steer who answers
// and what about.
func (s *Service) BotBanter(g *domain.Game, triggers []bot.Category) []Event {
	if g.Phase != domain.PhaseDay || g.Over() {
		return nil
	}
	speaker := bot.PickSpeaker(s.rng, g, triggers)
	if speaker == nil {
		return nil
	}
	line := bot.DayUtterance(s.rng, g, speaker, triggers)
	msg := g.Public.Append(speaker.ID, line, false)
	return []Event{s.chatEvent(ChannelPublic, msg, nil)}
}

// BotMafiaBanter lets one mafia bot speak on the night channel.
func (s *Service) BotMafiaBanter(g *domain.Game) []Event {
	if g.Phase != domain.PhaseMafiaChat || g.Over() {
		return nil
	}
	var mafiaBots []*domain.Seat
	for _, m := range domain.LivingMafia(g.Seats) {
		if m.Bot {
			mafiaBots = append(mafiaBots, m)
		}
	}
	if len(mafiaBots) == 0 {
		return nil
	}
	speaker := mafiaBots[s.rng.Intn(len(mafiaBots))]
	line := bot.MafiaChatUtterance(s.rng, g, speaker)
	msg := g.MafiaLog.Append(speaker.ID, line, false)
	return []Event{s.chatEvent(ChannelMafia, msg, s.mafiaRecipients(g))}
}

// BotsCastDayVotes makes every living bot without a ballot vote now,
// announcing each ballot in the public channel. Closes the vote early
// when the table is complete.
func (s *Service) BotsCastDayVotes(g *domain.Game) []Event {
	if g.Phase != domain.PhaseVoting || g.Over() {
		return nil
	}

	var events []Event
	for _, b := range domain.Living(g.Seats) {
		if !b.Bot {
			continue
		}
		if _, voted := g.Votes[b.ID]; voted {
			continue
		}
		targetID := bot.ChooseDayVote(s.rng, g, b)
		if targetID == 0 {
			continue
		}
		g.Votes[b.ID] = targetID
		msg := g.Public.Append(b.ID, fmt.Sprintf(msgVoteAgainst, g.Seat(targetID).Name), false)
		events = append(events, s.chatEvent(ChannelPublic, msg, nil))
	}

	if len(g.Votes) >= len(domain.Living(g.Seats)) {
		events = append(events, s.closeVoting(g)...)
	}
	return events
}

// BotsCastNightVotes makes every living mafia bot without a ballot
// pick a victim, announcing it on the mafia channel.
func (s *Service) BotsCastNightVotes(g *domain.Game) []Event {
	if g.Phase != domain.PhaseMafiaTurn || g.Over() {
		return nil
	}

	var events []Event
	for _, b := range domain.LivingMafia(g.Seats) {
		if !b.Bot {
			continue
		}
		if _, voted := g.MafiaVotes[b.ID]; voted {
			continue
		}
		targetID := bot.ChooseNightKill(s.rng, g, b)
		if targetID == 0 {
			continue
		}
		g.MafiaVotes[b.ID] = targetID
		msg := g.MafiaLog.Append(b.ID, fmt.Sprintf(msgVoteKill, g.Seat(targetID).Name), false)
		events = append(events, s.chatEvent(ChannelMafia, msg, s.mafiaRecipients(g)))
	}

	if len(g.MafiaVotes) >= len(domain.LivingMafia(g.Seats)) {
		events = append(events, s.closeMafiaTurn(g)...)
	}
	return events
}

// closePhase fires the transition the expiring timer was counting
// toward.
func (s *Service) closePhase(g *domain.Game) []Event {
	switch g.Phase {
	case domain.PhaseDay:
		return s.beginVoting(g)
	case domain.PhaseVoting:
		return s.closeVoting(g)
	case domain.PhaseLastWord:
		return s.beginNight(g)
	case domain.PhaseMafiaChat:
		return s.beginMafiaTurn(g)
	case domain.PhaseMafiaTurn:
		return s.closeMafiaTurn(g)
	case domain.PhaseSheriffTurn:
		return s.closeSheriffTurn(g)
	}
	return nil
}

func (s *Service) beginVoting(g *domain.Game) []Event {
	g.Phase = domain.PhaseVoting
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseVoting)
	events := s.appendSystem(g, nil, fmt.Sprintf(msgVotingBegins, s.cfg.VotingSeconds))
	return append(events, s.phaseEvent(g))
}

func (s *Service) closeVoting(g *domain.Game) []Event {
	if g.Phase != domain.PhaseVoting {
		return nil
	}
	if events, dead := s.humanDeathEnds(g); dead {
		return events
	}

	eliminatedID := domain.ResolveDayVote(g.Votes)
	g.Votes = map[int]int{}
	g.TimerRemaining = 0

	eliminated := g.Seat(eliminatedID)
	if eliminated == nil {
		events := s.appendSystem(g, nil, msgNoElimination)
		return append(events, s.beginNight(g)...)
	}
	events := s.appendSystem(g, nil, fmt.Sprintf(msgChosenForExile, eliminated.Name))

	if eliminated.Bot {
		msg := g.Public.Append(eliminated.ID, bot.LastWords(s.rng, eliminated), false)
		events = append(events, s.chatEvent(ChannelPublic, msg, nil))
	}

	eliminated.Alive = false
	g.Eliminated = eliminated

	if winner := domain.EvaluateWinner(g.Seats, g.TestMode); winner != domain.WinnerNone {
		events = s.appendSystem(g, events,
			fmt.Sprintf(msgEliminated, eliminated.Name, eliminated.Role.DisplayName()))
		return append(events, s.finishGame(g, winner)...)
	}

	g.Phase = domain.PhaseLastWord
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseLastWord)
	return append(events, s.phaseEvent(g))
}

func (s *Service) beginNight(g *domain.Game) []Event {
	if events, dead := s.humanDeathEnds(g); dead {
		return events
	}

	var events []Event
	if g.Eliminated != nil && g.Phase == domain.PhaseLastWord {
		events = s.appendSystem(g, events,
			fmt.Sprintf(msgEliminated, g.Eliminated.Name, g.Eliminated.Role.DisplayName()))
	}
	events = s.appendSystem(g, events, msgNightFalls)
	g.Eliminated = nil

	if winner := domain.EvaluateWinner(g.Seats, g.TestMode); winner != domain.WinnerNone {
		return append(events, s.finishGame(g, winner)...)
	}

	g.Phase = domain.PhaseNight
	g.TimerRemaining = 0
	g.AutoAdvance = 2
	g.SelectedSeat = 0
	g.NightTarget = 0
	g.LastChecked = 0
	return append(events, s.phaseEvent(g))
}

// beginNightAction routes the night to the mafia chat, or straight to
// the sheriff when no mafia remains to convene.
func (s *Service) beginNightAction(g *domain.Game) []Event {
	if len(domain.LivingMafia(g.Seats)) == 0 {
		return s.beginSheriffTurn(g)
	}

	g.Phase = domain.PhaseMafiaChat
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseMafiaChat)
	g.MafiaLog.Reset()
	msg := g.MafiaLog.Append(domain.SystemAuthorID, msgMafiaWakes, true)
	return []Event{
		s.chatEvent(ChannelMafia, msg, s.mafiaRecipients(g)),
		s.phaseEvent(g),
	}
}

func (s *Service) beginMafiaTurn(g *domain.Game) []Event {
	g.Phase = domain.PhaseMafiaTurn
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseMafiaTurn)
	msg := g.MafiaLog.Append(domain.SystemAuthorID, msgMafiaChoose, true)
	return []Event{
		s.chatEvent(ChannelMafia, msg, s.mafiaRecipients(g)),
		s.phaseEvent(g),
	}
}

func (s *Service) closeMafiaTurn(g *domain.Game) []Event {
	if g.Phase != domain.PhaseMafiaTurn {
		return nil
	}
	g.NightTarget = domain.ResolveNightVote(g.MafiaVotes)
	g.MafiaVotes = map[int]int{}
	return s.beginSheriffTurn(g)
}

func (s *Service) beginSheriffTurn(g *domain.Game) []Event {
	g.Phase = domain.PhaseSheriffTurn
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseSheriffTurn)
	events := s.appendSystem(g, nil, msgSheriffTurn)
	return append(events, s.phaseEvent(g))
}

func (s *Service) closeSheriffTurn(g *domain.Game) []Event {
	if g.Phase != domain.PhaseSheriffTurn {
		return nil
	}

	sheriff := domain.LivingSheriff(g.Seats)
	if sheriff != nil {
		targetID := 0
		if sheriff.Bot {
			targetID = bot.ChooseInvestigation(s.rng, g, sheriff)
		} else {
			targetID = g.SelectedSeat
		}
		if target := g.Seat(targetID); target != nil && target.Alive && targetID != sheriff.ID {
			g.Checked[targetID] = target.Role
			g.LastChecked = targetID
		}
	}
	g.SelectedSeat = 0

	g.Phase = domain.PhaseResults
	g.TimerRemaining = 0
	g.AutoAdvance = 1
	return []Event{s.phaseEvent(g)}
}

// resolveResults applies the deferred night kill, reports the morning,
// and either ends the game or opens the next day.
func (s *Service) resolveResults(g *domain.Game) []Event {
	if events, dead := s.humanDeathEnds(g); dead {
		return events
	}

	var killed *domain.Seat
	if target := g.Seat(g.NightTarget); target != nil && target.Alive {
		target.Alive = false
		killed = target
	}
	g.NightTarget = 0

	events := s.appendSystem(g, nil, msgMorning)
	if killed != nil {
		events = s.appendSystem(g, events,
			fmt.Sprintf(msgNightKill, killed.Name, killed.Role.DisplayName()))
	} else {
		events = s.appendSystem(g, events, msgNobodyDied)
	}

	if sheriff := domain.LivingSheriff(g.Seats); sheriff != nil && !sheriff.Bot && g.LastChecked != 0 {
		if target := g.Seat(g.LastChecked); target != nil {
			events = append(events, Event{
				Kind: EventSheriffResult,
				Payload: SheriffResultPayload{
					TargetID:   target.ID,
					TargetName: target.Name,
					IsMafia:    target.Role == domain.RoleMafia,
				},
				Recipients: []int{sheriff.ID},
			})
		}
	}
	g.LastChecked = 0

	if events2, dead := s.humanDeathEnds(g); dead {
		return append(events, events2...)
	}
	if winner := domain.EvaluateWinner(g.Seats, g.TestMode); winner != domain.WinnerNone {
		g.Day++
		return append(events, s.finishGame(g, winner)...)
	}

	g.Day++
	g.Phase = domain.PhaseDay
	g.TimerRemaining = s.cfg.PhaseSeconds(domain.PhaseDay)
	events = s.appendSystem(g, events, fmt.Sprintf(msgNewDay, g.Day, s.cfg.DaySeconds))
	return append(events, s.phaseEvent(g))
}

// humanDeathEnds applies the human-death precedence rule: outside test
// mode a dead human ends the session for the opposing faction before
// any other resolution runs.
func (s *Service) humanDeathEnds(g *domain.Game) ([]Event, bool) {
	if g.TestMode {
		return nil, false
	}
	human := g.Human()
	if human == nil || human.Alive {
		return nil, false
	}

	events := s.appendSystem(g, nil,
		fmt.Sprintf(msgEliminated, human.Name, human.Role.DisplayName()))

	winner := domain.WinnerMafia
	if human.Role == domain.RoleMafia {
		winner = domain.WinnerCivilians
	}
	return append(events, s.finishGame(g, winner)...), true
}

func (s *Service) finishGame(g *domain.Game, winner domain.Winner) []Event {
	text := msgTownWins
	if winner == domain.WinnerMafia {
		text = msgMafiaWins
	}
	events := s.appendSystem(g, nil, text)

	g.Phase = domain.PhaseGameOver
	g.Winner = winner
	g.TimerRemaining = 0
	g.AutoAdvance = 0
	g.Votes = map[int]int{}
	g.MafiaVotes = map[int]int{}

	events = append(events, Event{Kind: EventGameOver, Payload: GameOverPayload{Winner: winner}})
	return append(events, s.phaseEvent(g))
}

func (s *Service) appendSystem(g *domain.Game, events []Event, text string) []Event {
	msg := g.Public.Append(domain.SystemAuthorID, text, true)
	return append(events, s.chatEvent(ChannelPublic, msg, nil))
}

func (s *Service) chatEvent(channel string, msg domain.Message, recipients []int) Event {
	return Event{
		Kind:       EventChatMessage,
		Payload:    ChatMessagePayload{Channel: channel, Message: msg},
		Recipients: recipients,
	}
}

func (s *Service) phaseEvent(g *domain.Game) Event {
	return Event{
		Kind: EventPhaseChanged,
		Payload: PhaseChangedPayload{
			Phase:        g.Phase,
			Day:          g.Day,
			TimerSeconds: g.TimerRemaining,
		},
	}
}

func (s *Service) mafiaRecipients(g *domain.Game) []int {
	var ids []int
	for _, seat := range g.Seats {
		if seat.Role == domain.RoleMafia {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}
