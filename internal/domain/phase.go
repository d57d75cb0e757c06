package domain

// Phase represents the lifecycle stage of a session.
type Phase string

const (
	// PhaseSetup is the pre-game state before roles are dealt.
	PhaseSetup Phase = "setup"
	// PhaseDay is the open discussion period.
	PhaseDay Phase = "day"
	// PhaseVoting is the day lynch vote.
	PhaseVoting Phase = "voting"
	// PhaseLastWord gives the lynched seat the floor for a parting statement.
	PhaseLastWord Phase = "last-word"
	// PhaseNight is the transitional beat before night actions begin.
	PhaseNight Phase = "night"
	// PhaseMafiaChat is the mafia-only discussion of the kill.
	PhaseMafiaChat Phase = "mafia-chat"
	// PhaseMafiaTurn is the mafia kill vote.
	PhaseMafiaTurn Phase = "mafia-turn"
	// PhaseSheriffTurn is the sheriff's investigation window.
	PhaseSheriffTurn Phase = "sheriff-turn"
	// PhaseResults reveals the night's outcome before the next day.
	PhaseResults Phase = "results"
	// PhaseGameOver is terminal; a winner is set and no intents apply.
	PhaseGameOver Phase = "game-over"
)

// Winner names the faction that won the session.
type Winner string

const (
	// WinnerNone means the game continues.
	WinnerNone Winner = ""
	// WinnerMafia means the mafia reached parity with the town.
	WinnerMafia Winner = "mafia"
	// WinnerCivilians means every mafioso is dead.
	WinnerCivilians Winner = "civilians"
)
