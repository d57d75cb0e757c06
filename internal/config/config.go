package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"mafka/internal/domain"
)

// GameConfig carries the tunable pacing of a session. Durations are in
// seconds; delays pace the bot scheduler inside a phase.
type GameConfig struct {
	DaySeconds         int `json:"day_seconds"`
	VotingSeconds      int `json:"voting_seconds"`
	LastWordSeconds    int `json:"last_word_seconds"`
	MafiaChatSeconds   int `json:"mafia_chat_seconds"`
	MafiaTurnSeconds   int `json:"mafia_turn_seconds"`
	SheriffTurnSeconds int `json:"sheriff_turn_seconds"`

	// BotChatDelayMin/Max bound the pause before a bot takes the floor.
	BotChatDelayMinSeconds int `json:"bot_chat_delay_min_seconds"`
	BotChatDelayMaxSeconds int `json:"bot_chat_delay_max_seconds"`
	// BotVoteDelaySeconds is the pause before bots start casting ballots.
	BotVoteDelaySeconds int `json:"bot_vote_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the built-in pacing used when no config file ships
// with the module.
func Default() *GameConfig {
	return &GameConfig{
		DaySeconds:             30,
		VotingSeconds:          10,
		LastWordSeconds:        15,
		MafiaChatSeconds:       20,
		MafiaTurnSeconds:       15,
		SheriffTurnSeconds:     15,
		BotChatDelayMinSeconds: 2,
		BotChatDelayMaxSeconds: 5,
		BotVoteDelaySeconds:    2,
	}
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Default()
		if err := json.Unmarshal(data, c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, falling back to
// the defaults when no file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// PhaseSeconds returns the timer for a phase, or zero for phases that
// run untimed.
func (c *GameConfig) PhaseSeconds(phase domain.Phase) int {
	switch phase {
	case domain.PhaseDay:
		return c.DaySeconds
	case domain.PhaseVoting:
		return c.VotingSeconds
	case domain.PhaseLastWord:
		return c.LastWordSeconds
	case domain.PhaseMafiaChat:
		return c.MafiaChatSeconds
	case domain.PhaseMafiaTurn:
		return c.MafiaTurnSeconds
	case domain.PhaseSheriffTurn:
		return c.SheriffTurnSeconds
	default:
		return 0
	}
}
