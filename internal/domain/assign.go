package domain

import (
	"errors"
	"math/rand"
)

// MinPlayers and MaxPlayers bound the table size accepted at setup.
const (
	MinPlayers = 4
	MaxPlayers = 10
)

// ErrPlayerCount is returned when the requested table size is out of range.
var ErrPlayerCount = errors.New("player count must be between 4 and 10")

// AssignRoles deals mafiaCount mafia seats, one sheriff, and civilians
// for the remainder. The seat list is shuffled before labeling and once
// more after, so roles carry no positional correlation with seat ids.
func AssignRoles(rng *rand.Rand, seats []*Seat, mafiaCount int) error {
	n := len(seats)
	if n < MinPlayers || n > MaxPlayers {
		return ErrPlayerCount
	}

	order := make([]*Seat, n)
	copy(order, seats)
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	for i, s := range order {
		switch {
		case i < mafiaCount:
			s.Role = RoleMafia
		case i == mafiaCount:
			s.Role = RoleSheriff
		default:
			s.Role = RoleCivilian
		}
	}

	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return nil
}
