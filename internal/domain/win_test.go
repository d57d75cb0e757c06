package domain

import "testing"

func seatsFor(roles []Role, alive []bool, humanIdx int) []*Seat {
	seats := make([]*Seat, len(roles))
	for i := range roles {
		seats[i] = &Seat{ID: i + 1, Role: roles[i], Alive: alive[i], Bot: i != humanIdx}
	}
	return seats
}

func TestEvaluateWinner(t *testing.T) {
	tests := []struct {
		name     string
		roles    []Role
		alive    []bool
		humanIdx int
		testMode bool
		want     Winner
	}{
		{
			name:     "game continues",
			roles:    []Role{RoleCivilian, RoleMafia, RoleSheriff, RoleCivilian},
			alive:    []bool{true, true, true, true},
			humanIdx: 0,
			want:     WinnerNone,
		},
		{
			name:     "mafia parity",
			roles:    []Role{RoleCivilian, RoleMafia, RoleSheriff, RoleCivilian},
			alive:    []bool{false, true, true, false},
			humanIdx: 2,
			want:     WinnerMafia,
		},
		{
			name:     "no mafia left",
			roles:    []Role{RoleCivilian, RoleMafia, RoleSheriff, RoleCivilian},
			alive:    []bool{true, false, true, true},
			humanIdx: 0,
			want:     WinnerCivilians,
		},
		{
			name:     "dead town human ends it for mafia",
			roles:    []Role{RoleCivilian, RoleMafia, RoleSheriff, RoleCivilian, RoleCivilian, RoleCivilian},
			alive:    []bool{false, true, true, true, true, true},
			humanIdx: 0,
			want:     WinnerMafia,
		},
		{
			name:     "dead mafia human ends it for town",
			roles:    []Role{RoleMafia, RoleMafia, RoleSheriff, RoleCivilian, RoleCivilian, RoleCivilian},
			alive:    []bool{false, true, true, true, true, true},
			humanIdx: 0,
			want:     WinnerCivilians,
		},
		{
			name:     "test mode ignores human death",
			roles:    []Role{RoleCivilian, RoleMafia, RoleSheriff, RoleCivilian, RoleCivilian, RoleCivilian},
			alive:    []bool{false, true, true, true, true, true},
			humanIdx: 0,
			testMode: true,
			want:     WinnerNone,
		},
		{
			name:     "human death outranks mafia elimination",
			roles:    []Role{RoleMafia, RoleSheriff, RoleCivilian, RoleCivilian},
			alive:    []bool{false, true, false, true},
			humanIdx: 2,
			want:     WinnerMafia,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seats := seatsFor(tc.roles, tc.alive, tc.humanIdx)
			if got := EvaluateWinner(seats, tc.testMode); got != tc.want {
				t.Fatalf("EvaluateWinner() = %q, want %q", got, tc.want)
			}
		})
	}
}
