package domain

// EvaluateWinner applies the win rules to the roster, in precedence order:
//
//  1. Outside test mode a dead human seat ends the game at once for the
//     opposing faction, regardless of roster counts.
//  2. Mafia wins when living mafia reach parity with the living town.
//  3. Town wins when no mafia remains alive.
//
// Otherwise the game continues.
func EvaluateWinner(seats []*Seat, testMode bool) Winner {
	if !testMode {
		if human := HumanSeat(seats); human != nil && !human.Alive {
			if human.Role == RoleMafia {
				return WinnerCivilians
			}
			return WinnerMafia
		}
	}

	mafia := len(LivingMafia(seats))
	town := len(LivingTown(seats))

	if mafia >= town {
		return WinnerMafia
	}
	if mafia == 0 {
		return WinnerCivilians
	}
	return WinnerNone
}
