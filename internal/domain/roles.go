package domain

// Role identifies a seat's allegiance and night ability.
type Role string

const (
	// RoleCivilian is an ordinary town seat with no night action.
	RoleCivilian Role = "civilian"
	// RoleMafia knows its teammates and votes on a night kill.
	RoleMafia Role = "mafia"
	// RoleSheriff investigates one seat's role each night.
	RoleSheriff Role = "sheriff"
)

// DisplayName returns the narrator-facing name of the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleCivilian:
		return "Civilian"
	case RoleMafia:
		return "Mafia"
	case RoleSheriff:
		return "Sheriff"
	}
	return "Unknown"
}

// IsTown reports whether the role belongs to the town faction.
func (r Role) IsTown() bool {
	return r != RoleMafia
}

// MafiaCountFor returns the number of mafia seats dealt for n players:
// one per four seats with a minimum of one, except the full ten-player
// table which seats a third mafioso.
func MafiaCountFor(n int) int {
	if n == 10 {
		return 3
	}
	m := n / 4
	if m < 1 {
		m = 1
	}
	return m
}
