package domain

import "sort"

// ResolveDayVote returns the seat id eliminated by the day lynch vote,
// or zero for no elimination. A seat is eliminated only when it holds a
// unique maximum of more than one vote; a shared top count or a leading
// count of one eliminates nobody. The deadlock-avoidance threshold is
// deliberate and differs from the night rule below.
func ResolveDayVote(votes map[int]int) int {
	counts := make(map[int]int, len(votes))
	for _, target := range votes {
		counts[target]++
	}

	top, topTarget, shared := 0, 0, false
	for target, n := range counts {
		switch {
		case n > top:
			top, topTarget, shared = n, target, false
		case n == top:
			shared = true
		}
	}

	if topTarget == 0 || top <= 1 || shared {
		return 0
	}
	return topTarget
}

// ResolveNightVote returns the mafia's kill target, or zero when no
// ballots were cast. Unlike the day rule, any plurality of at least one
// vote selects a victim; ties break deterministically in favor of the
// lowest target seat id.
func ResolveNightVote(votes map[int]int) int {
	counts := make(map[int]int, len(votes))
	for _, target := range votes {
		counts[target]++
	}

	targets := make([]int, 0, len(counts))
	for target := range counts {
		targets = append(targets, target)
	}
	sort.Ints(targets)

	top, topTarget := 0, 0
	for _, target := range targets {
		if counts[target] > top {
			top, topTarget = counts[target], target
		}
	}
	return topTarget
}
