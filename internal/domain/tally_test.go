package domain

import "testing"

func TestResolveDayVote(t *testing.T) {
	tests := []struct {
		name  string
		votes map[int]int
		want  int
	}{
		{"no ballots", map[int]int{}, 0},
		{"single vote is not enough", map[int]int{1: 3}, 0},
		{"clear majority", map[int]int{1: 3, 2: 3, 4: 5}, 3},
		{"tied top counts", map[int]int{1: 3, 2: 3, 4: 5, 5: 5}, 0},
		{"three way tie", map[int]int{1: 2, 3: 4, 5: 6}, 0},
		{"two against one", map[int]int{1: 4, 2: 4, 3: 5}, 4},
		{"unanimous", map[int]int{1: 2, 3: 2, 4: 2, 5: 2}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveDayVote(tc.votes); got != tc.want {
				t.Fatalf("ResolveDayVote(%v) = %d, want %d", tc.votes, got, tc.want)
			}
		})
	}
}

func TestResolveNightVote(t *testing.T) {
	tests := []struct {
		name  string
		votes map[int]int
		want  int
	}{
		{"no ballots", map[int]int{}, 0},
		{"single ballot kills", map[int]int{1: 3}, 3},
		{"plurality wins", map[int]int{1: 3, 2: 3, 4: 5}, 3},
		{"tie breaks to lowest seat id", map[int]int{1: 7, 2: 4}, 4},
		{"unanimous", map[int]int{1: 6, 2: 6, 3: 6}, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveNightVote(tc.votes); got != tc.want {
				t.Fatalf("ResolveNightVote(%v) = %d, want %d", tc.votes, got, tc.want)
			}
		})
	}
}
