package bot

import "strings"

var triggerKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryAccusation, []string{"mafia", "suspect", "kill", "vote"}},
	{CategoryDefense, []string{"innocent", "not me", "i'm not", "prove"}},
	{CategorySheriff, []string{"checked", "sheriff", "role"}},
	{CategoryStrategy, []string{"let's", "suggest", "think", "plan"}},
}

// AnalyzeTriggers scans one chat message for the keywords that provoke
// bot reactions and returns the matched categories in priority order.
func AnalyzeTriggers(text string) []Category {
	lower := strings.ToLower(text)

	var triggers []Category
	for _, tk := range triggerKeywords {
		for _, w := range tk.words {
			if strings.Contains(lower, w) {
				triggers = append(triggers, tk.category)
				break
			}
		}
	}
	return triggers
}

func hasTrigger(triggers []Category, c Category) bool {
	for _, t := range triggers {
		if t == c {
			return true
		}
	}
	return false
}
