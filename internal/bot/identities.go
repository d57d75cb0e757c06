package bot

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Identity is one provisioned bot profile for a match session.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

var (
	namePool []string
	loadOnce sync.Once
	loadErr  error
)

var defaultNames = []string{
	"Alex", "Maria", "Dmitri", "Elena", "Ivan",
	"Olga", "Sergei", "Anna", "Pavel", "Natasha",
	"Viktor", "Tanya", "Boris", "Katya", "Mikhail",
}

// LoadNames loads the bot name pool from the given path. The pool ships
// as a plain JSON string array; a missing or malformed file keeps the
// built-in defaults so a match can always be provisioned.
func LoadNames(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot names: %w", err)
			return
		}

		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot names: %w", err)
			return
		}
		if len(names) > 0 {
			namePool = names
		}
	})
	return loadErr
}

// Roster mints n bot identities with distinct names drawn from the pool.
// When n exceeds the pool size, names repeat with a numeric suffix.
func Roster(rng *rand.Rand, n int) []Identity {
	pool := namePool
	if len(pool) == 0 {
		pool = defaultNames
	}

	order := rng.Perm(len(pool))
	roster := make([]Identity, n)
	for i := 0; i < n; i++ {
		name := pool[order[i%len(order)]]
		if i >= len(order) {
			name = fmt.Sprintf("%s %d", name, i/len(order)+1)
		}
		roster[i] = Identity{
			UserID: uuid.NewString(),
			Name:   name,
		}
	}
	return roster
}
