package main

import (
	"context"
	"database/sql"

	"mafka/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule is the symbol Nakama resolves when it loads the plugin
// binary. All RPC and match registration lives in the adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is never invoked; Nakama loads the module via InitModule. It exists
// only so the package links under the default build mode.
func main() {}
