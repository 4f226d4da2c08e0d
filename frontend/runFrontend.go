package frontend

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"habitboard/config"
	"habitboard/core/storage"
	"habitboard/frontend/cmd"
	"habitboard/lib/logging"
	"habitboard/session"
	"habitboard/tracker"
)

// RunFrontend wires the document store, session and tracker together and
// hands control to the interactive shell.
func RunFrontend() {
	// A missing .env is fine; config falls back to defaults and env vars.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()
	store, err := storage.NewStorage(ctx, cfg.Mongo.Database, cfg.Mongo.URI)
	if err != nil {
		log.Error().Err(err).Msg("could not reach the document store")
		os.Exit(1)
	}
	defer store.Disconnect(context.Background())

	sess := session.New(store, log)
	trk := tracker.New(store, sess, log)

	cmd.Init(sess, trk)
	cmd.Execute()
}
