/*
 * file: main.go
 * package: main
 * description:
 *     This file initializes the application by setting up dependencies,
 *     configuring the database, and launching the websocket server. It
 *     follows a dependency injection pattern to wire together components,
 *     promoting a decoupled and testable architecture.
 */

package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/arborly/matchkeep/internal/adapters/apikey"
	"github.com/arborly/matchkeep/internal/adapters/db"
	"github.com/arborly/matchkeep/internal/adapters/ws"
	"github.com/arborly/matchkeep/internal/core/dispatch"
	"github.com/arborly/matchkeep/internal/core/engine"
	"github.com/arborly/matchkeep/internal/core/games"
	"github.com/arborly/matchkeep/internal/core/session"
	"github.com/arborly/matchkeep/internal/core/tournament"
	"github.com/arborly/matchkeep/internal/infra/config"
	"github.com/arborly/matchkeep/internal/infra/repository"
)

/*
 * main is the entry point of the application: it parses flags/env via the
 * cobra root command and hands off to run with the resolved Config.
 */
func main() {
	cmd := config.NewCommand(run)
	if err := cmd.Execute(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run performs dependency injection and serves until the process is
// killed or the listener fails.
func run(cfg *config.Config) error {
	dbConn, err := db.InitializeDatabase(db.Options{DSN: cfg.DSN(), Verbose: cfg.Verbose})
	if err != nil {
		return fmt.Errorf("database initialization failed: %w", err)
	}
	log.Println("SUCCESS: Database connection pool established.")

	gameTypes := games.DefaultRegistry()
	tournamentTypes := tournament.DefaultRegistry()
	registry := session.NewRegistry()

	gameChanged := dispatch.NewGameChangedCallback(registry, gameTypes)
	tournamentChanged := dispatch.NewTournamentChangedCallback(registry)

	// The timer service is itself built from the store, so the store is
	// constructed first with no scheduler and wired in afterward.
	store := repository.New(dbConn, gameTypes, tournamentTypes, nil, cfg.MaxActiveGames, gameChanged, tournamentChanged)
	timerService := engine.NewTimerService(store)
	store.SetScheduler(timerService)
	go timerService.Run()

	router := dispatch.NewRouter(store, registry, gameTypes, apikey.New())
	hub := ws.NewHub(router)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWs)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("INFO: match server listening on %s", server.Addr)
	return server.ListenAndServe()
}
