/*
 * file: push.go
 * package: dispatch
 * description:
 *     Builds the onGameChanged/onTournamentChanged callbacks the store
 *     facade invokes after every mutation, rendering and publishing the
 *     wire messages described in spec 4.D's "Observer push on game
 *     change" and 4.F's tournament-standing push.
 */

package dispatch

import (
	"time"

	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/engine"
	"github.com/arborly/matchkeep/internal/core/games"
	"github.com/arborly/matchkeep/internal/core/ports"
	"github.com/arborly/matchkeep/internal/core/session"
	"github.com/arborly/matchkeep/internal/core/wire"
)

// RenderGameMessage builds the `game ...` wire message for one game, used
// both by the onGameChanged push and by observe_game's immediate reply.
func RenderGameMessage(store ports.Store, game *domain.Game, players []domain.GamePlayer, gameTypes map[string]ports.GameType) (string, error) {
	rows, err := buildGamePlayerRows(store, players)
	if err != nil {
		return "", err
	}
	kind, winner := gameResultOf(game)
	return wire.RenderGame(
		game.ID, game.GameType, game.OwnerID, game.Started(), game.Finished,
		kind, winner,
		game.DurSuddenDeathMs, game.DurPerMoveMs,
		game.CurrentMoveStartMs, currentPlayerOf(game, players, gameTypes),
		rows, game.State,
	), nil
}

// RenderTournamentMessage builds the `tournament ...` wire message for one
// tournament, used both by the onTournamentChanged push and by
// observe_tournament's immediate reply.
func RenderTournamentMessage(store ports.Store, t *domain.Tournament, players []domain.TournamentPlayer) (string, error) {
	rows, err := buildTournamentPlayerRows(store, players)
	if err != nil {
		return "", err
	}
	games, err := store.FindTournamentGames(t.ID)
	if err != nil {
		return "", err
	}
	ids := make([]uint, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	kind, winner := tournamentResultOf(t)
	return wire.RenderTournament(
		t.ID, t.TournamentType, t.OwnerID, t.GameType,
		t.Started, t.Finished, kind, winner,
		rows, wire.RenderTournamentGames(ids),
	), nil
}

// NewGameChangedCallback builds the onGameChanged callback: a full `game`
// publish to the game's topic (and its tournament's topic, if any),
// followed by a per-mover `go`/`position` push gated by protocol version.
func NewGameChangedCallback(registry *session.Registry, gameTypes map[string]ports.GameType) ports.GameChangedFunc {
	return func(game *domain.Game, players []domain.GamePlayer, store ports.Store) {
		msg, err := RenderGameMessage(store, game, players, gameTypes)
		if err != nil {
			return
		}
		registry.Publish(session.GameTopic(game.ID), msg)
		if game.TournamentID != nil {
			registry.Publish(session.TournamentTopic(*game.TournamentID), msg)
		}

		pushTurnUpdate(store, registry, game, players, gameTypes)
	}
}

// pushTurnUpdate implements the per-protocol-version `go`/`position` push:
// for each version, if the game is active on some player's turn AND
// (Current, or this is that player's oldest waiting game under Legacy),
// push the version-appropriate command to that player's private topic.
func pushTurnUpdate(store ports.Store, registry *session.Registry, game *domain.Game, players []domain.GamePlayer, gameTypes map[string]ports.GameType) {
	if !game.Started() || game.Finished {
		return
	}
	playerIDs := make([]uint, len(players))
	for i, p := range players {
		playerIDs[i] = p.UserID
	}
	instance, ok := games.Load(gameTypes, game.GameType, *game.State, playerIDs)
	if !ok {
		return
	}
	turn := instance.Turn()
	if turn.Kind != ports.TurnActive {
		return
	}
	uid := turn.UserID
	current := instance.SerializeCurrent()

	elapsedMs := elapsedSinceMoveStart(game)
	timeMs := engine.DebitTime(remainingSuddenDeathFor(players, uid), game.DurPerMoveMs, elapsedMs)
	timeForTurnMs := engine.TimeForTurn(game.DurPerMoveMs, elapsedMs)

	goMsg := wire.RenderGo(game.ID, game.GameType, timeMs, timeForTurnMs, &current)
	registry.Publish(session.UserPrivateProtocolVersionTopic(uid, session.Current), goMsg)

	oldest, err := store.FindOldestWaitingGameForUser(uid)
	if err == nil && oldest != nil && oldest.ID == game.ID {
		posMsg := wire.RenderPosition(&current)
		registry.Publish(session.UserPrivateProtocolVersionTopic(uid, session.Legacy), posMsg)
	}
}

// NewTournamentChangedCallback builds the onTournamentChanged callback: a
// full `tournament` publish to the tournament's topic.
func NewTournamentChangedCallback(registry *session.Registry) ports.TournamentChangedFunc {
	return func(t *domain.Tournament, players []domain.TournamentPlayer, store ports.Store) {
		msg, err := RenderTournamentMessage(store, t, players)
		if err != nil {
			return
		}
		registry.Publish(session.TournamentTopic(t.ID), msg)
	}
}

func gameResultOf(game *domain.Game) (ports.GameStateKind, uint) {
	if game.Winner != nil {
		return ports.StateWin, *game.Winner
	}
	if game.IsTie != nil && *game.IsTie {
		return ports.StateTie, 0
	}
	return ports.StateInProgress, 0
}

func tournamentResultOf(t *domain.Tournament) (ports.GameStateKind, uint) {
	if t.Winner != nil {
		return ports.StateWin, *t.Winner
	}
	return ports.StateInProgress, 0
}

func buildGamePlayerRows(store ports.Store, players []domain.GamePlayer) ([]wire.GamePlayerRow, error) {
	rows := make([]wire.GamePlayerRow, 0, len(players))
	for _, p := range players {
		u, err := store.FindUserByID(p.UserID)
		if err != nil {
			return nil, err
		}
		score := 0.0
		if p.Score != nil {
			score = *p.Score
		}
		rows = append(rows, wire.GamePlayerRow{UserID: p.UserID, Name: u.Name, Score: score, TimeMs: p.TimeMs})
	}
	return rows, nil
}

func buildTournamentPlayerRows(store ports.Store, players []domain.TournamentPlayer) ([]wire.TournamentPlayerRow, error) {
	rows := make([]wire.TournamentPlayerRow, 0, len(players))
	for _, p := range players {
		u, err := store.FindUserByID(p.UserID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, wire.TournamentPlayerRow{UserID: p.UserID, Name: u.Name, Win: p.Win, Loss: p.Loss, Tie: p.Tie})
	}
	return rows, nil
}

// elapsedSinceMoveStart is how long the current turn has been running, used
// to debit the mover's clock for a mid-turn push (the login push and the
// game-changed `go` push) rather
// than the freshly-reset values a just-started turn would show.
func elapsedSinceMoveStart(game *domain.Game) int64 {
	if game.CurrentMoveStartMs == nil {
		return 0
	}
	elapsed := time.Now().UnixMilli() - *game.CurrentMoveStartMs
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func remainingSuddenDeathFor(players []domain.GamePlayer, userID uint) int64 {
	for _, p := range players {
		if p.UserID == userID {
			return p.TimeMs
		}
	}
	return 0
}

func currentPlayerOf(game *domain.Game, players []domain.GamePlayer, gameTypes map[string]ports.GameType) *uint {
	for _, p := range players {
		if p.WaitingForMove {
			uid := p.UserID
			return &uid
		}
	}
	return nil
}
