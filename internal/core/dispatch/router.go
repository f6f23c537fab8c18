/*
 * file: router.go
 * package: dispatch
 * description:
 *     Router binds one decoded client command to the store/registry and
 *     returns the text to send back, if any. It owns the auth gate, the
 *     protocol-version gates on play/move, and the dispatcher-level
 *     "reply okay only in protocol 2" rule.
 */

package dispatch

import (
	"fmt"
	"strconv"

	"github.com/arborly/matchkeep/internal/core/apperr"
	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/engine"
	"github.com/arborly/matchkeep/internal/core/games"
	"github.com/arborly/matchkeep/internal/core/ports"
	"github.com/arborly/matchkeep/internal/core/session"
	"github.com/arborly/matchkeep/internal/core/wire"
)

// Router dispatches decoded client commands against a Store and session
// Registry. One Router is shared by every connection; per-connection state
// (login, protocol version, subscriptions) lives entirely in the Registry,
// keyed by ConnID.
type Router struct {
	Store       ports.Store
	Registry    *session.Registry
	GameTypes   map[string]ports.GameType
	Credentials ports.Credentials
}

func NewRouter(store ports.Store, registry *session.Registry, gameTypes map[string]ports.GameType, creds ports.Credentials) *Router {
	return &Router{Store: store, Registry: registry, GameTypes: gameTypes, Credentials: creds}
}

// Dispatch decodes and handles one inbound line, returning the text to send
// back to conn (empty if nothing should be sent).
func (r *Router) Dispatch(conn session.ConnID, line string) string {
	cmd, err := wire.ParseCommand(line)
	if err != nil {
		return wire.RenderError(err)
	}
	reply, err := r.handle(conn, cmd)
	if err != nil {
		return wire.RenderError(err)
	}
	if reply != "" {
		return reply
	}
	if r.Registry.ProtocolVersionOf(conn) == session.Current {
		return wire.Okay()
	}
	return ""
}

func (r *Router) handle(conn session.ConnID, cmd *wire.ClientCommand) (string, error) {
	switch cmd.Name {
	case "version":
		return r.handleVersion(conn, cmd.Args)
	case "new_user":
		return "", r.handleNewUser(conn, cmd.Args)
	case "new_tmp_user":
		return "", r.handleNewTmpUser(conn, cmd.Args)
	case "apikey":
		return "", r.handleApikey(conn, cmd.Args)
	case "login":
		return "", r.handleLogin(conn, cmd.Args)
	case "logout":
		r.Registry.Logout(conn)
		return "", nil
	case "name":
		return "", r.handleName(conn, cmd.Args)
	case "password":
		return "", r.handlePassword(conn, cmd.Args)
	case "gen_apikey":
		return r.handleGenApikey(conn)
	case "self_user_info":
		return r.handleSelfUserInfo(conn)
	case "new_game":
		return r.handleNewGame(conn, cmd.Args)
	case "new_game_tmp_users":
		return r.handleNewGameTmpUsers(cmd.Args)
	case "observe_game":
		return r.handleObserveGame(conn, cmd.Args)
	case "stop_observe_game":
		return "", r.handleStopObserveGame(conn, cmd.Args)
	case "join_game":
		return "", r.handleJoinGame(conn, cmd.Args)
	case "leave_game":
		return "", r.handleLeaveGame(conn, cmd.Args)
	case "start_game":
		return "", r.handleStartGame(conn, cmd.Args)
	case "play":
		return "", r.handlePlay(conn, cmd.Args)
	case "move":
		return "", r.handleMove(conn, cmd.Args)
	case "new_tournament":
		return r.handleNewTournament(conn, cmd.Args)
	case "join_tournament":
		return "", r.handleJoinTournament(conn, cmd.Args)
	case "leave_tournament":
		return "", r.handleLeaveTournament(conn, cmd.Args)
	case "start_tournament":
		return "", r.handleStartTournament(conn, cmd.Args)
	case "observe_tournament":
		return r.handleObserveTournament(conn, cmd.Args)
	case "stop_observe_tournament":
		return "", r.handleStopObserveTournament(conn, cmd.Args)
	default:
		return "", &apperr.InvalidCommand{Cmd: cmd.Name}
	}
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperr.ErrInvalidNumberId
	}
	return uint(v), nil
}

func parseInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperr.ErrInvalidNumberId
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.ErrInvalidNumberId
	}
	return v, nil
}

// currentUser resolves the logged-in user for conn, or ErrNotLoggedIn.
func (r *Router) currentUser(conn session.ConnID) (*domain.User, error) {
	uid, ok := r.Registry.IsUser(conn)
	if !ok {
		return nil, apperr.ErrNotLoggedIn
	}
	return r.Store.FindUserByID(uid)
}

// login logs conn in as userID and pushes any waiting-game commands
// directly to conn (spec 4.G's "Waiting-games push on login").
func (r *Router) login(conn session.ConnID, userID uint) error {
	r.Registry.Login(conn, userID)
	proto := r.Registry.ProtocolVersionOf(conn)
	games, err := r.Store.FindWaitingGamesForUser(userID)
	if err != nil {
		return err
	}
	if proto == session.Legacy && len(games) > 1 {
		games = games[:1]
	}
	for _, g := range games {
		msg, ok := r.waitingGameMessageFor(userID, &g, proto)
		if ok {
			r.Registry.Send(conn, msg)
		}
	}
	return nil
}

func (r *Router) handleVersion(conn session.ConnID, args []string) (string, error) {
	n, err := parseInt(args[0])
	if err != nil {
		return "", err
	}
	var v session.ProtocolVersion
	switch n {
	case 1:
		v = session.Legacy
	case 2:
		v = session.Current
	default:
		return "", apperr.ErrInvalidProtocolVersion
	}
	r.Registry.SetProtocolVersion(conn, v)
	return "", nil
}

func (r *Router) handleNewUser(conn session.ConnID, args []string) error {
	name, email, password := args[0], args[1], args[2]
	_, apiKeyHash := r.Credentials.NewApiKey()
	u, err := r.Store.NewUser(name, email, password, apiKeyHash)
	if err != nil {
		return err
	}
	return r.login(conn, u.ID)
}

func (r *Router) handleNewTmpUser(conn session.ConnID, args []string) error {
	_, apiKeyHash := r.Credentials.NewApiKey()
	u, err := r.Store.NewTmpUser(args[0], apiKeyHash)
	if err != nil {
		return err
	}
	return r.login(conn, u.ID)
}

func (r *Router) handleApikey(conn session.ConnID, args []string) error {
	hash, err := r.Credentials.HashRawApiKey(args[0])
	if err != nil {
		return err
	}
	u, err := r.Store.FindUserByApiKeyHash(hash)
	if err != nil {
		return err
	}
	return r.login(conn, u.ID)
}

func (r *Router) handleLogin(conn session.ConnID, args []string) error {
	u, err := r.Store.FindUserByCredentials(args[0], args[1])
	if err != nil {
		return err
	}
	return r.login(conn, u.ID)
}

func (r *Router) handleName(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	u.Name = args[0]
	return r.Store.SaveUser(u)
}

func (r *Router) handlePassword(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	hashed, err := r.Credentials.HashPassword(args[0])
	if err != nil {
		return err
	}
	u.PasswordHash = &hashed
	return r.Store.SaveUser(u)
}

func (r *Router) handleGenApikey(conn session.ConnID) (string, error) {
	u, err := r.currentUser(conn)
	if err != nil {
		return "", err
	}
	raw, hash := r.Credentials.NewApiKey()
	u.ApiKeyHash = hash
	if err := r.Store.SaveUser(u); err != nil {
		return "", err
	}
	return wire.RenderGenApikey(raw), nil
}

func (r *Router) handleSelfUserInfo(conn session.ConnID) (string, error) {
	u, err := r.currentUser(conn)
	if err != nil {
		return "", err
	}
	return wire.RenderSelfUserInfo(u.ID, u.Name, u.Email), nil
}

func (r *Router) handleNewGame(conn session.ConnID, args []string) (string, error) {
	u, err := r.currentUser(conn)
	if err != nil {
		return "", err
	}
	gameType := args[0]
	suddenDeathMs, err := parseInt64(args[1])
	if err != nil {
		return "", err
	}
	perMoveMs, err := parseInt64(args[2])
	if err != nil {
		return "", err
	}
	g, err := r.Store.NewGame(gameType, u.ID, domain.GameTime{PerMoveMs: perMoveMs, SuddenDeathMs: suddenDeathMs}, nil)
	if err != nil {
		return "", err
	}
	return wire.RenderNewGame(g.ID), nil
}

// handleNewGameTmpUsers implements the convenience wrapper documented in
// SPEC_FULL.md's supplemented features: create N fresh temporary users (each given
// its own API key), a game, join all of them in order, then start it.
func (r *Router) handleNewGameTmpUsers(args []string) (string, error) {
	gameType := args[0]
	suddenDeathMs, err := parseInt64(args[1])
	if err != nil {
		return "", err
	}
	perMoveMs, err := parseInt64(args[2])
	if err != nil {
		return "", err
	}
	numTmpUsers, err := parseInt(args[3])
	if err != nil {
		return "", err
	}
	if numTmpUsers <= 0 {
		return "", apperr.ErrInvalidNumberOfPlayers
	}

	rawKeys := make([]string, 0, numTmpUsers)
	userIDs := make([]uint, 0, numTmpUsers)
	for i := 0; i < numTmpUsers; i++ {
		name := fmt.Sprintf("Temporary User #%d", i)
		raw, hash := r.Credentials.NewApiKey()
		u, err := r.Store.NewTmpUser(name, hash)
		if err != nil {
			return "", err
		}
		rawKeys = append(rawKeys, raw)
		userIDs = append(userIDs, u.ID)
	}

	g, err := r.Store.NewGame(gameType, userIDs[0], domain.GameTime{PerMoveMs: perMoveMs, SuddenDeathMs: suddenDeathMs}, nil)
	if err != nil {
		return "", err
	}
	for _, uid := range userIDs {
		if err := r.Store.JoinGame(g.ID, uid); err != nil {
			return "", err
		}
	}
	if err := r.Store.StartGame(g.ID, userIDs[0]); err != nil {
		return "", err
	}
	return wire.RenderNewGameTmpUsers(g.ID, rawKeys), nil
}

func (r *Router) handleObserveGame(conn session.ConnID, args []string) (string, error) {
	gid, err := parseUint(args[0])
	if err != nil {
		return "", err
	}
	game, err := r.Store.FindGame(gid)
	if err != nil {
		return "", err
	}
	players, err := r.Store.FindGamePlayers(gid)
	if err != nil {
		return "", err
	}
	r.Registry.AddToTopic(conn, session.GameTopic(gid))
	return RenderGameMessage(r.Store, game, players, r.GameTypes)
}

func (r *Router) handleStopObserveGame(conn session.ConnID, args []string) error {
	gid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	r.Registry.RemoveFromTopic(conn, session.GameTopic(gid))
	return nil
}

func (r *Router) handleJoinGame(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	gid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.JoinGame(gid, u.ID)
}

func (r *Router) handleLeaveGame(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	gid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.LeaveGame(gid, u.ID)
}

func (r *Router) handleStartGame(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	gid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.StartGame(gid, u.ID)
}

func (r *Router) handlePlay(conn session.ConnID, args []string) error {
	if proto := r.Registry.ProtocolVersionOf(conn); proto != session.Current {
		return &apperr.InvalidProtocolForCommand{Proto: int(proto), Expected: int(session.Current)}
	}
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	gid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.MakeMove(gid, u.ID, args[1])
}

func (r *Router) handleMove(conn session.ConnID, args []string) error {
	if proto := r.Registry.ProtocolVersionOf(conn); proto != session.Legacy {
		return &apperr.InvalidProtocolForCommand{Proto: int(proto), Expected: int(session.Legacy)}
	}
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	g, err := r.Store.FindOldestWaitingGameForUser(u.ID)
	if err != nil {
		return err
	}
	if g == nil {
		return apperr.ErrNotTurn
	}
	return r.Store.MakeMove(g.ID, u.ID, args[0])
}

func (r *Router) handleNewTournament(conn session.ConnID, args []string) (string, error) {
	u, err := r.currentUser(conn)
	if err != nil {
		return "", err
	}
	tourneyType, gameType := args[0], args[1]
	suddenDeathMs, err := parseInt64(args[2])
	if err != nil {
		return "", err
	}
	perMoveMs, err := parseInt64(args[3])
	if err != nil {
		return "", err
	}
	options := args[4]
	t, err := r.Store.NewTournament(tourneyType, gameType, u.ID, domain.GameTime{PerMoveMs: perMoveMs, SuddenDeathMs: suddenDeathMs}, options)
	if err != nil {
		return "", err
	}
	return wire.RenderNewTournament(t.ID), nil
}

func (r *Router) handleJoinTournament(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	tid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.JoinTournament(tid, u.ID)
}

func (r *Router) handleLeaveTournament(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	tid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.LeaveTournament(tid, u.ID)
}

func (r *Router) handleStartTournament(conn session.ConnID, args []string) error {
	u, err := r.currentUser(conn)
	if err != nil {
		return err
	}
	tid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	return r.Store.StartTournament(tid, u.ID)
}

func (r *Router) handleObserveTournament(conn session.ConnID, args []string) (string, error) {
	tid, err := parseUint(args[0])
	if err != nil {
		return "", err
	}
	t, err := r.Store.FindTournament(tid)
	if err != nil {
		return "", err
	}
	players, err := r.Store.FindTournamentPlayers(tid)
	if err != nil {
		return "", err
	}
	games, err := r.Store.FindTournamentGames(tid)
	if err != nil {
		return "", err
	}
	for _, g := range games {
		gamePlayers, err := r.Store.FindGamePlayers(g.ID)
		if err != nil {
			return "", err
		}
		gameCopy := g
		msg, err := RenderGameMessage(r.Store, &gameCopy, gamePlayers, r.GameTypes)
		if err != nil {
			return "", err
		}
		r.Registry.Send(conn, msg)
	}
	r.Registry.AddToTopic(conn, session.TournamentTopic(tid))
	return RenderTournamentMessage(r.Store, t, players)
}

func (r *Router) handleStopObserveTournament(conn session.ConnID, args []string) error {
	tid, err := parseUint(args[0])
	if err != nil {
		return err
	}
	r.Registry.RemoveFromTopic(conn, session.TournamentTopic(tid))
	return nil
}

// waitingGameMessageFor renders the protocol-appropriate per-player push
// (`go` for Current, `position` for Legacy) for a game with an active turn
// belonging to userID, mirroring pushTurnUpdate's rendering but for the
// one-shot login push rather than an onGameChanged fan-out.
func (r *Router) waitingGameMessageFor(userID uint, game *domain.Game, proto session.ProtocolVersion) (string, bool) {
	if !game.Started() || game.Finished {
		return "", false
	}
	players, err := r.Store.FindGamePlayers(game.ID)
	if err != nil {
		return "", false
	}
	playerIDs := make([]uint, len(players))
	for i, p := range players {
		playerIDs[i] = p.UserID
	}
	instance, ok := games.Load(r.GameTypes, game.GameType, *game.State, playerIDs)
	if !ok {
		return "", false
	}
	turn := instance.Turn()
	if turn.Kind != ports.TurnActive || turn.UserID != userID {
		return "", false
	}
	current := instance.SerializeCurrent()
	if proto == session.Current {
		elapsedMs := elapsedSinceMoveStart(game)
		timeMs := engine.DebitTime(remainingSuddenDeathFor(players, userID), game.DurPerMoveMs, elapsedMs)
		timeForTurnMs := engine.TimeForTurn(game.DurPerMoveMs, elapsedMs)
		return wire.RenderGo(game.ID, game.GameType, timeMs, timeForTurnMs, &current), true
	}
	return wire.RenderPosition(&current), true
}
