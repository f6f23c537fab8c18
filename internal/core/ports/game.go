/*
 * file: game.go
 * package: ports
 * description:
 *     GameType and GameInstance are the opaque-game-logic boundary: the
 *     engine never knows how a move is validated or how a board is
 *     encoded, only these two interfaces. GameType is the stateless
 *     factory (registered under a string key, e.g. "chess");
 *     GameInstance is the live, per-game state it produces.
 */

package ports

// GameTurnKind distinguishes an in-progress turn from a finished game.
type GameTurnKind int

const (
	TurnActive GameTurnKind = iota
	TurnFinished
)

// GameTurn reports whose move it is, or that the game has ended.
type GameTurn struct {
	Kind GameTurnKind
	// UserID is valid only when Kind == TurnActive.
	UserID uint
}

func Turn(userID uint) GameTurn { return GameTurn{Kind: TurnActive, UserID: userID} }
func Finished() GameTurn        { return GameTurn{Kind: TurnFinished} }

// GameStateKind is the terminal-or-not classification of a game instance.
type GameStateKind int

const (
	StateInProgress GameStateKind = iota
	StateWin
	StateTie
)

// GameState is a GameInstance's end-state snapshot.
type GameState struct {
	Kind GameStateKind
	// Winner is valid only when Kind == StateWin.
	Winner uint
}

// GameScore maps a user id to that user's score in the game (e.g. 1/0.5/0).
type GameScore map[uint]float64

// GameInstance is the live, mutable state of one in-progress or finished
// game of some GameType.
type GameInstance interface {
	// Turn reports whose move it is, or that the game has finished.
	Turn() GameTurn
	// MakeMove applies move, authored by userID, to the instance. Returns
	// an error describing why the move was rejected (malformed, illegal,
	// not this player's turn at the game-type level) on failure.
	MakeMove(userID uint, move string) error
	// EndState reports the instance's current terminal classification.
	EndState() GameState
	// Scores reports each player's score, if the game type assigns scores
	// at this point (ok is false before any score is meaningful).
	Scores() (GameScore, bool)
	// Serialize renders the full state needed to reconstruct this
	// instance via the owning GameType's Deserialize.
	Serialize() string
	// SerializeCurrent renders a client-facing snapshot that need not be
	// sufficient to reconstruct history (e.g. a FEN with no move list).
	// Game types that keep no extra history may return Serialize().
	SerializeCurrent() string
}

// GameType is the stateless factory for one kind of game, registered by
// name (e.g. "chess").
type GameType interface {
	// New constructs a fresh instance for the given ordered player list.
	// ok is false if this game type rejects that player count/ordering.
	New(players []uint) (instance GameInstance, ok bool)
	// Deserialize reconstructs an instance from Serialize's output.
	Deserialize(data string, players []uint) (instance GameInstance, ok bool)
}
