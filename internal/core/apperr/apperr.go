/*
 * file: apperr.go
 * package: apperr
 * description:
 *     Error taxonomy for the match server. Every error here renders to the
 *     exact wire message the dispatcher sends back to a client as
 *     `error <message>`. Sentinel errors cover the no-payload kinds;
 *     InvalidNumberOfArguments, InvalidProtocolForCommand, InvalidCommand,
 *     NoSuchGameType, NoSuchTournamentType, and InvalidMove carry a payload
 *     and implement error themselves.
 */

package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchUser            = errors.New("no such user")
	ErrMalformedApiKey       = errors.New("malformed api key")
	ErrInvalidApiKey         = errors.New("invalid api key")
	ErrIncorrectCredentials  = errors.New("incorrect login credentials")
	ErrEmailAlreadyTaken     = errors.New("email is already taken")
	ErrNotLoggedIn           = errors.New("you are not logged in")
	ErrNoSuchGame            = errors.New("no such game")
	ErrAlreadyInGame         = errors.New("you are already in that game")
	ErrGameAlreadyStarted    = errors.New("that game has already started")
	ErrDontOwnGame           = errors.New("you aren't the owner of that game")
	ErrInvalidNumberOfPlayers = errors.New("invalid number of players joined to start game")
	ErrNotInGame             = errors.New("you aren't a player in that game")
	ErrInvalidNumberId       = errors.New("malformed id or number")
	ErrInvalidProtocolVersion = errors.New("invalid protocol version")
	ErrNotTurn               = errors.New("it is not your turn to move in that game")
	ErrNoSuchTournament      = errors.New("no such tournament")
)

// InvalidCommand is returned when the wire codec sees an unrecognized verb.
type InvalidCommand struct {
	Cmd string
}

func (e *InvalidCommand) Error() string {
	return fmt.Sprintf("unrecognized command: %s", e.Cmd)
}

// InvalidNumberOfArguments is returned when a command's argument count
// doesn't match the fixed count the wire codec expects for it.
type InvalidNumberOfArguments struct {
	Cmd      string
	Expected int
	Actual   int
}

func (e *InvalidNumberOfArguments) Error() string {
	return fmt.Sprintf("invalid number of arguments for command %s - expected %d, found %d", e.Cmd, e.Expected, e.Actual)
}

// NoSuchGameType is returned when a game is created with an unregistered
// game type key.
type NoSuchGameType struct {
	Type string
}

func (e *NoSuchGameType) Error() string {
	return fmt.Sprintf("unsupported game type: %s", e.Type)
}

// NoSuchTournamentType is returned when a tournament is created with an
// unregistered tournament type key.
type NoSuchTournamentType struct {
	Type string
}

func (e *NoSuchTournamentType) Error() string {
	return "no such tournament type"
}

// InvalidMove wraps the reason a GameType rejected a move.
type InvalidMove struct {
	Reason string
}

func (e *InvalidMove) Error() string {
	return fmt.Sprintf("invalid move: %s", e.Reason)
}

// InvalidProtocolForCommand is returned when `play`/`move` is issued under
// the wrong protocol version.
type InvalidProtocolForCommand struct {
	Proto    int
	Expected int
}

func (e *InvalidProtocolForCommand) Error() string {
	return fmt.Sprintf("that command is only available in protocol version %d (you are in version %d)", e.Expected, e.Proto)
}
