/*
 * file: codec.go
 * package: wire
 * description:
 *     Decodes the line-oriented client wire protocol: `cmd [args]`, first
 *     whitespace-delimited token is the command name, remainder is
 *     comma-split and trimmed. Enforces each command's fixed argument
 *     count.
 */

package wire

import (
	"strings"

	"github.com/arborly/matchkeep/internal/core/apperr"
)

// ClientCommand is a decoded client message: a recognized command name
// plus its raw, trimmed argument strings. Converting individual arguments
// (ids, durations, api keys) to their semantic type is the dispatcher's
// job, not the codec's.
type ClientCommand struct {
	Name string
	Args []string
}

// numArgs is the fixed argument count every client command expects, per
// the wire protocol.
var numArgs = map[string]int{
	"version":                  1,
	"new_user":                 3,
	"new_tmp_user":             1,
	"apikey":                   1,
	"login":                    2,
	"logout":                   0,
	"name":                     1,
	"password":                 1,
	"gen_apikey":               0,
	"self_user_info":           0,
	"new_game":                 3,
	"new_game_tmp_users":       4,
	"observe_game":             1,
	"stop_observe_game":        1,
	"join_game":                1,
	"leave_game":               1,
	"start_game":               1,
	"play":                     2,
	"move":                     1,
	"new_tournament":           5,
	"join_tournament":          1,
	"leave_tournament":         1,
	"start_tournament":         1,
	"observe_tournament":       1,
	"stop_observe_tournament":  1,
}

// ParseCommand decodes one line of client input. It returns
// *apperr.InvalidCommand for an unrecognized verb and
// *apperr.InvalidNumberOfArguments for an argcount mismatch.
func ParseCommand(line string) (*ClientCommand, error) {
	trimmed := strings.TrimSpace(line)
	var name, rest string
	if idx := strings.IndexAny(trimmed, " \t"); idx == -1 {
		name, rest = trimmed, ""
	} else {
		name, rest = trimmed[:idx], trimmed[idx+1:]
	}

	expected, ok := numArgs[name]
	if !ok {
		return nil, &apperr.InvalidCommand{Cmd: name}
	}

	var args []string
	if strings.TrimSpace(rest) != "" {
		for _, a := range strings.Split(rest, ",") {
			args = append(args, strings.TrimSpace(a))
		}
	}
	if len(args) != expected {
		return nil, &apperr.InvalidNumberOfArguments{Cmd: name, Expected: expected, Actual: len(args)}
	}
	return &ClientCommand{Name: name, Args: args}, nil
}
