/*
 * file: registry.go
 * package: tournament
 * description:
 *     Maps tournament-type name strings to their TournamentType
 *     implementation, registered once at boot.
 */

package tournament

import "github.com/arborly/matchkeep/internal/core/ports"

// DefaultRegistry returns the built-in tournament-type map.
func DefaultRegistry() map[string]ports.TournamentType {
	return map[string]ports.TournamentType{
		"round_robin": RoundRobin{},
	}
}
