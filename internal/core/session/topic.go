/*
 * file: topic.go
 * package: session
 * description:
 *     Topic is the fan-out identity in the registry. Publishing to a
 *     topic delivers a message to every connection currently subscribed
 *     to it.
 */

package session

// TopicKind distinguishes the five topic shapes the registry supports.
type TopicKind int

const (
	TopicGlobal TopicKind = iota
	TopicUserPrivate
	TopicUserPrivateProtocolVersion
	TopicGame
	TopicTournament
)

// Topic identifies one fan-out destination. UserPrivate* topics are
// managed exclusively by the registry (login/logout/protocol-version
// change); clients may only subscribe directly to Game/Tournament topics.
type Topic struct {
	Kind            TopicKind
	UserID          uint
	ProtocolVersion ProtocolVersion
	GameID          uint
	TournamentID    uint
}

func GlobalTopic() Topic { return Topic{Kind: TopicGlobal} }

func UserPrivateTopic(userID uint) Topic {
	return Topic{Kind: TopicUserPrivate, UserID: userID}
}

func UserPrivateProtocolVersionTopic(userID uint, v ProtocolVersion) Topic {
	return Topic{Kind: TopicUserPrivateProtocolVersion, UserID: userID, ProtocolVersion: v}
}

func GameTopic(gameID uint) Topic { return Topic{Kind: TopicGame, GameID: gameID} }

func TournamentTopic(tournamentID uint) Topic {
	return Topic{Kind: TopicTournament, TournamentID: tournamentID}
}

// IsUserPrivate reports whether this topic is one of the registry-managed
// per-user topics, which clients may not subscribe to directly.
func (t Topic) IsUserPrivate() bool {
	return t.Kind == TopicUserPrivate || t.Kind == TopicUserPrivateProtocolVersion
}
