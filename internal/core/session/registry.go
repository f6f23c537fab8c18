/*
 * file: registry.go
 * package: session
 * description:
 *     Process-wide shared structure holding every connection's outbound
 *     channel, protocol version, and topic subscriptions. Every mutating
 *     operation serializes under a single mutex; publish is non-blocking.
 *     Mirrors the teacher's Hub (register/unregister + room map) pattern
 *     generalized from rooms to arbitrary topics.
 */

package session

import (
	"errors"
	"log"
	"sync"
)

// ProtocolVersion is a connection's negotiated wire-protocol version.
type ProtocolVersion int

const (
	Legacy  ProtocolVersion = 1
	Current ProtocolVersion = 2
)

// ErrNotGameOrTournamentTopic is returned when a client tries to
// subscribe directly to a UserPrivate* topic.
var ErrNotGameOrTournamentTopic = errors.New("clients may only subscribe to game or tournament topics")

// ConnID identifies one connection. The websocket adapter assigns these;
// the registry treats them as opaque.
type ConnID uint64

type connInfo struct {
	send            chan string
	protocolVersion ProtocolVersion
	userID          *uint
}

// Registry is the session/command-router's shared pub/sub fabric (spec
// component B).
type Registry struct {
	mu       sync.Mutex
	channels map[ConnID]*connInfo
	topics   map[Topic]map[ConnID]bool
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[ConnID]*connInfo),
		topics:   make(map[Topic]map[ConnID]bool),
	}
}

// InsertClient registers a new connection with its outbound channel and
// initial protocol version (not yet logged in).
func (r *Registry) InsertClient(id ConnID, send chan string, v ProtocolVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[id] = &connInfo{send: send, protocolVersion: v}
}

// RemoveClient purges a connection from every topic and the channel map.
func (r *Registry) RemoveClient(id ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeFromAllTopicsLocked(id)
	delete(r.channels, id)
}

func (r *Registry) removeFromAllTopicsLocked(id ConnID) {
	for topic, members := range r.topics {
		if _, ok := members[id]; ok {
			delete(members, id)
			if len(members) == 0 {
				delete(r.topics, topic)
			}
		}
	}
}

// AddToTopic subscribes id to topic. Rejects direct subscription to a
// UserPrivate* topic, which the registry manages on its own.
func (r *Registry) AddToTopic(id ConnID, topic Topic) error {
	if topic.IsUserPrivate() {
		return ErrNotGameOrTournamentTopic
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addToTopicLocked(id, topic)
	return nil
}

func (r *Registry) addToTopicLocked(id ConnID, topic Topic) {
	if r.topics[topic] == nil {
		r.topics[topic] = make(map[ConnID]bool)
	}
	r.topics[topic][id] = true
}

func (r *Registry) removeFromTopicLocked(id ConnID, topic Topic) {
	if members, ok := r.topics[topic]; ok {
		delete(members, id)
		if len(members) == 0 {
			delete(r.topics, topic)
		}
	}
}

// RemoveFromTopic unsubscribes id from topic.
func (r *Registry) RemoveFromTopic(id ConnID, topic Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeFromTopicLocked(id, topic)
}

// IsUser reports the logged-in user id for id, if any.
func (r *Registry) IsUser(id ConnID) (uint, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.channels[id]
	if !ok || info.userID == nil {
		return 0, false
	}
	return *info.userID, true
}

// ProtocolVersionOf reports id's current protocol version.
func (r *Registry) ProtocolVersionOf(id ConnID) ProtocolVersion {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.channels[id]
	if !ok {
		return Legacy
	}
	return info.protocolVersion
}

// removeAsUserLocked purges id's UserPrivate/UserPrivateProtocolVersion
// subscriptions and clears its logged-in user, without touching Game or
// Tournament topics.
func (r *Registry) removeAsUserLocked(id ConnID) {
	info, ok := r.channels[id]
	if !ok || info.userID == nil {
		return
	}
	uid := *info.userID
	r.removeFromTopicLocked(id, UserPrivateTopic(uid))
	r.removeFromTopicLocked(id, UserPrivateProtocolVersionTopic(uid, Legacy))
	r.removeFromTopicLocked(id, UserPrivateProtocolVersionTopic(uid, Current))
	info.userID = nil
}

// Login associates id with userID: any prior login is revoked first, then
// id is added to UserPrivate(userID) and
// UserPrivateProtocolVersion(userID, currentProtocolVersion).
func (r *Registry) Login(id ConnID, userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeAsUserLocked(id)
	info, ok := r.channels[id]
	if !ok {
		return
	}
	info.userID = &userID
	r.addToTopicLocked(id, UserPrivateTopic(userID))
	r.addToTopicLocked(id, UserPrivateProtocolVersionTopic(userID, info.protocolVersion))
}

// Logout clears id's logged-in user and its UserPrivate* subscriptions.
func (r *Registry) Logout(id ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeAsUserLocked(id)
}

// SetProtocolVersion updates id's negotiated protocol version. If id is
// logged in, it is moved from its old UserPrivateProtocolVersion topic to
// the new one.
func (r *Registry) SetProtocolVersion(id ConnID, v ProtocolVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.channels[id]
	if !ok {
		return
	}
	old := info.protocolVersion
	if old == v {
		return
	}
	if info.userID != nil {
		r.removeFromTopicLocked(id, UserPrivateProtocolVersionTopic(*info.userID, old))
		r.addToTopicLocked(id, UserPrivateProtocolVersionTopic(*info.userID, v))
	}
	info.protocolVersion = v
}

// Publish sends msg to every current subscriber of topic. For a subscriber
// whose outbound buffer is full, msg is dropped and logged rather than
// blocking the publisher; the subscriber stays subscribed and its channel
// is left open.
func (r *Registry) Publish(topic Topic, msg string) {
	r.mu.Lock()
	members := make([]ConnID, 0, len(r.topics[topic]))
	for id := range r.topics[topic] {
		members = append(members, id)
	}
	chans := make([]chan string, 0, len(members))
	for _, id := range members {
		if info, ok := r.channels[id]; ok {
			chans = append(chans, info.send)
		}
	}
	r.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- msg:
		default:
			log.Printf("WARN: dropping publish to topic %+v, subscriber buffer full", topic)
		}
	}
}

// Send delivers msg to exactly one connection, if it is still registered.
func (r *Registry) Send(id ConnID, msg string) {
	r.mu.Lock()
	info, ok := r.channels[id]
	r.mu.Unlock()
	if !ok {
		return
	}
	select {
	case info.send <- msg:
	default:
		log.Printf("WARN: dropping send to connection %d, buffer full", id)
	}
}
