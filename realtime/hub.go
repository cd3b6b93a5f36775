// Package realtime keeps track of connected match clients and fans events out to them.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Pato1236897/Golf/logging"
	"github.com/Pato1236897/Golf/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrHubClosed = errors.New("realtime hub is closed")

// MatchFinder resolves the current roster of a match.
type MatchFinder interface {
	Get(ctx context.Context, id string) (*storage.Match, error)
}

// Client is one registered connection. It is indexed by both its match and its user.
type Client struct {
	ID      string
	MatchID string
	UserID  string
	peer    *Peer
}

type Hub struct {
	finder MatchFinder

	mu      sync.Mutex
	closed  bool
	byMatch map[string]map[*Client]struct{}
	byUser  map[string]*Client
}

func NewHub(finder MatchFinder) *Hub {
	return &Hub{
		finder:  finder,
		byMatch: make(map[string]map[*Client]struct{}),
		byUser:  make(map[string]*Client),
	}
}

// Register adds a connection for (matchID, userID). A newer connection for the same
// user takes over the user slot; the older one is not closed and keeps receiving
// match-wide broadcasts until it disconnects.
func (h *Hub) Register(matchID, userID string, peer *Peer) (*Client, error) {
	id, err := gonanoid.New(12)
	if err != nil {
		id = fmt.Sprintf("%s/%s", matchID, userID)
	}
	client := &Client{ID: id, MatchID: matchID, UserID: userID, peer: peer}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}

	clients, ok := h.byMatch[matchID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.byMatch[matchID] = clients
	}
	clients[client] = struct{}{}

	if previous, ok := h.byUser[userID]; ok {
		logging.Log.Infof("HUB: user %s reconnected, replacing connection %s with %s", userID, previous.ID, client.ID)
	}
	h.byUser[userID] = client

	logging.Log.Infof("HUB: connection %s registered for match %s user %s", client.ID, matchID, userID)
	return client, nil
}

// Unregister drops both index entries of the client. The user entry is only removed
// while it still points at this client.
func (h *Hub) Unregister(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.byMatch[client.MatchID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.byMatch, client.MatchID)
		}
	}
	if current, ok := h.byUser[client.UserID]; ok && current == client {
		delete(h.byUser, client.UserID)
	}
	logging.Log.Infof("HUB: connection %s unregistered from match %s", client.ID, client.MatchID)
}

// SendToMatch delivers msg to every client connected to the match.
func (h *Hub) SendToMatch(matchID string, msg any) {
	h.mu.Lock()
	recipients := make([]*Client, 0, len(h.byMatch[matchID]))
	for client := range h.byMatch[matchID] {
		recipients = append(recipients, client)
	}
	h.mu.Unlock()

	h.deliver(recipients, msg)
}

// SendToTeam delivers msg only to the current connections of users who play on teamID.
// The error reports a failed roster lookup; delivery failures are logged, not returned.
func (h *Hub) SendToTeam(ctx context.Context, matchID, teamID string, msg any) error {
	match, err := h.finder.Get(ctx, matchID)
	if err != nil {
		return fmt.Errorf("resolve roster of match %s: %w", matchID, err)
	}
	team, ok := match.Team(teamID)
	if !ok {
		return nil
	}
	members := make(map[string]struct{}, len(team.Players))
	for _, player := range team.Players {
		members[player.ID] = struct{}{}
	}

	h.mu.Lock()
	recipients := make([]*Client, 0, len(members))
	for client := range h.byMatch[matchID] {
		if _, ok := members[client.UserID]; !ok {
			continue
		}
		if h.byUser[client.UserID] != client {
			continue
		}
		recipients = append(recipients, client)
	}
	h.mu.Unlock()

	h.deliver(recipients, msg)
	return nil
}

func (h *Hub) deliver(recipients []*Client, msg any) {
	for _, client := range recipients {
		if err := client.peer.Send(msg); err != nil {
			logging.Log.Warnf("HUB: delivery to connection %s (user %s) failed: %v", client.ID, client.UserID, err)
		}
	}
}

// ConnectionCount returns how many connections are registered for the match.
func (h *Hub) ConnectionCount(matchID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.byMatch[matchID])
}

// Close disconnects every client and refuses new registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var all []*Client
	for _, clients := range h.byMatch {
		for client := range clients {
			all = append(all, client)
		}
	}
	h.byMatch = make(map[string]map[*Client]struct{})
	h.byUser = make(map[string]*Client)
	h.mu.Unlock()

	for _, client := range all {
		if err := client.peer.Close(); err != nil {
			logging.Log.Debugf("HUB: closing connection %s: %v", client.ID, err)
		}
	}
	logging.Log.Infof("HUB: closed %d connections", len(all))
}
