package server

import (
	"net/http"
	"sync"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/session"
	"github.com/quorumhq/quorum/server/statedb"
)

// changeWatchers is the set of websocket connections that want to hear about
// document writes. Admin UIs use this to refresh stale editors, so delivery is
// best effort; a dropped message just means a slightly staler editor.
type changeWatchers struct {
	log   logs.Log
	lock  sync.Mutex
	conns map[*websocket.Conn]bool
}

// SYNC-CHANGE-EVENT-JSON
type changeEventJSON struct {
	Kind    statedb.DocKind `json:"kind"`
	Version int64           `json:"version"`
}

func newChangeWatchers(log logs.Log) *changeWatchers {
	return &changeWatchers{
		log:   log,
		conns: map[*websocket.Conn]bool{},
	}
}

func (c *changeWatchers) add(conn *websocket.Conn) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.conns[conn] = true
}

func (c *changeWatchers) remove(conn *websocket.Conn) {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.conns, conn)
}

func (c *changeWatchers) notify(kind statedb.DocKind, version int64) {
	event := changeEventJSON{Kind: kind, Version: version}
	c.lock.Lock()
	defer c.lock.Unlock()
	for conn := range c.conns {
		if err := conn.WriteJSON(&event); err != nil {
			c.log.Infof("Dropping change watcher: %v", err)
			conn.Close()
			delete(c.conns, conn)
		}
	}
}

func (c *changeWatchers) closeAll() {
	c.lock.Lock()
	defer c.lock.Unlock()
	for conn := range c.conns {
		conn.Close()
	}
	c.conns = map[*websocket.Conn]bool{}
}

func (s *Server) httpWatchChanges(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Errorf("httpWatchChanges websocket upgrade failed: %v", err)
		return
	}
	s.watchers.add(conn)
	// We never expect messages from the client; the read loop exists to
	// notice when the connection goes away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.watchers.remove(conn)
				conn.Close()
				return
			}
		}
	}()
}
