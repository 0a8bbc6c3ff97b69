package server

import (
	"encoding/json"
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/session"
	"github.com/quorumhq/quorum/server/statedb"
)

// SYNC-STATE-WRITE-JSON
type stateWriteJSON struct {
	Payload json.RawMessage `json:"payload"`
	Notes   string          `json:"notes"`
}

// SYNC-STATE-WRITE-RESPONSE
type stateWriteResponseJSON struct {
	Version int64 `json:"version"`
}

// Each document class gets an empty-object default, so a cold-start portal
// renders an empty page instead of an error.
var emptyDocument = json.RawMessage("{}")

func (s *Server) getState(w http.ResponseWriter, kind statedb.DocKind) {
	doc, err := s.stateDB.ReadCurrent(kind, emptyDocument)
	www.Check(err)
	www.CacheNever(w)
	www.SendJSON(w, doc)
}

func (s *Server) putState(w http.ResponseWriter, r *http.Request, kind statedb.DocKind, sess *session.Payload) {
	req := stateWriteJSON{}
	www.ReadJSON(w, r, &req, 4*1024*1024)
	if len(req.Payload) == 0 {
		www.PanicBadRequestf("payload is required")
	}
	version, err := s.stateDB.Write(kind, req.Payload, sess.Slug, req.Notes)
	if err != nil {
		// The raw store error stays in the log; clients get a stable message
		s.Log.Errorf("Failed to save %v: %v", kind, err)
		www.PanicServerError("Failed to save changes")
	}
	s.watchers.notify(kind, version)
	www.SendJSON(w, &stateWriteResponseJSON{Version: version})
}

func (s *Server) httpStateGetSite(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.getState(w, statedb.DocSiteState)
}

func (s *Server) httpStatePutSite(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.putState(w, r, statedb.DocSiteState, sess)
}

func (s *Server) httpStateGetBos(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.getState(w, statedb.DocBosState)
}

func (s *Server) httpStatePutBos(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.putState(w, r, statedb.DocBosState, sess)
}

func (s *Server) httpStateGetTimeline(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.getState(w, statedb.DocTimelineState)
}

func (s *Server) httpStatePutTimeline(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.putState(w, r, statedb.DocTimelineState, sess)
}

func (s *Server) httpStateGetDeck(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.getState(w, statedb.DocDeckState)
}

func (s *Server) httpStatePutDeck(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	s.putState(w, r, statedb.DocDeckState, sess)
}

func (s *Server) httpStateHistory(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	// The URL uses the short form, eg /api/state/history/site
	kind := statedb.DocKind(params.ByName("kind") + "_state")
	if !kind.IsValid() {
		www.PanicBadRequestf("Unknown document class '%v'", params.ByName("kind"))
	}
	rows, err := s.stateDB.History(kind, www.QueryInt(r, "limit"))
	www.Check(err)
	www.SendJSON(w, rows)
}
