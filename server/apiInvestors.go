package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/session"
	"github.com/quorumhq/quorum/server/statedb"
)

func (s *Server) httpInvestorsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	list, err := s.stateDB.ListPrincipals(statedb.RoleInvestor)
	www.Check(err)
	www.SendJSON(w, list)
}

func (s *Server) httpInvestorsSessions(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	list, err := s.stateDB.ListLogins(www.QueryInt(r, "limit"))
	www.Check(err)
	www.SendJSON(w, list)
}

// SYNC-DASHBOARD-JSON
type dashboardJSON struct {
	Persona *statedb.Principal  `json:"persona"`
	Site    *statedb.CurrentDoc `json:"site"`
}

// The investor dashboard: the caller's persona plus the current site content.
// Admins can preview any investor's dashboard with ?slug=.
func (s *Server) httpDashboard(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	slug := sess.Slug
	if sess.Role == session.RoleAdmin && www.QueryValue(r, "slug") != "" {
		slug = www.QueryValue(r, "slug")
	}
	persona, err := s.stateDB.GetPrincipal(slug)
	www.Check(err)
	if persona == nil {
		// A valid token for a deleted principal. Tokens are stateless, so they
		// outlive the principal. 404, not 401.
		www.PanicNotFound()
	}
	site, err := s.stateDB.ReadCurrent(statedb.DocSiteState, emptyDocument)
	www.Check(err)
	www.CacheNever(w)
	www.SendJSON(w, &dashboardJSON{
		Persona: persona,
		Site:    site,
	})
}
