package server

import (
	"net/http"
	"time"

	"github.com/cyclopcam/www"
	"github.com/go-chi/httprate"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/session"
)

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload)

func (s *Server) setupHttpRoutes() error {
	router := httprouter.New()

	// protected creates an HTTP handler that requires a valid session token
	// carrying one of the allowed roles. An empty role list means any
	// authenticated principal.
	// Authentication failures all look identical to the caller (a bad
	// signature and an expired token both produce the same 401), but the
	// distinction between "not authenticated" (401) and "wrong role" (403)
	// is kept.
	protected := func(method, route string, handle authenticatedHandler, allowRoles ...session.Role) {
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			sess := s.sessions.Verify(session.TokenFromRequest(r))
			if sess == nil {
				www.SendError(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			if len(allowRoles) != 0 {
				allowed := false
				for _, role := range allowRoles {
					if sess.Role == role {
						allowed = true
						break
					}
				}
				if !allowed {
					www.SendError(w, string(allowRoles[0])+" access required", http.StatusForbidden)
					return
				}
			}
			handle(w, r, params, sess)
		})
	}

	// admin is shorthand for routes only admins may touch
	admin := func(method, route string, handle authenticatedHandler) {
		protected(method, route, handle, session.RoleAdmin)
	}

	// unprotected creates an HTTP handler that is accessible without authentication
	unprotected := func(method, route string, handle httprouter.Handle) {
		www.Handle(s.Log, router, method, route, handle)
	}

	// ratelimited creates an unprotected handler with a per-IP rate limit.
	// We only need this for login, to slow down PIN guessing.
	ratelimited := func(method, route string, handle http.HandlerFunc, requestLimit int, windowLength time.Duration) {
		limited := httprate.Limit(requestLimit, windowLength, httprate.WithKeyFuncs(httprate.KeyByIP))
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			limited(handle).ServeHTTP(w, r)
		})
	}

	unprotected("GET", "/api/ping", s.httpPing)

	ratelimited("POST", "/api/auth/login", s.httpAuthLogin, 5, time.Minute)
	protected("POST", "/api/auth/logout", s.httpAuthLogout)
	protected("GET", "/api/auth/whoami", s.httpAuthWhoAmi)
	unprotected("POST", "/api/auth/principal", s.httpAuthCreatePrincipal)
	admin("GET", "/api/auth/principals", s.httpAuthListPrincipals)
	admin("DELETE", "/api/auth/principal/:id", s.httpAuthDeletePrincipal)
	admin("POST", "/api/auth/principal/:slug/pin", s.httpAuthSetPIN)

	protected("GET", "/api/state/site", s.httpStateGetSite, session.RoleInvestor, session.RoleAdmin, session.RoleDeck)
	admin("PUT", "/api/state/site", s.httpStatePutSite)
	admin("GET", "/api/state/bos", s.httpStateGetBos)
	admin("PUT", "/api/state/bos", s.httpStatePutBos)
	protected("GET", "/api/state/timeline", s.httpStateGetTimeline, session.RoleInvestor, session.RoleAdmin)
	admin("PUT", "/api/state/timeline", s.httpStatePutTimeline)
	protected("GET", "/api/state/deck", s.httpStateGetDeck, session.RoleDeck, session.RoleAdmin)
	admin("PUT", "/api/state/deck", s.httpStatePutDeck)
	// Not /api/state/:kind/history, because httprouter won't mix a wildcard
	// with the static siblings above.
	admin("GET", "/api/state/history/:kind", s.httpStateHistory)

	protected("GET", "/api/partners", s.httpPartnersList, session.RoleInvestor, session.RoleAdmin)
	admin("POST", "/api/partners", s.httpPartnersAdd)
	admin("PUT", "/api/partners/:id", s.httpPartnersUpdate)
	admin("DELETE", "/api/partners/:id", s.httpPartnersDelete)
	admin("POST", "/api/partners/:id/position", s.httpPartnersSetPosition)

	admin("GET", "/api/investors", s.httpInvestorsList)
	admin("GET", "/api/investors/sessions", s.httpInvestorsSessions)
	protected("GET", "/api/dashboard", s.httpDashboard, session.RoleInvestor, session.RoleAdmin)

	admin("GET", "/api/ws/changes", s.httpWatchChanges)

	s.httpRouter = router
	return nil
}

func (s *Server) httpPing(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	www.SendJSON(w, map[string]any{
		"time": time.Now().Unix(),
	})
}
