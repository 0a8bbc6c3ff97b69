package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/session"
	"github.com/quorumhq/quorum/server/statedb"
)

// SYNC-LOGIN-REQUEST-JSON
type loginRequestJSON struct {
	Slug string `json:"slug"`
	PIN  string `json:"pin"`
}

// SYNC-LOGIN-RESPONSE-JSON
type loginResponseJSON struct {
	Slug string       `json:"slug"`
	Role session.Role `json:"role"`
	Exp  int64        `json:"exp"`
}

func (s *Server) httpAuthLogin(w http.ResponseWriter, r *http.Request) {
	req := loginRequestJSON{}
	www.ReadJSON(w, r, &req, 64*1024)

	principal, err := s.stateDB.VerifyPIN(req.Slug, req.PIN)
	www.Check(err)
	if principal == nil {
		// Unknown slug and wrong PIN are indistinguishable on purpose
		www.SendError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	token, sess, err := s.sessions.Issue(principal.Slug, session.Role(principal.Role))
	www.Check(err)

	s.stateDB.RecordLogin(principal.Slug, principal.Role, r.RemoteAddr, r.UserAgent())
	s.Log.Infof("Logging %v in as %v", principal.Slug, principal.Role)

	http.SetCookie(w, session.NewCookie(token, s.secureCookies))
	www.SendJSON(w, &loginResponseJSON{
		Slug: sess.Slug,
		Role: sess.Role,
		Exp:  sess.Exp,
	})
}

func (s *Server) httpAuthLogout(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	// Tokens are stateless, so logout is nothing more than dropping the cookie.
	// The token itself remains valid until it expires.
	http.SetCookie(w, session.ClearCookie(s.secureCookies))
	www.SendOK(w)
}

func (s *Server) httpAuthWhoAmi(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	www.SendJSON(w, &loginResponseJSON{
		Slug: sess.Slug,
		Role: sess.Role,
		Exp:  sess.Exp,
	})
}

// SYNC-CREATE-PRINCIPAL-JSON
type createPrincipalJSON struct {
	Slug string `json:"slug"`
	Role string `json:"role"`
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// Create a principal. This route is special: creating the very first admin
// requires no authentication, because there is nobody who could provide it.
// Once an admin exists, only admins may create principals.
func (s *Server) httpAuthCreatePrincipal(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	req := createPrincipalJSON{}
	www.ReadJSON(w, r, &req, 64*1024)

	sess := s.sessions.Verify(session.TokenFromRequest(r))
	if sess == nil || sess.Role != session.RoleAdmin {
		n, err := s.stateDB.NumAdmins()
		www.Check(err)
		if n != 0 {
			// There is already an admin, so you can't use the bootstrap path
			www.SendError(w, "admin access required", http.StatusForbidden)
			return
		}
		if req.Role != statedb.RoleAdmin {
			www.PanicBadRequestf("The initial principal must be an admin")
		}
		s.Log.Infof("Creating initial admin principal %v", req.Slug)
	}

	principal, err := s.stateDB.CreatePrincipal(req.Slug, req.Role, req.Name, req.PIN)
	if err != nil {
		www.PanicBadRequestf("Failed to create principal: %v", err)
	}
	s.Log.Infof("Created principal %v (%v)", principal.Slug, principal.Role)
	www.SendID(w, principal.ID)
}

func (s *Server) httpAuthListPrincipals(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	list, err := s.stateDB.ListPrincipals(www.QueryValue(r, "role"))
	www.Check(err)
	www.SendJSON(w, list)
}

func (s *Server) httpAuthDeletePrincipal(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	id := www.ParseID(params.ByName("id"))
	if id == 0 {
		www.PanicBadRequestf("Invalid principal id")
	}
	www.Check(s.stateDB.DeletePrincipal(id))
	www.SendOK(w)
}

func (s *Server) httpAuthSetPIN(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	pin := www.ReadString(w, r, 1024)
	if err := s.stateDB.SetPIN(params.ByName("slug"), pin); err != nil {
		www.PanicBadRequestf("Failed to set PIN: %v", err)
	}
	www.SendOK(w)
}
