package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/session"
	"github.com/quorumhq/quorum/server/statedb"
)

func (s *Server) httpPartnersList(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	list, err := s.stateDB.ListPartners()
	www.Check(err)
	www.SendJSON(w, list)
}

func (s *Server) httpPartnersAdd(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	partner := statedb.Partner{}
	www.ReadJSON(w, r, &partner, 1024*1024)
	id, err := s.stateDB.AddPartner(&partner)
	if err != nil {
		www.PanicBadRequestf("Failed to add partner: %v", err)
	}
	s.Log.Infof("Added partner %v (%v)", partner.Name, id)
	www.SendID(w, id)
}

func (s *Server) httpPartnersUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	partner := statedb.Partner{}
	www.ReadJSON(w, r, &partner, 1024*1024)
	partner.ID = www.ParseID(params.ByName("id"))
	if partner.ID == 0 {
		www.PanicBadRequestf("Invalid partner id")
	}
	www.Check(s.stateDB.UpdatePartner(&partner))
	www.SendOK(w)
}

func (s *Server) httpPartnersDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	id := www.ParseID(params.ByName("id"))
	partner, err := s.stateDB.GetPartner(id)
	www.Check(err)
	if partner == nil {
		www.PanicNotFound()
	}
	www.Check(s.stateDB.DeletePartner(id))
	www.SendOK(w)
}

// SYNC-PARTNER-POSITION-JSON
type partnerPositionJSON struct {
	PosX float64 `json:"posX"`
	PosY float64 `json:"posY"`
}

func (s *Server) httpPartnersSetPosition(w http.ResponseWriter, r *http.Request, params httprouter.Params, sess *session.Payload) {
	id := www.ParseID(params.ByName("id"))
	if id == 0 {
		www.PanicBadRequestf("Invalid partner id")
	}
	pos := partnerPositionJSON{}
	www.ReadJSON(w, r, &pos, 64*1024)
	www.Check(s.stateDB.SetPartnerPosition(id, pos.PosX, pos.PosY))
	www.SendOK(w)
}
