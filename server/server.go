package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/quorumhq/quorum/server/config"
	"github.com/quorumhq/quorum/server/session"
	"github.com/quorumhq/quorum/server/statedb"
)

type Server struct {
	Log logs.Log

	signalIn      chan os.Signal
	httpServer    *http.Server
	httpRouter    *httprouter.Router
	sessions      *session.Service
	stateDB       *statedb.StateDB
	secureCookies bool
	wsUpgrader    websocket.Upgrader
	watchers      *changeWatchers
}

func NewServer(logger logs.Log, cfg *config.Config) (*Server, error) {
	sessions, err := session.NewService(config.SessionSecret())
	if err != nil {
		return nil, err
	}
	stateDB, err := statedb.NewStateDB(logger, cfg.DB)
	if err != nil {
		return nil, err
	}
	s := &Server{
		Log:           logger,
		sessions:      sessions,
		stateDB:       stateDB,
		secureCookies: cfg.SecureCookies,
		watchers:      newChangeWatchers(logger),
	}
	if err := s.setupHttpRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// port example: ":8080"
func (s *Server) ListenHTTP(port string) error {
	s.Log.Infof("Listening on %v", port)
	s.httpServer = &http.Server{
		Addr:    port,
		Handler: s.httpRouter,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) ListenForKillSignals() {
	s.signalIn = make(chan os.Signal, 1)
	signal.Notify(s.signalIn, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-s.signalIn
		if ok {
			s.Log.Infof("Received OS signal '%v'. Shutting down", sig.String())
			s.Shutdown()
		} else {
			// This path gets hit when Shutdown() is called by something other than ourselves,
			// and Shutdown() closes the signalIn channel.
			s.Log.Infof("signalIn closed. ListenForKillSignals will exit now")
		}
	}()
}

func (s *Server) Shutdown() {
	s.Log.Infof("Shutdown")
	signal.Stop(s.signalIn)
	close(s.signalIn)
	s.watchers.closeAll()
	s.Log.Infof("Closing HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.Log.Warnf("Shutdown complete, with error: %v", err)
	} else {
		s.Log.Infof("Shutdown complete")
	}
	s.Log.Close()
}
