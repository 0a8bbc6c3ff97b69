package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/quorumhq/quorum/server"
	"github.com/quorumhq/quorum/server/config"
)

func main() {
	parser := argparse.NewParser("quorum", "Investor relations portal server")
	configFile := parser.String("c", "config", &argparse.Options{Help: "Configuration file", Default: "quorum.json"})
	port := parser.String("p", "port", &argparse.Options{Help: "Override the HTTP port from the config file", Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.HTTPPort = *port
	}

	srv, err := server.NewServer(logger, cfg)
	if err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
	srv.ListenForKillSignals()

	if err := srv.ListenHTTP(cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("HTTP server failed: %v", err)
		os.Exit(1)
	}
}
