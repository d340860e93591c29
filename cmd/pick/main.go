package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/bestxi/internal/client"
	"github.com/okian/bestxi/pkg/logger"
)

// Default configuration constants.
const (
	defaultURL     = "http://localhost:5000"
	defaultTimeout = 30 * time.Second
)

func main() {
	var (
		baseURL   = flag.String("url", defaultURL, "Base URL of the service")
		team1     = flag.String("team1", "", "Home team code, e.g. MI")
		team2     = flag.String("team2", "", "Away team code, e.g. CSK")
		listTeams = flag.Bool("teams", false, "List the configured teams and exit")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		client.ShowHelp()
		return
	}
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("pick")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.New(*baseURL, client.WithTimeout(*timeout))

	if *listTeams {
		teams, err := c.Teams(ctx)
		if err != nil {
			log.Error(ctx, "list teams failed", logger.Error(err))
			os.Exit(1)
		}
		client.PrintTeams(os.Stdout, teams)
		return
	}

	if *team1 == "" || *team2 == "" {
		client.ShowHelp()
		os.Exit(2)
	}

	lineup, err := c.SubmitTeams(ctx, *team1, *team2)
	if err != nil {
		log.Error(ctx, "lineup request failed", logger.Error(err))
		os.Exit(1)
	}
	log.Debug(ctx, "lineup received", logger.String("requestID", lineup.RequestID))
	client.PrintLineup(os.Stdout, lineup)
}
