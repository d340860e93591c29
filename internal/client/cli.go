package client

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/bestxi/internal/domain/types"
)

// PrintLineup writes a numbered lineup to w.
func PrintLineup(w io.Writer, lineup types.Lineup) {
	fmt.Fprintf(w, "Best XI for %s vs %s\n", lineup.Team1, lineup.Team2)
	if lineup.Degraded {
		fmt.Fprintln(w, "warning: match history unavailable, lineup is empty")
	}
	if len(lineup.Players) == 0 {
		fmt.Fprintln(w, "  (no players with match history)")
	}
	for i, p := range lineup.Players {
		fmt.Fprintf(w, "%3d. %s\n", i+1, p)
	}
}

// PrintTeams writes one line per team to w.
func PrintTeams(w io.Writer, teams types.Teams) {
	for _, t := range teams.Teams {
		fmt.Fprintf(w, "%-5s %s\n", t.Code, strings.Join(t.Players, ", "))
	}
}

// ShowHelp prints usage information for the pick tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Best XI Picker
==============

Asks a running lineup service for the best eleven of a fixture.

Usage:
  go run cmd/pick/main.go -team1 MI -team2 CSK [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:5000")
  -team1 string
        Home team code, e.g. MI
  -team2 string
        Away team code, e.g. CSK
  -teams
        List the configured teams and exit
  -timeout duration
        HTTP request timeout (default 30s)
  -help
        Show this help message
`)
}
