// Package types contains common types used across the application
package types

// Lineup is the result of one submit-teams request.
type Lineup struct {
	RequestID string   `json:"request_id"`
	Team1     string   `json:"team1"`
	Team2     string   `json:"team2"`
	Players   []string `json:"players"`
	// Degraded is set when the match store failed and no history was used.
	Degraded bool `json:"degraded"`
}

// TeamRoster is a team code with its eligible players.
type TeamRoster struct {
	Code    string   `json:"code"`
	Players []string `json:"players"`
}

// Teams lists every configured roster.
type Teams struct {
	Teams []TeamRoster `json:"teams"`
}
