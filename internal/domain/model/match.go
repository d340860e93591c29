// Package model contains domain models passed between layers.
package model

import "math"

// TeamID is the short franchise code used in rosters and match rows, e.g. "MI".
type TeamID string

// Columns is the fixed schema of tracked numeric statistics. The order is the
// feature order handed to the preprocessor and must match the trained artifacts.
var Columns = [NumColumns]string{
	"batting_position", "runs", "balls", "fours", "sixes", "strike_rate",
	"50_runs", "100_runs", "30_runs", "Duck", "overs", "dots", "maidens", "conceded",
	"foursConceded", "sixesConceded", "wickets", "economyRate", "wides", "noballs",
	"LBW", "Hitwicket", "CaughtBowled", "Bowled", "3_wickets",
	"4_wickets", "5_wickets", "ecoPoints", "catching_FP", "stumping_FP",
	"direct_runout_FP", "indirect_runout_FP", "Starting_11", "Captain", "Vice Captain",
}

// NumColumns is the width of every feature vector.
const NumColumns = 35

// Stats holds one value per tracked column, indexed like Columns. A cell the
// source left empty holds Missing().
type Stats [NumColumns]float64

// Missing is the value of a stat cell with no recorded value.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is a cell with no recorded value.
func IsMissing(v float64) bool { return math.IsNaN(v) }

var columnIndex = func() map[string]int {
	m := make(map[string]int, NumColumns)
	for i, c := range Columns {
		m[c] = i
	}
	return m
}()

// ColumnIndex returns the position of a tracked column in Stats.
func ColumnIndex(name string) (int, bool) {
	i, ok := columnIndex[name]
	return i, ok
}

// Get returns the value of a tracked column, or 0 for an unknown name. Empty
// cells come back as Missing().
func (s Stats) Get(name string) float64 {
	if i, ok := columnIndex[name]; ok {
		return s[i]
	}
	return 0
}

// MatchRecord is one player's statistics for one match.
type MatchRecord struct {
	Player   string // full name, repeats across matches
	HomeTeam TeamID
	AwayTeam TeamID
	Seq      int64 // chronological match-sequence key, oldest first
	Stats    Stats
}

// IsHeadToHead reports whether the record comes from a match between t1 and t2,
// regardless of which side was at home.
func (r MatchRecord) IsHeadToHead(t1, t2 TeamID) bool {
	return (r.HomeTeam == t1 && r.AwayTeam == t2) || (r.HomeTeam == t2 && r.AwayTeam == t1)
}

// PlayerFeatureRow is the per-column mean of a player's selected records.
// Features never hold Missing().
type PlayerFeatureRow struct {
	Player   string
	Features Stats
	Matches  int // number of records averaged; 0 for a default row
}

// ScoredPlayer is a feature row with the score predicted for it.
type ScoredPlayer struct {
	PlayerFeatureRow
	PredictedScore float64
}
