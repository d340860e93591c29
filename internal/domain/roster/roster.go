// Package roster holds the immutable team-code to player-name mapping that
// feeds the candidate pool for a lineup request.
package roster

import (
	"sort"

	"github.com/okian/bestxi/internal/domain/model"
)

// Roster maps team codes to their ordered list of eligible players.
// It is built once at startup and never mutated afterwards, so it is safe
// for concurrent readers.
type Roster struct {
	teams map[model.TeamID][]string
	codes []model.TeamID
}

// New builds a Roster from a plain mapping. The input is copied; blank
// team codes are skipped.
func New(teams map[string][]string) *Roster {
	r := &Roster{teams: make(map[model.TeamID][]string, len(teams))}
	for code, players := range teams {
		if code == "" {
			continue
		}
		id := model.TeamID(code)
		r.teams[id] = append([]string(nil), players...)
		r.codes = append(r.codes, id)
	}
	sort.Slice(r.codes, func(i, j int) bool { return r.codes[i] < r.codes[j] })
	return r
}

// Lookup returns a copy of the players for team. Unknown teams are reported
// with ok == false and a nil slice; callers treat that as an empty roster.
func (r *Roster) Lookup(team model.TeamID) ([]string, bool) {
	players, ok := r.teams[team]
	if !ok {
		return nil, false
	}
	return append([]string(nil), players...), true
}

// Pool returns the candidate players for a match between t1 and t2: both
// rosters concatenated, keeping the first occurrence of a name that is
// listed for both teams.
func (r *Roster) Pool(t1, t2 model.TeamID) []string {
	a := r.teams[t1]
	b := r.teams[t2]
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, name := range list {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Has reports whether team is configured.
func (r *Roster) Has(team model.TeamID) bool {
	_, ok := r.teams[team]
	return ok
}

// Teams returns the configured team codes in ascending order.
func (r *Roster) Teams() []model.TeamID {
	return append([]model.TeamID(nil), r.codes...)
}

// Len returns the number of configured teams.
func (r *Roster) Len() int { return len(r.codes) }
