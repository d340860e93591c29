package repository

import (
	"database/sql"
	"strings"

	"github.com/okian/bestxi/internal/domain/model"
)

// matchRow is one match_records row. Stat columns are nullable: NULL is a
// cell the export left empty. Field order follows model.Columns.
type matchRow struct {
	Seq      int64  `db:"seq"`
	Player   string `db:"full_name"`
	HomeTeam string `db:"home_team"`
	AwayTeam string `db:"away_team"`

	BattingPosition  sql.NullFloat64 `db:"s_batting_position"`
	Runs             sql.NullFloat64 `db:"s_runs"`
	Balls            sql.NullFloat64 `db:"s_balls"`
	Fours            sql.NullFloat64 `db:"s_fours"`
	Sixes            sql.NullFloat64 `db:"s_sixes"`
	StrikeRate       sql.NullFloat64 `db:"s_strike_rate"`
	Fifties          sql.NullFloat64 `db:"s_50_runs"`
	Hundreds         sql.NullFloat64 `db:"s_100_runs"`
	Thirties         sql.NullFloat64 `db:"s_30_runs"`
	Duck             sql.NullFloat64 `db:"s_duck"`
	Overs            sql.NullFloat64 `db:"s_overs"`
	Dots             sql.NullFloat64 `db:"s_dots"`
	Maidens          sql.NullFloat64 `db:"s_maidens"`
	Conceded         sql.NullFloat64 `db:"s_conceded"`
	FoursConceded    sql.NullFloat64 `db:"s_foursconceded"`
	SixesConceded    sql.NullFloat64 `db:"s_sixesconceded"`
	Wickets          sql.NullFloat64 `db:"s_wickets"`
	EconomyRate      sql.NullFloat64 `db:"s_economyrate"`
	Wides            sql.NullFloat64 `db:"s_wides"`
	NoBalls          sql.NullFloat64 `db:"s_noballs"`
	LBW              sql.NullFloat64 `db:"s_lbw"`
	HitWicket        sql.NullFloat64 `db:"s_hitwicket"`
	CaughtBowled     sql.NullFloat64 `db:"s_caughtbowled"`
	Bowled           sql.NullFloat64 `db:"s_bowled"`
	ThreeWickets     sql.NullFloat64 `db:"s_3_wickets"`
	FourWickets      sql.NullFloat64 `db:"s_4_wickets"`
	FiveWickets      sql.NullFloat64 `db:"s_5_wickets"`
	EcoPoints        sql.NullFloat64 `db:"s_ecopoints"`
	CatchingFP       sql.NullFloat64 `db:"s_catching_fp"`
	StumpingFP       sql.NullFloat64 `db:"s_stumping_fp"`
	DirectRunoutFP   sql.NullFloat64 `db:"s_direct_runout_fp"`
	IndirectRunoutFP sql.NullFloat64 `db:"s_indirect_runout_fp"`
	Starting11       sql.NullFloat64 `db:"s_starting_11"`
	Captain          sql.NullFloat64 `db:"s_captain"`
	ViceCaptain      sql.NullFloat64 `db:"s_vice_captain"`
}

// statAlias is the select alias of a tracked column. The table keeps the
// export spelling ("Vice Captain", "50_runs"); aliases are plain snake case.
func statAlias(column string) string {
	return "s_" + strings.ToLower(strings.ReplaceAll(column, " ", "_"))
}

func (r matchRow) record() model.MatchRecord {
	cells := [model.NumColumns]sql.NullFloat64{
		r.BattingPosition,
		r.Runs,
		r.Balls,
		r.Fours,
		r.Sixes,
		r.StrikeRate,
		r.Fifties,
		r.Hundreds,
		r.Thirties,
		r.Duck,
		r.Overs,
		r.Dots,
		r.Maidens,
		r.Conceded,
		r.FoursConceded,
		r.SixesConceded,
		r.Wickets,
		r.EconomyRate,
		r.Wides,
		r.NoBalls,
		r.LBW,
		r.HitWicket,
		r.CaughtBowled,
		r.Bowled,
		r.ThreeWickets,
		r.FourWickets,
		r.FiveWickets,
		r.EcoPoints,
		r.CatchingFP,
		r.StumpingFP,
		r.DirectRunoutFP,
		r.IndirectRunoutFP,
		r.Starting11,
		r.Captain,
		r.ViceCaptain,
	}
	rec := model.MatchRecord{
		Player:   r.Player,
		HomeTeam: model.TeamID(r.HomeTeam),
		AwayTeam: model.TeamID(r.AwayTeam),
		Seq:      r.Seq,
	}
	for i, c := range cells {
		if c.Valid {
			rec.Stats[i] = c.Float64
		} else {
			rec.Stats[i] = model.Missing()
		}
	}
	return rec
}
