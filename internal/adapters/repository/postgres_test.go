package repository

import (
	"context"
	"database/sql"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okian/bestxi/internal/domain/model"
)

func TestSelectRecordsQuery(t *testing.T) {
	q := selectRecordsQuery()

	require.True(t, strings.HasPrefix(q,
		`SELECT seq, "fullName" AS full_name, home_team, away_team, "batting_position" AS s_batting_position`))
	require.Contains(t, q, `"Vice Captain" AS s_vice_captain`)
	require.Contains(t, q, `"50_runs" AS s_50_runs`)
	require.True(t, strings.HasSuffix(q, `FROM match_records WHERE "fullName" = ANY($1) ORDER BY seq ASC`))
	require.Equal(t, 4+model.NumColumns-1, strings.Count(q[:strings.Index(q, " FROM ")], ","))
}

func TestMatchRowFollowsColumns(t *testing.T) {
	rt := reflect.TypeOf(matchRow{})
	const identity = 4
	require.Equal(t, identity+model.NumColumns, rt.NumField())

	var row matchRow
	rv := reflect.ValueOf(&row).Elem()
	for i, c := range model.Columns {
		f := rt.Field(identity + i)
		require.Equal(t, statAlias(c), f.Tag.Get("db"), "field %s", f.Name)
		rv.Field(identity + i).Set(reflect.ValueOf(sql.NullFloat64{Float64: float64(i + 1), Valid: true}))
	}

	rec := row.record()
	for i := range model.Columns {
		require.Equal(t, float64(i+1), rec.Stats[i], "column %s", model.Columns[i])
	}
}

func TestMatchRowNullIsMissing(t *testing.T) {
	row := matchRow{
		Seq: 7, Player: "Rohit Sharma", HomeTeam: "MI", AwayTeam: "CSK",
		Runs:        sql.NullFloat64{Float64: 42, Valid: true},
		EconomyRate: sql.NullFloat64{},
	}

	rec := row.record()
	require.Equal(t, int64(7), rec.Seq)
	require.Equal(t, model.TeamID("CSK"), rec.AwayTeam)
	require.Equal(t, 42.0, rec.Stats.Get("runs"))
	require.True(t, model.IsMissing(rec.Stats.Get("economyRate")))
}

func TestMigrationsEmbedded(t *testing.T) {
	up, err := migrationsFile("000001_create_match_records.up.sql")
	require.NoError(t, err)
	for _, c := range model.Columns {
		require.Contains(t, up, `"`+c+`"`, "migration must create column %s", c)
	}

	down, err := migrationsFile("000001_create_match_records.down.sql")
	require.NoError(t, err)
	require.Contains(t, down, "DROP TABLE IF EXISTS match_records")

	nullable, err := migrationsFile("000002_nullable_match_stats.up.sql")
	require.NoError(t, err)
	for _, c := range model.Columns {
		require.Contains(t, nullable, `ALTER COLUMN "`+c+`" DROP NOT NULL`)
	}
	restore, err := migrationsFile("000002_nullable_match_stats.down.sql")
	require.NoError(t, err)
	require.Contains(t, restore, `ALTER COLUMN "Vice Captain" SET NOT NULL`)
}

// TestPostgresStore_Records runs against a real database when
// BESTXI_TEST_DATABASE_URL is set.
func TestPostgresStore_Records(t *testing.T) {
	url := os.Getenv("BESTXI_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BESTXI_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	store, err := OpenPostgres(ctx, url, WithMigrate(true))
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	_, err = store.db.ExecContext(ctx, `TRUNCATE match_records RESTART IDENTITY`)
	require.NoError(t, err)
	for _, r := range []struct {
		player, home, away string
		runs               float64
	}{
		{"Rohit Sharma", "MI", "CSK", 10},
		{"MS Dhoni", "CSK", "MI", 30},
		{"Rohit Sharma", "MI", "RCB", 20},
		{"Rohit Sharma", "MI", "KKR", -1},
	} {
		var runs any = r.runs
		if r.runs < 0 {
			runs = nil
		}
		_, err = store.db.ExecContext(ctx,
			`INSERT INTO match_records ("fullName", home_team, away_team, "runs") VALUES ($1, $2, $3, $4)`,
			r.player, r.home, r.away, runs)
		require.NoError(t, err)
	}

	recs, err := store.Records(ctx, []string{"Rohit Sharma"})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Less(t, recs[0].Seq, recs[1].Seq)
	require.Equal(t, 10.0, recs[0].Stats.Get("runs"))
	require.Equal(t, model.TeamID("RCB"), recs[1].AwayTeam)
	require.True(t, model.IsMissing(recs[2].Stats.Get("runs")))
	require.True(t, model.IsMissing(recs[2].Stats.Get("wickets")))
	require.Equal(t, DriverPostgres, store.Driver())
}
