package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/bestxi/internal/adapters/repository"
	"github.com/okian/bestxi/internal/domain/model"
)

// csvHeader is the full export header: identity columns, every tracked
// column and a couple of extras the store must ignore.
func csvHeader() string {
	cols := append([]string{"match_id", "fullName", "home_team", "away_team"}, model.Columns[:]...)
	cols = append(cols, "Total_FP")
	return strings.Join(cols, ",")
}

// csvRow renders a row with runs and wickets set and every other stat zero.
func csvRow(player, home, away, runs, wickets string) string {
	vals := make([]string, 0, 5+model.NumColumns)
	vals = append(vals, "1", player, home, away)
	for _, c := range model.Columns {
		switch c {
		case "runs":
			vals = append(vals, runs)
		case "wickets":
			vals = append(vals, wickets)
		case "Captain":
			vals = append(vals, "False")
		case "Starting_11":
			vals = append(vals, "True")
		default:
			vals = append(vals, "0")
		}
	}
	vals = append(vals, "99")
	return strings.Join(vals, ",")
}

func writeCSV(dir string, lines ...string) string {
	path := filepath.Join(dir, "matches.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		panic(err)
	}
	return path
}

func TestCSVStore_Records(t *testing.T) {
	Convey("Given a CSV export with three players", t, func() {
		dir := t.TempDir()
		path := writeCSV(dir,
			csvHeader(),
			csvRow("Rohit Sharma", "MI", "CSK", "10", "0"),
			csvRow("MS Dhoni", "CSK", "MI", "25", "0"),
			csvRow("Rohit Sharma", "MI", "RCB", "20", "1"),
			csvRow("Virat Kohli", "RCB", "MI", "70", "0"),
			csvRow("Rohit Sharma", "KKR", "MI", "", "2"),
			csvRow("Virat Kohli", "RCB", "KKR", "45", "nan"),
		)
		store := repository.NewCSVStore(path)
		ctx := context.Background()

		Convey("When querying for Rohit Sharma and an unknown player", func() {
			recs, err := store.Records(ctx, []string{"Rohit Sharma", "Nobody"})

			Convey("Then only Rohit's rows come back in file order", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 3)
				So(recs[0].Seq, ShouldBeLessThan, recs[1].Seq)
				So(recs[1].Seq, ShouldBeLessThan, recs[2].Seq)
				So(recs[0].HomeTeam, ShouldEqual, model.TeamID("MI"))
				So(recs[0].AwayTeam, ShouldEqual, model.TeamID("CSK"))
				So(recs[1].Stats.Get("runs"), ShouldEqual, 20.0)
				So(recs[1].Stats.Get("wickets"), ShouldEqual, 1.0)
			})

			Convey("And blanks are kept as missing while booleans are read as numbers", func() {
				So(model.IsMissing(recs[2].Stats.Get("runs")), ShouldBeTrue)
				So(recs[2].Stats.Get("wickets"), ShouldEqual, 2.0)
				So(recs[2].Stats.Get("Starting_11"), ShouldEqual, 1.0)
				So(recs[2].Stats.Get("Captain"), ShouldEqual, 0.0)
			})
		})

		Convey("When a cell holds nan", func() {
			recs, err := store.Records(ctx, []string{"Virat Kohli"})

			Convey("Then it is missing rather than zero", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 2)
				So(recs[1].Stats.Get("runs"), ShouldEqual, 45.0)
				So(model.IsMissing(recs[1].Stats.Get("wickets")), ShouldBeTrue)
			})
		})

		Convey("When matching names", func() {
			recs, err := store.Records(ctx, []string{"rohit sharma"})

			Convey("Then the match is case-sensitive", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When no names are requested", func() {
			recs, err := store.Records(ctx, nil)

			Convey("Then nothing is read and nothing is returned", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("And the driver is csv", func() {
			So(store.Driver(), ShouldEqual, repository.DriverCSV)
			So(store.Close(), ShouldBeNil)
		})
	})

	Convey("Given a missing file", t, func() {
		store := repository.NewCSVStore(filepath.Join(t.TempDir(), "absent.csv"))

		Convey("Then queries fail as unavailable", func() {
			_, err := store.Records(context.Background(), []string{"Rohit Sharma"})
			So(err, ShouldNotBeNil)
			So(errors.Is(err, repository.ErrUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a file without a tracked column", t, func() {
		path := writeCSV(t.TempDir(), "fullName,home_team,away_team,runs", "Rohit Sharma,MI,CSK,10")
		store := repository.NewCSVStore(path)

		Convey("Then queries fail as malformed", func() {
			_, err := store.Records(context.Background(), []string{"Rohit Sharma"})
			So(errors.Is(err, repository.ErrMalformed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "batting_position")
		})
	})

	Convey("Given a file with a non-numeric stat", t, func() {
		path := writeCSV(t.TempDir(), csvHeader(), csvRow("Rohit Sharma", "MI", "CSK", "lots", "0"))
		store := repository.NewCSVStore(path)

		Convey("Then queries fail as malformed and name the column", func() {
			_, err := store.Records(context.Background(), []string{"Rohit Sharma"})
			So(errors.Is(err, repository.ErrMalformed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"runs"`)
		})
	})

	Convey("Given an empty file", t, func() {
		path := writeCSV(t.TempDir())
		store := repository.NewCSVStore(path)

		Convey("Then queries fail as malformed", func() {
			_, err := store.Records(context.Background(), []string{"Rohit Sharma"})
			So(errors.Is(err, repository.ErrMalformed), ShouldBeTrue)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given the store factory", t, func() {
		ctx := context.Background()

		Convey("When asking for a csv store", func() {
			s, err := repository.Open(ctx, repository.DriverCSV, "data.csv")
			So(err, ShouldBeNil)
			So(s.Driver(), ShouldEqual, repository.DriverCSV)
		})

		Convey("When the csv store has no path", func() {
			_, err := repository.Open(ctx, repository.DriverCSV, "")
			So(errors.Is(err, repository.ErrUnavailable), ShouldBeTrue)
		})

		Convey("When the driver is unknown", func() {
			_, err := repository.Open(ctx, "mongo", "x")
			So(errors.Is(err, repository.ErrUnknownDriver), ShouldBeTrue)
		})
	})
}
