package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/bestxi/internal/adapters/artifact"
	"github.com/okian/bestxi/internal/adapters/repository"
	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/internal/domain/aggregate"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/roster"
)

// writeMatchCSV writes an export where only runs and wickets are non-zero.
func writeMatchCSV(dir string, rows [][4]string) string {
	header := append([]string{"fullName", "home_team", "away_team"}, model.Columns[:]...)
	lines := []string{strings.Join(header, ",")}
	for _, r := range rows {
		vals := []string{r[0], r[1], r[2]}
		for _, c := range model.Columns {
			if c == "runs" {
				vals = append(vals, r[3])
			} else {
				vals = append(vals, "0")
			}
		}
		lines = append(lines, strings.Join(vals, ","))
	}
	path := filepath.Join(dir, "ipl_data.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		panic(err)
	}
	return path
}

func writeRunsArtifacts(dir string) {
	files := map[string]string{
		artifact.DefaultPreprocessorFile: `{"columns":["runs"],"mean":[25],"scale":[5]}`,
		artifact.DefaultModelFile:        `{"coefficients":[4],"intercept":50}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			panic(err)
		}
	}
}

func TestService_Integration(t *testing.T) {
	Convey("Given a service over a CSV export and JSON artifacts", t, func() {
		dir := t.TempDir()
		dataFile := writeMatchCSV(dir, [][4]string{
			{"Rohit Sharma", "MI", "RCB", "10"},
			{"MS Dhoni", "CSK", "MI", "55"},
			{"Rohit Sharma", "MI", "CSK", "80"},
			{"Hardik Pandya", "GT", "LSG", "35"},
			{"Ravindra Jadeja", "CSK", "DC", ""},
			{"Hardik Pandya", "MI", "CSK", "15"},
		})
		writeRunsArtifacts(dir)

		svc := service.New(
			service.WithRoster(roster.New(map[string][]string{
				"MI":  {"Rohit Sharma", "Hardik Pandya", "Jasprit Bumrah"},
				"CSK": {"MS Dhoni", "Ravindra Jadeja"},
				"GT":  {"Hardik Pandya", "Rashid Khan"},
			})),
			service.WithStore(repository.DriverCSV, dataFile, false),
			service.WithArtifacts(dir, "", ""),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When picking MI vs CSK", func() {
			lineup, err := svc.SubmitTeams(context.Background(), "MI", "CSK")

			Convey("Then the lineup is ranked by predicted points", func() {
				So(err, ShouldBeNil)
				So(lineup.Players, ShouldResemble, []string{"MS Dhoni", "Rohit Sharma", "Hardik Pandya", "Ravindra Jadeja"})
				So(svc.GetStats()["storeDriver"], ShouldEqual, repository.DriverCSV)
			})
		})

		Convey("When a player is listed for both teams", func() {
			lineup, err := svc.SubmitTeams(context.Background(), "MI", "GT")

			Convey("Then they appear once", func() {
				So(err, ShouldBeNil)
				count := 0
				for _, p := range lineup.Players {
					if p == "Hardik Pandya" {
						count++
					}
				}
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When the export disappears between requests", func() {
			So(os.Remove(dataFile), ShouldBeNil)
			lineup, err := svc.SubmitTeams(context.Background(), "MI", "CSK")

			Convey("Then the lineup is degraded instead of failing", func() {
				So(err, ShouldBeNil)
				So(lineup.Degraded, ShouldBeTrue)
				So(lineup.Players, ShouldBeEmpty)
			})
		})
	})

	Convey("Given the zero missing-player policy", t, func() {
		dir := t.TempDir()
		dataFile := writeMatchCSV(dir, [][4]string{{"Rohit Sharma", "MI", "CSK", "30"}})
		writeRunsArtifacts(dir)

		svc := service.New(
			service.WithRoster(roster.New(map[string][]string{
				"MI":  {"Rohit Sharma", "Jasprit Bumrah"},
				"CSK": {"MS Dhoni"},
			})),
			service.WithStore(repository.DriverCSV, dataFile, false),
			service.WithArtifacts(dir, "", ""),
			service.WithAggregatorOptions(aggregate.WithMissingPolicy(aggregate.MissingZero)),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		lineup, err := svc.SubmitTeams(context.Background(), "MI", "CSK")

		Convey("Then players without history still fill the lineup", func() {
			So(err, ShouldBeNil)
			So(lineup.Players, ShouldHaveLength, 3)
			So(lineup.Players[0], ShouldEqual, "Rohit Sharma")
			So(lineup.Players[1:], ShouldResemble, []string{"Jasprit Bumrah", "MS Dhoni"})
		})
	})

	Convey("Given an artifacts directory without files", t, func() {
		dir := t.TempDir()
		dataFile := writeMatchCSV(dir, [][4]string{{"Rohit Sharma", "MI", "CSK", "30"}})

		svc := service.New(
			service.WithRoster(roster.New(map[string][]string{"MI": {"Rohit Sharma"}, "CSK": {}})),
			service.WithStore(repository.DriverCSV, dataFile, false),
			service.WithArtifacts(dir, "", ""),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When the files appear after start", func() {
			_, err := svc.SubmitTeams(context.Background(), "MI", "CSK")
			So(crerr.Is(err, artifact.ErrArtifactLoad), ShouldBeTrue)

			writeRunsArtifacts(dir)
			lineup, err := svc.SubmitTeams(context.Background(), "MI", "CSK")

			Convey("Then the next request loads them", func() {
				So(err, ShouldBeNil)
				So(lineup.Players, ShouldResemble, []string{"Rohit Sharma"})
			})
		})
	})
}
