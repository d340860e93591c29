package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/bestxi/internal/config"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/types"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// writeFixture lays out a CSV export and a runs-only model under dir.
func writeFixture(dir string) {
	header := append([]string{"fullName", "home_team", "away_team"}, model.Columns[:]...)
	row := func(player, home, away, runs string) string {
		vals := []string{player, home, away}
		for _, c := range model.Columns {
			if c == "runs" {
				vals = append(vals, runs)
			} else {
				vals = append(vals, "0")
			}
		}
		return strings.Join(vals, ",")
	}
	csv := strings.Join([]string{
		strings.Join(header, ","),
		row("Rohit Sharma", "MI", "CSK", "40"),
		row("MS Dhoni", "CSK", "MI", "70"),
		row("Jasprit Bumrah", "MI", "RR", "2"),
	}, "\n") + "\n"

	files := map[string]string{
		"ipl_data.csv":      csv,
		"preprocessor.json": `{"columns":["runs"],"mean":[0],"scale":[1]}`,
		"model.json":        `{"coefficients":[1],"intercept":0}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			panic(err)
		}
	}
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration pointing at local files", t, func() {
		dir := t.TempDir()
		writeFixture(dir)

		cfg := config.New()
		cfg.DataFile = filepath.Join(dir, "ipl_data.csv")
		cfg.ArtifactsDir = dir
		cfg.Rosters = map[string][]string{
			"MI":  {"Rohit Sharma", "Jasprit Bumrah"},
			"CSK": {"MS Dhoni"},
		}
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		ctx := context.Background()
		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, svc)

		convey.Convey("When a fixture is submitted over HTTP", func() {
			form := url.Values{"team1": {"MI"}, "team2": {"CSK"}}
			req := httptest.NewRequest(http.MethodPost, "/submit_teams", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then the lineup comes back best first", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				var lineup types.Lineup
				convey.So(json.NewDecoder(w.Body).Decode(&lineup), convey.ShouldBeNil)
				convey.So(lineup.Players, convey.ShouldResemble, []string{"MS Dhoni", "Rohit Sharma", "Jasprit Bumrah"})
			})
		})

		convey.Convey("When the teams are listed", func() {
			req := httptest.NewRequest(http.MethodGet, "/teams", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then the configured rosters are returned", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"code":"CSK"`)
			})
		})

		convey.Convey("When stats are requested", func() {
			stats := svc.GetStats()
			convey.So(stats["started"], convey.ShouldEqual, true)
			convey.So(stats["storeDriver"], convey.ShouldEqual, "csv")
			convey.So(stats["artifactsLoaded"], convey.ShouldEqual, true)
		})
	})
}

func TestStoreSource(t *testing.T) {
	convey.Convey("Given each store driver", t, func() {
		cfg := config.New()
		cfg.DataFile = "matches.csv"
		cfg.DatabaseURL = "postgres://localhost/bestxi"

		convey.So(storeSource(cfg), convey.ShouldEqual, "matches.csv")

		cfg.StoreDriver = "postgres"
		convey.So(storeSource(cfg), convey.ShouldEqual, "postgres://localhost/bestxi")
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
	})
}
