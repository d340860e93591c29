package selection

import (
	"fmt"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/bestxi/internal/domain/model"
)

func scored(pairs ...any) []model.ScoredPlayer {
	out := make([]model.ScoredPlayer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		p := model.ScoredPlayer{PredictedScore: pairs[i+1].(float64)}
		p.Player = pairs[i].(string)
		out = append(out, p)
	}
	return out
}

func TestSelectTop(t *testing.T) {
	convey.Convey("Given scored players", t, func() {
		players := scored("a", 10.0, "b", 30.0, "c", 20.0)

		convey.Convey("It ranks by predicted score, best first", func() {
			convey.So(SelectTop(players, 2), convey.ShouldResemble, []string{"b", "c"})
		})

		convey.Convey("It returns everyone when fewer than k are available", func() {
			convey.So(SelectTop(players, 11), convey.ShouldResemble, []string{"b", "c", "a"})
		})

		convey.Convey("It keeps input order between equal scores", func() {
			tied := scored("x", 5.0, "y", 7.0, "z", 5.0, "w", 5.0)
			convey.So(SelectTop(tied, 4), convey.ShouldResemble, []string{"y", "x", "z", "w"})
		})

		convey.Convey("It does not reorder the caller's slice", func() {
			before := append([]model.ScoredPlayer(nil), players...)
			SelectTop(players, 3)
			convey.So(players, convey.ShouldResemble, before)
		})

		convey.Convey("It returns an empty lineup for k <= 0", func() {
			convey.So(SelectTop(players, 0), convey.ShouldNotBeNil)
			convey.So(SelectTop(players, 0), convey.ShouldBeEmpty)
			convey.So(SelectTop(players, -3), convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given no players", t, func() {
		got := SelectTop(nil, DefaultLineupSize)
		convey.So(got, convey.ShouldNotBeNil)
		convey.So(got, convey.ShouldBeEmpty)
	})

	convey.Convey("Given a pool larger than the lineup", t, func() {
		pool := make([]model.ScoredPlayer, 0, 22)
		for i := 0; i < 22; i++ {
			p := model.ScoredPlayer{PredictedScore: float64(i % 7)}
			p.Player = fmt.Sprintf("p%02d", i)
			pool = append(pool, p)
		}
		got := SelectTop(pool, DefaultLineupSize)

		convey.So(got, convey.ShouldHaveLength, DefaultLineupSize)
		convey.So(got[0], convey.ShouldEqual, "p06")
		convey.So(got[1], convey.ShouldEqual, "p13")
		convey.So(got[2], convey.ShouldEqual, "p20")
	})
}
