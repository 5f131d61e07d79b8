package rating

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

func TestIteratorNaNGuard(t *testing.T) {
	Convey("Given a plan where one team has no linked games", t, func() {
		o := &Outcome{WinningTeamID: "a", LosingTeamID: "b", Differential: 300, Weight: 1}
		initial := initialSnapshot([]model.ID{"a", "b", "c"})
		it := &iterator{
			links: [][]link{
				{{outcome: o, opponent: 1, won: true}},
				{{outcome: o, opponent: 0, won: false}},
				nil,
			},
			exec:      Sequential{},
			maxRounds: MaxIterations,
			tolerance: DefaultTolerance,
		}

		Convey("When iterating", func() {
			_, _, _, err := it.run(context.Background(), initial)

			Convey("Then the run should stop with an invariant error for that team", func() {
				var invariant *InvariantError
				So(errors.As(err, &invariant), ShouldBeTrue)
				So(invariant.TeamID, ShouldEqual, model.ID("c"))
				So(invariant.Round, ShouldEqual, 0)
				So(errors.Is(err, ErrNaNRating), ShouldBeTrue)
			})
		})
	})
}
