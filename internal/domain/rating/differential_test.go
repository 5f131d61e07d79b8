package rating_test

import (
	"errors"
	"math"
	"testing"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDifferential(t *testing.T) {
	Convey("Given a game score", t, func() {
		Convey("When the loser scored 10 against 17", func() {
			d, err := rating.Differential(10, 17)

			Convey("Then it should match the closed form", func() {
				r := 10.0 / 16.0
				want := 125 + 475*math.Sin(math.Min(1, (1-r)/0.5)*0.4*math.Pi)/math.Sin(0.4*math.Pi)
				So(err, ShouldBeNil)
				So(d, ShouldEqual, want)
				So(d, ShouldAlmostEqual, 529.059, 0.001)
			})
		})

		Convey("When the win is at least twice the losing score", func() {
			d, err := rating.Differential(5, 15)

			Convey("Then it should saturate at 600", func() {
				So(err, ShouldBeNil)
				So(d, ShouldAlmostEqual, 600, 1e-9)
			})
		})

		Convey("When the game is won by one point at 15", func() {
			d, err := rating.Differential(14, 15)

			Convey("Then it should sit exactly at the minimum", func() {
				So(err, ShouldBeNil)
				So(d, ShouldEqual, 125)
			})
		})

		Convey("When the game is won by two points at 15", func() {
			d, err := rating.Differential(13, 15)

			Convey("Then it should be just above the minimum", func() {
				So(err, ShouldBeNil)
				So(d, ShouldAlmostEqual, 214.179, 1e-3)
			})
		})

		Convey("When the winning score is 1", func() {
			_, err := rating.Differential(0, 1)

			Convey("Then it should report an undefined differential", func() {
				So(errors.Is(err, rating.ErrUndefinedDifferential), ShouldBeTrue)
			})
		})

		Convey("When comparing margins", func() {
			narrow, _ := rating.Differential(12, 15)
			wide, _ := rating.Differential(8, 15)

			Convey("Then a wider margin should be worth more", func() {
				So(wide, ShouldBeGreaterThan, narrow)
			})
		})
	})
}
