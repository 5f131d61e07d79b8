package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func TestIDDecoding(t *testing.T) {
	Convey("Given game documents with mixed id types", t, func() {
		Convey("When decoding JSON with numeric and string ids", func() {
			var g model.Game
			err := json.Unmarshal([]byte(`{"id":7,"homeTeamId":101,"awayTeamId":"team-b","homeScore":"13","awayScore":null}`), &g)

			Convey("Then ids should be normalized to text", func() {
				So(err, ShouldBeNil)
				So(g.ID, ShouldEqual, model.ID("7"))
				So(g.HomeTeamID, ShouldEqual, model.ID("101"))
				So(g.AwayTeamID, ShouldEqual, model.ID("team-b"))
				So(*g.HomeScore, ShouldEqual, "13")
				So(g.AwayScore, ShouldBeNil)
			})
		})

		Convey("When decoding JSON with a non-scalar id", func() {
			var g model.Game
			err := json.Unmarshal([]byte(`{"id":{"x":1}}`), &g)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When decoding YAML with unquoted scores", func() {
			var g model.Game
			err := yaml.Unmarshal([]byte("id: 3\nhomeTeamId: 10\nawayTeamId: 11\nhomeScore: 15\nawayScore: ~\n"), &g)

			Convey("Then scores should decode as strings and null as nil", func() {
				So(err, ShouldBeNil)
				So(g.ID, ShouldEqual, model.ID("3"))
				So(*g.HomeScore, ShouldEqual, "15")
				So(g.AwayScore, ShouldBeNil)
			})
		})

		Convey("When decoding YAML with a sequence as id", func() {
			var g model.Game
			err := yaml.Unmarshal([]byte("id: [1, 2]\n"), &g)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestGameInvolves(t *testing.T) {
	Convey("Given a game between two teams", t, func() {
		g := model.Game{HomeTeamID: "a", AwayTeamID: "b"}

		Convey("Then both participants should be involved", func() {
			So(g.Involves("a"), ShouldBeTrue)
			So(g.Involves("b"), ShouldBeTrue)
			So(g.Involves("c"), ShouldBeFalse)
		})
	})
}

func TestDivisions(t *testing.T) {
	Convey("Given division names", t, func() {
		Convey("When parsing known names", func() {
			d, err := model.ParseDivision(" College-Womens ")

			Convey("Then the division and level should resolve", func() {
				So(err, ShouldBeNil)
				So(d, ShouldEqual, model.DivisionCollegeWomens)
				So(d.Level(), ShouldEqual, model.LevelCollege)
			})
		})

		Convey("When parsing an empty name", func() {
			d, err := model.ParseDivision("")

			Convey("Then it should default to mixed club", func() {
				So(err, ShouldBeNil)
				So(d, ShouldEqual, model.DivisionMixed)
				So(d.Level(), ShouldEqual, model.LevelClub)
			})
		})

		Convey("When parsing an unknown name", func() {
			_, err := model.ParseDivision("masters")

			Convey("Then it should return ErrUnknownDivision", func() {
				So(errors.Is(err, model.ErrUnknownDivision), ShouldBeTrue)
			})
		})
	})
}
