package season_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/season"
)

func TestGenerate(t *testing.T) {
	convey.Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		gen := season.NewGenerator(season.WithTeams(10), season.WithRounds(6), season.WithSeed(42))

		convey.Convey("When generating a season", func() {
			s, err := gen.Generate(ctx)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then every team should play once per round", func() {
				convey.So(s.Teams, convey.ShouldHaveLength, 10)
				convey.So(s.Games, convey.ShouldHaveLength, 30)
				convey.So(s.Strength, convey.ShouldHaveLength, 10)
			})

			convey.Convey("Then games should have a winner and valid scores", func() {
				for _, g := range s.Games {
					home, err := strconv.Atoi(*g.HomeScore)
					convey.So(err, convey.ShouldBeNil)
					away, err := strconv.Atoi(*g.AwayScore)
					convey.So(err, convey.ShouldBeNil)
					convey.So(home, convey.ShouldNotEqual, away)
					convey.So(max(home, away), convey.ShouldBeGreaterThanOrEqualTo, 11)
					convey.So(min(home, away), convey.ShouldBeGreaterThanOrEqualTo, 0)
					convey.So(g.HomeTeamID, convey.ShouldNotEqual, g.AwayTeamID)
				}
			})

			convey.Convey("Then games should be dated inside the season", func() {
				first, ok := rating.ParseStartDate(s.Games[0].StartDate)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(first.After(rating.SeasonStart(2024, model.LevelClub)), convey.ShouldBeTrue)
			})

			convey.Convey("Then the same seed should produce the same season", func() {
				again, err := season.NewGenerator(season.WithTeams(10), season.WithRounds(6), season.WithSeed(42)).Generate(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(again.Teams, convey.ShouldResemble, s.Teams)
				convey.So(again.Games, convey.ShouldResemble, s.Games)
			})
		})

		convey.Convey("When some scores go missing", func() {
			s, err := season.NewGenerator(season.WithTeams(20), season.WithRounds(10), season.WithMissingScoreRate(0.5)).Generate(ctx)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then some games should have no home score", func() {
				missing := 0
				for _, g := range s.Games {
					if g.HomeScore == nil {
						missing++
					}
				}
				convey.So(missing, convey.ShouldBeGreaterThan, 0)
				convey.So(missing, convey.ShouldBeLessThan, len(s.Games))
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			_, errTeams := season.NewGenerator(season.WithTeams(1)).Generate(ctx)
			_, errRounds := season.NewGenerator(season.WithRounds(0)).Generate(ctx)

			convey.Convey("Then generation should fail", func() {
				convey.So(errors.Is(errTeams, season.ErrTooFewTeams), convey.ShouldBeTrue)
				convey.So(errors.Is(errRounds, season.ErrInvalidRounds), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := gen.Generate(cctx)

			convey.Convey("Then generation should stop", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

func TestRatingsTrackStrength(t *testing.T) {
	convey.Convey("Given a generated season rated by the engine", t, func() {
		ctx := context.Background()
		s, err := season.NewGenerator(season.WithTeams(24), season.WithRounds(12), season.WithSeed(7)).Generate(ctx)
		convey.So(err, convey.ShouldBeNil)

		res, err := rating.NewEngine().Run(ctx, s.Teams, s.Games)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then every team should be rated", func() {
			convey.So(res.Teams, convey.ShouldHaveLength, 24)
			convey.So(res.InvalidGames, convey.ShouldBeEmpty)
		})

		convey.Convey("Then rating order should mostly follow hidden strength", func() {
			convey.So(season.Agreement(s.Strength, res.Teams), convey.ShouldBeGreaterThan, 0.65)
		})
	})
}

func TestAgreement(t *testing.T) {
	convey.Convey("Given strengths and ratings", t, func() {
		strength := map[model.ID]float64{"a": 3, "b": 2, "c": 1}

		convey.Convey("When the orders match", func() {
			teams := []rating.TeamResult{{ID: "a", Rating: 1500}, {ID: "b", Rating: 1000}, {ID: "c", Rating: 500}}

			convey.Convey("Then agreement should be full", func() {
				convey.So(season.Agreement(strength, teams), convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When one pair is swapped", func() {
			teams := []rating.TeamResult{{ID: "a", Rating: 900}, {ID: "b", Rating: 1000}, {ID: "c", Rating: 500}}

			convey.Convey("Then two of three pairs should agree", func() {
				convey.So(season.Agreement(strength, teams), convey.ShouldAlmostEqual, 2.0/3.0, 1e-9)
			})
		})

		convey.Convey("When nothing can be compared", func() {
			convey.So(season.Agreement(strength, []rating.TeamResult{{ID: "z"}}), convey.ShouldEqual, 1.0)
		})
	})
}
