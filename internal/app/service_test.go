package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/repository"
	service "github.com/tmarshall07/usau-rankings-algorithm/internal/app"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

func roundRobin() ([]model.Team, []model.Game) {
	teams := []model.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	games := []model.Game{
		{ID: "ab", HomeTeamID: "a", AwayTeamID: "b", HomeScore: model.Score("15"), AwayScore: model.Score("10")},
		{ID: "ac", HomeTeamID: "c", AwayTeamID: "a", HomeScore: model.Score("5"), AwayScore: model.Score("15")},
		{ID: "bc", HomeTeamID: "b", AwayTeamID: "c", HomeScore: model.Score("15"), AwayScore: model.Score("12")},
	}
	return teams, games
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Config(), ShouldResemble, rating.DefaultConfig())
			So(svc.Last(), ShouldBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithLogger(logger.NewNop()),
			service.WithRatingOptions(rating.WithDivision(model.DivisionCollegeMens), rating.WithMaxIterations(50)),
			service.WithStore(repository.NewTreapStore(repository.WithPrecision(3))),
		)

		Convey("Then the options should reach the engine", func() {
			So(svc.Config().Division, ShouldEqual, model.DivisionCollegeMens)
			So(svc.Config().MaxIterations, ShouldEqual, 50)
			So(svc.GetStats(context.Background())["workerCount"], ShouldEqual, 4)
		})
	})
}

func TestService_Rank(t *testing.T) {
	Convey("Given a service and a round robin", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithRatingOptions(rating.WithDateWeight(false)))
		teams, games := roundRobin()

		Convey("When ranking", func() {
			report, err := svc.Rank(ctx, teams, games)
			So(err, ShouldBeNil)

			Convey("Then the report should carry a run id and ranked standings", func() {
				So(report.RunID.String(), ShouldNotBeEmpty)
				So(report.Division, ShouldEqual, model.DivisionMixed)
				So(report.Result.Converged, ShouldBeTrue)
				So(report.Standings, ShouldHaveLength, 3)
				So(report.Standings[0].TeamID, ShouldEqual, "a")
				So(report.Standings[0].Rank, ShouldEqual, 1)
				So(report.Standings[2].TeamID, ShouldEqual, "c")
				So(report.Standings[2].Blowouts, ShouldEqual, 1)
				So(svc.Last(), ShouldEqual, report)
			})

			Convey("Then the standings should be queryable", func() {
				top, err := svc.TopN(ctx, 2)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 2)

				entry, err := svc.TeamRank(ctx, "b")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 2)
				So(entry.Games, ShouldEqual, 2)

				_, err = svc.TeamRank(ctx, "zz")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("Then a second run should replace the standings", func() {
				_, err := svc.Rank(ctx, teams[:2], games[:1])
				So(err, ShouldBeNil)
				So(svc.GetStats(ctx)["standings"], ShouldEqual, 2)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			report, err := svc.Rank(cctx, teams, games)

			Convey("Then the run should fail and keep no report", func() {
				So(report, ShouldBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(svc.Last(), ShouldBeNil)
			})
		})
	})
}

func TestService_Custom(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := service.New()

		Convey("When rating complete rows", func() {
			res := svc.Custom(ctx, []rating.Row{
				{HomeTeamID: "x", AwayTeamID: "y", HomeScore: model.Score("15"), AwayScore: model.Score("13")},
			})

			Convey("Then it should succeed without touching the standings", func() {
				So(res.Success, ShouldBeTrue)
				So(res.TeamIDs, ShouldResemble, []model.ID{"y", "x"})
				So(svc.GetStats(ctx)["standings"], ShouldEqual, 0)
			})
		})

		Convey("When rating rows with blank values", func() {
			res := svc.Custom(ctx, []rating.Row{{HomeTeamID: "x", AwayTeamID: "y", HomeScore: model.Score(" ")}})

			Convey("Then the failure message should be returned", func() {
				So(res.Success, ShouldBeFalse)
				So(res.Message, ShouldEqual, rating.MessageBlankValues)
			})
		})
	})
}
