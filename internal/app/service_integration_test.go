package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/source"
	service "github.com/tmarshall07/usau-rankings-algorithm/internal/app"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/season"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a generated season written to and read back from JSON", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		gen, err := season.NewGenerator(
			season.WithTeams(40),
			season.WithRounds(10),
			season.WithSeed(2024),
			season.WithMissingScoreRate(0.05),
		).Generate(ctx)
		So(err, ShouldBeNil)

		var buf bytes.Buffer
		So(source.EncodeGames(&buf, source.FormatJSON, &source.Dataset{Teams: gen.Teams, Games: gen.Games}), ShouldBeNil)

		ds, err := source.NewLoader().DecodeGames(ctx, &buf, source.FormatJSON)
		So(err, ShouldBeNil)
		So(ds.Games, ShouldHaveLength, len(gen.Games))

		missing := 0
		for _, g := range gen.Games {
			if g.HomeScore == nil {
				missing++
			}
		}

		Convey("When ranking sequentially and on a worker pool", func() {
			seq := service.New(service.WithWorkerCount(1))
			par := service.New(service.WithWorkerCount(4))

			seqReport, err := seq.Rank(ctx, ds.Teams, ds.Games)
			So(err, ShouldBeNil)
			parReport, err := par.Rank(ctx, ds.Teams, ds.Games)
			So(err, ShouldBeNil)

			Convey("Then both should produce the same standings", func() {
				So(parReport.Result.Iterations, ShouldEqual, seqReport.Result.Iterations)
				So(parReport.Standings, ShouldResemble, seqReport.Standings)
				So(parReport.RunID, ShouldNotEqual, seqReport.RunID)
			})

			Convey("Then games without scores should be reported", func() {
				So(seqReport.Result.InvalidGames, ShouldHaveLength, missing)
				for _, inv := range seqReport.Result.InvalidGames {
					So(inv.Reason, ShouldEqual, rating.ReasonNoScores)
				}
			})

			Convey("Then the ratings should follow hidden strength", func() {
				So(season.Agreement(gen.Strength, seqReport.Result.Teams), ShouldBeGreaterThan, 0.65)
			})

			Convey("Then the pool should have been used", func() {
				stats := par.GetStats(ctx)
				So(stats["batches"], ShouldBeGreaterThanOrEqualTo, int64(seqReport.Result.Iterations))
				So(stats["processed"], ShouldBeGreaterThan, int64(0))
			})
		})
	})
}
