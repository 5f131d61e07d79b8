package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/render"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleStandings() *render.Standings {
	return &render.Standings{
		RunID:      "run-1",
		Division:   "mixed",
		Iterations: 17,
		Converged:  true,
		Entries: []types.Entry{
			{Rank: 1, TeamID: "alpha", Rating: 1523.456, Games: 8, Blowouts: 1},
			{Rank: 2, TeamID: "bravo", Rating: 1100, Games: 7},
		},
		InvalidTeams: []rating.Invalid{{ID: "charlie", Reason: rating.ReasonNoValidGames}},
		InvalidGames: []rating.Invalid{{ID: "g9", Reason: rating.ReasonTie}},
	}
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		Convey("Then known names should resolve", func() {
			f, err := render.ParseFormat(" JSON ")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, render.FormatJSON)
			f, _ = render.ParseFormat("")
			So(f, ShouldEqual, render.FormatTable)
		})

		Convey("Then unknown names should fail", func() {
			_, err := render.ParseFormat("xml")
			So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
		})
	})
}

func TestWriteStandings(t *testing.T) {
	Convey("Given standings", t, func() {
		s := sampleStandings()
		var buf bytes.Buffer

		Convey("When writing a table", func() {
			So(render.WriteStandings(&buf, render.FormatTable, s), ShouldBeNil)
			out := buf.String()

			Convey("Then rows and summary should be printed", func() {
				So(out, ShouldContainSubstring, "RANK")
				So(out, ShouldContainSubstring, "alpha")
				So(out, ShouldContainSubstring, "1523.46")
				So(out, ShouldContainSubstring, "2 teams, 17 iterations (converged)")
				So(out, ShouldContainSubstring, "charlie: no valid games")
				So(out, ShouldContainSubstring, "g9: tie")
			})
		})

		Convey("When writing JSON", func() {
			So(render.WriteStandings(&buf, render.FormatJSON, s), ShouldBeNil)
			var back map[string]any
			So(json.Unmarshal(buf.Bytes(), &back), ShouldBeNil)

			Convey("Then the documented keys should be present", func() {
				So(back["runId"], ShouldEqual, "run-1")
				So(back["iterations"], ShouldEqual, 17.0)
				So(len(back["standings"].([]any)), ShouldEqual, 2)
			})
		})

		Convey("When writing YAML", func() {
			So(render.WriteStandings(&buf, render.FormatYAML, s), ShouldBeNil)
			var back render.Standings
			So(yaml.Unmarshal(buf.Bytes(), &back), ShouldBeNil)

			Convey("Then it should decode back", func() {
				So(back.Entries, ShouldResemble, s.Entries)
				So(back.InvalidGames, ShouldResemble, s.InvalidGames)
			})
		})

		Convey("When the format is unknown", func() {
			err := render.WriteStandings(&buf, render.Format("html"), s)

			Convey("Then it should fail", func() {
				So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
			})
		})
	})
}

func TestWriteCustom(t *testing.T) {
	Convey("Given custom results", t, func() {
		var buf bytes.Buffer

		Convey("When the run failed", func() {
			r := &rating.CustomResult{Message: rating.MessageBlankValues}
			So(render.WriteCustom(&buf, render.FormatTable, r), ShouldBeNil)

			Convey("Then the message should be printed", func() {
				So(buf.String(), ShouldStartWith, "failed: Games not formatted correctly.")
			})
		})

		Convey("When the run succeeded", func() {
			r := &rating.CustomResult{
				Success:    true,
				TeamIDs:    []model.ID{"1", "2"},
				Iterations: 3,
				Teams:      []rating.TeamResult{{ID: "1", Rating: 1200}, {ID: "2", Rating: 800}},
			}
			So(render.WriteCustom(&buf, render.FormatJSON, r), ShouldBeNil)

			Convey("Then the tagged JSON shape should be written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"success": true`)
				So(out, ShouldContainSubstring, `"teamIds"`)
				So(strings.Contains(out, `"message"`), ShouldBeFalse)
			})
		})
	})
}

func TestWriteResult(t *testing.T) {
	Convey("Given a full result", t, func() {
		r := &rating.Result{Teams: []rating.TeamResult{{ID: "a", Rating: 1000, Games: []rating.GameRecord{{GameID: "g", Rating: 1000, Weight: 1, Percent: 1, Won: true}}}}}
		var buf bytes.Buffer

		Convey("When writing JSON", func() {
			So(render.WriteResult(&buf, render.FormatJSON, r), ShouldBeNil)

			Convey("Then per-game records should use the documented keys", func() {
				So(buf.String(), ShouldContainSubstring, `"perTeam"`)
				So(buf.String(), ShouldContainSubstring, `"isBlowout": false`)
				So(buf.String(), ShouldContainSubstring, `"gameId": "g"`)
				So(buf.String(), ShouldContainSubstring, `"percent": 1`)
			})
		})

		Convey("When writing a table", func() {
			err := render.WriteResult(&buf, render.FormatTable, r)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
			})
		})
	})
}
