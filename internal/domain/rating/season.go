package rating

import (
	"time"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// Regular season lengths in weeks.
const (
	ClubRegularSeasonWeeks    = 13
	CollegeRegularSeasonWeeks = 13
)

// FirstTuesday returns midnight UTC of the first Tuesday of the month.
func FirstTuesday(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Tuesday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// SeasonStart returns the regular season anchor for the level in the given
// year: the first Tuesday of June for club and of January for college.
func SeasonStart(year int, level model.Level) time.Time {
	if level == model.LevelCollege {
		return FirstTuesday(year, time.January)
	}
	return FirstTuesday(year, time.June)
}

// SeasonWeeks returns the regular season length of the level.
func SeasonWeeks(level model.Level) int {
	if level == model.LevelCollege {
		return CollegeRegularSeasonWeeks
	}
	return ClubRegularSeasonWeeks
}

// RankingsYear returns the season year that rankings computed at now refer
// to. Club seasons roll over in June, college seasons in February.
func RankingsYear(division model.Division, now time.Time) int {
	rollover := time.June
	if division.Level() == model.LevelCollege {
		rollover = time.February
	}
	if now.Month() >= rollover {
		return now.Year()
	}
	return now.Year() - 1
}
