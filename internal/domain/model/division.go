package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDivision is returned when a division name is not recognised.
var ErrUnknownDivision = errors.New("unknown division")

// Division is the competition division a ranking is computed for.
type Division string

// Known divisions.
const (
	DivisionMixed         Division = "mixed"
	DivisionMens          Division = "mens"
	DivisionWomens        Division = "womens"
	DivisionCollegeMens   Division = "college-mens"
	DivisionCollegeWomens Division = "college-womens"
)

// Divisions lists every known division in display order.
func Divisions() []Division {
	return []Division{DivisionMixed, DivisionMens, DivisionWomens, DivisionCollegeMens, DivisionCollegeWomens}
}

// ParseDivision resolves a division name case-insensitively. An empty name
// selects mixed.
func ParseDivision(s string) (Division, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DivisionMixed, nil
	}
	for _, d := range Divisions() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDivision, s)
}

// Level groups divisions that share a season calendar.
type Level string

// Season levels.
const (
	LevelClub    Level = "club"
	LevelCollege Level = "college"
)

// Level returns the season level of the division. Anything that is not a
// college division is club.
func (d Division) Level() Level {
	if d == DivisionCollegeMens || d == DivisionCollegeWomens {
		return LevelCollege
	}
	return LevelClub
}
