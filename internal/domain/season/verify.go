package season

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
)

// Agreement returns the share of team pairs whose computed ratings are
// ordered like their hidden strengths. Teams missing from strength are
// ignored. It returns 1 when there is nothing to compare.
func Agreement(strength map[model.ID]float64, teams []rating.TeamResult) float64 {
	var agree, total int
	for i := 0; i < len(teams); i++ {
		si, ok := strength[teams[i].ID]
		if !ok {
			continue
		}
		for j := i + 1; j < len(teams); j++ {
			sj, ok := strength[teams[j].ID]
			if !ok || si == sj {
				continue
			}
			total++
			if (si > sj) == (teams[i].Rating > teams[j].Rating) {
				agree++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(agree) / float64(total)
}
