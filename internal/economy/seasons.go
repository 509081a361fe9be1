package economy

// Seasonal demand cycle. Seasons derive purely from the day counter; every
// fifth season is an epic season with a themed trio of boosted crops.

import "github.com/talgya/botfarm/internal/catalog"

// Season names the four-phase demand cycle.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// DaysPerSeason is the season length in days; the full cycle is four seasons.
// A constant rather than a tuning knob: the seeded market replay depends on it.
const DaysPerSeason = 7

// SeasonForDay maps a day counter to its season.
func SeasonForDay(day int) Season {
	idx := (day % (4 * DaysPerSeason)) / DaysPerSeason
	return [4]Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}[idx]
}

// SeasonIndex counts completed seasons since day zero.
func SeasonIndex(day int) int {
	return day / DaysPerSeason
}

// EpicSeason reports whether the season containing day is an epic season.
// Every fifth season qualifies, starting with the fifth.
func EpicSeason(day int) bool {
	idx := SeasonIndex(day)
	return idx > 0 && (idx+1)%5 == 0
}

// HighDemand returns the crops in seasonal high demand.
func HighDemand(s Season) []catalog.Crop {
	switch s {
	case SeasonSpring:
		return []catalog.Crop{catalog.CropCarrot, catalog.CropWheat, catalog.CropTomato}
	case SeasonSummer:
		return []catalog.Crop{catalog.CropWatermelon, catalog.CropTomato, catalog.CropPeppers}
	case SeasonFall:
		return []catalog.Crop{catalog.CropPumpkin, catalog.CropGrapes, catalog.CropCorn}
	default:
		return []catalog.Crop{catalog.CropAvocado, catalog.CropOranges, catalog.CropRice}
	}
}

// EpicSeasonCrops returns the themed trio boosted during an epic season:
// the high-demand set of the season one step ahead.
func EpicSeasonCrops(day int) []catalog.Crop {
	next := SeasonForDay(day + DaysPerSeason)
	return HighDemand(next)
}

func contains(crops []catalog.Crop, c catalog.Crop) bool {
	for _, crop := range crops {
		if crop == c {
			return true
		}
	}
	return false
}
