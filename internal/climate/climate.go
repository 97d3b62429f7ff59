package climate

import "time"

// Season represents a meteorological season label
type Season string

const (
	// SeasonWinter is Dec-Feb on the northern and Jun-Aug on the southern hemisphere
	SeasonWinter Season = "Winter"
	// SeasonSpring is Mar-May on the northern and Sep-Nov on the southern hemisphere
	SeasonSpring Season = "Spring"
	// SeasonSummer is Jun-Aug on the northern and Dec-Feb on the southern hemisphere
	SeasonSummer Season = "Summer"
	// SeasonAutumn is Sep-Nov on the northern and Mar-May on the southern hemisphere
	SeasonAutumn Season = "Autumn"
)

// seasons lists all season labels
var seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// DailyAverage represents the mean of a single date's TMAX and TMIN observations.
// A date only produces a daily average if both elements are present.
type DailyAverage struct {
	Date    time.Time
	Celsius float64
}

// YearlySummary represents the aggregated daily averages of a single calendar year.
// Values are nil when the aggregation had no data at all to work with.
type YearlySummary struct {
	Max  *float64 `json:"Max_Temperature"`
	Min  *float64 `json:"Min_Temperature"`
	Mean *float64 `json:"Year_Avg_Temperature"`
}

// SeasonalSummary represents the aggregated daily averages of a single season block
type SeasonalSummary struct {
	Max *float64 `json:"Max_Temperature"`
	Min *float64 `json:"Min_Temperature"`
}

// Summary represents the full aggregation result for a station and year range.
// Both maps are keyed by the stringified (season) year.
type Summary struct {
	Yearly   map[string]*YearlySummary              `json:"yearly_summary"`
	Seasonal map[string]map[Season]*SeasonalSummary `json:"seasonal_summary"`
}

// seasonOf maps the month of a date to its season label.
// The southern hemisphere uses the opposite label for the same months.
func seasonOf(month time.Month, hemisphereLat float64) Season {
	var season Season
	switch {
	case month >= time.March && month <= time.May:
		season = SeasonSpring
	case month >= time.June && month <= time.August:
		season = SeasonSummer
	case month >= time.September && month <= time.November:
		season = SeasonAutumn
	default:
		season = SeasonWinter
	}
	if hemisphereLat < 0 {
		season = oppositeSeason(season)
	}
	return season
}

func oppositeSeason(season Season) Season {
	switch season {
	case SeasonWinter:
		return SeasonSummer
	case SeasonSummer:
		return SeasonWinter
	case SeasonSpring:
		return SeasonAutumn
	default:
		return SeasonSpring
	}
}

// seasonYearOf returns the season year a date is attributed to.
// December belongs to the season block that closes out in the following year,
// regardless of hemisphere.
func seasonYearOf(date time.Time) int {
	if date.Month() == time.December {
		return date.Year() + 1
	}
	return date.Year()
}
