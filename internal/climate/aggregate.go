package climate

import (
	"strconv"
	"time"

	"github.com/skybi/climate-server/internal/observation"
)

// Aggregate summarizes a station's observations into yearly and hemisphere-aware
// seasonal statistics over the inclusive [firstYear, lastYear] range.
//
// A date only contributes if both its TMAX and TMIN are present; single-sided dates
// are discarded entirely. Years and seasons inside the requested range without any
// qualifying day are zero-filled. If the whole aggregation is empty, every value is
// nil instead - a NaN never crosses this boundary.
func Aggregate(observations []observation.Observation, firstYear, lastYear int, hemisphereLat float64) *Summary {
	dailies := DailyAverages(observations)

	yearlyValues := make(map[int][]float64)
	type seasonKey struct {
		year   int
		season Season
	}
	seasonalValues := make(map[seasonKey][]float64)

	hasData := false
	for _, daily := range dailies {
		year := daily.Date.Year()
		if year >= firstYear && year <= lastYear {
			yearlyValues[year] = append(yearlyValues[year], daily.Celsius)
			hasData = true
		}

		seasonYear := seasonYearOf(daily.Date)
		if seasonYear >= firstYear && seasonYear <= lastYear {
			key := seasonKey{year: seasonYear, season: seasonOf(daily.Date.Month(), hemisphereLat)}
			seasonalValues[key] = append(seasonalValues[key], daily.Celsius)
			hasData = true
		}
	}

	summary := &Summary{
		Yearly:   make(map[string]*YearlySummary, lastYear-firstYear+1),
		Seasonal: make(map[string]map[Season]*SeasonalSummary, lastYear-firstYear+1),
	}

	for year := firstYear; year <= lastYear; year++ {
		yearKey := strconv.Itoa(year)

		yearly := &YearlySummary{}
		if values, ok := yearlyValues[year]; ok {
			yearly.Max = ptr(maxOf(values))
			yearly.Min = ptr(minOf(values))
			yearly.Mean = ptr(meanOf(values))
		} else if hasData {
			// Years inside the requested range without data are zero-filled
			yearly.Max = ptr(0)
			yearly.Min = ptr(0)
			yearly.Mean = ptr(0)
		}
		summary.Yearly[yearKey] = yearly

		blocks := make(map[Season]*SeasonalSummary, len(seasons))
		for _, season := range seasons {
			seasonal := &SeasonalSummary{}
			if values, ok := seasonalValues[seasonKey{year: year, season: season}]; ok {
				seasonal.Max = ptr(maxOf(values))
				seasonal.Min = ptr(minOf(values))
			} else if hasData {
				seasonal.Max = ptr(0)
				seasonal.Min = ptr(0)
			}
			blocks[season] = seasonal
		}
		summary.Seasonal[yearKey] = blocks
	}

	return summary
}

// DailyAverages groups observations by date and builds the mean of each date's
// TMAX and TMIN. Dates missing either element produce no daily average.
func DailyAverages(observations []observation.Observation) []DailyAverage {
	type pair struct {
		tmax *float64
		tmin *float64
	}
	byDate := make(map[time.Time]*pair)
	var order []time.Time

	for _, obs := range observations {
		entry, ok := byDate[obs.Date]
		if !ok {
			entry = &pair{}
			byDate[obs.Date] = entry
			order = append(order, obs.Date)
		}
		value := obs.Celsius
		switch obs.Element {
		case observation.ElementTMax:
			entry.tmax = &value
		case observation.ElementTMin:
			entry.tmin = &value
		}
	}

	dailies := make([]DailyAverage, 0, len(order))
	for _, date := range order {
		entry := byDate[date]
		if entry.tmax == nil || entry.tmin == nil {
			continue
		}
		dailies = append(dailies, DailyAverage{
			Date:    date,
			Celsius: (*entry.tmax + *entry.tmin) / 2,
		})
	}
	return dailies
}

func maxOf(values []float64) float64 {
	max := values[0]
	for _, value := range values[1:] {
		if value > max {
			max = value
		}
	}
	return max
}

func minOf(values []float64) float64 {
	min := values[0]
	for _, value := range values[1:] {
		if value < min {
			min = value
		}
	}
	return min
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

func ptr(value float64) *float64 {
	return &value
}
