package observation

import "time"

// Element represents an observation type code.
// Only daily temperature extremes are relevant; all other element codes are
// discarded during ingestion.
type Element string

const (
	// ElementTMax is the daily maximum temperature
	ElementTMax Element = "TMAX"
	// ElementTMin is the daily minimum temperature
	ElementTMin Element = "TMIN"
)

// Observation represents a single normalized daily observation of a station
type Observation struct {
	StationID string
	Date      time.Time
	Element   Element
	Celsius   float64
}
