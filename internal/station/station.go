package station

import "github.com/skybi/climate-server/internal/fixedwidth"

// Record represents a single indexed weather station
type Record struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Element   string  `json:"element"`
	FirstYear int     `json:"first_year"`
	LastYear  int     `json:"last_year"`
}

// SearchResult represents a single station returned by a radius search
type SearchResult struct {
	StationID  string  `json:"station_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
	FirstYear  int     `json:"first_year"`
	LastYear   int     `json:"last_year"`
	City       string  `json:"city,omitempty"`
}

// Query represents the parameters of a radius search.
// A non-positive Limit means unlimited: the full matching result set is returned.
type Query struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
	FirstYear int
	LastYear  int
}

// inventoryLayout is the published column layout of the GHCN inventory feed
var inventoryLayout = fixedwidth.Layout{
	{Name: "ID", Start: 0, End: 11, Kind: fixedwidth.KindString, Required: true},
	{Name: "LATITUDE", Start: 12, End: 20, Kind: fixedwidth.KindFloat},
	{Name: "LONGITUDE", Start: 21, End: 30, Kind: fixedwidth.KindFloat},
	{Name: "ELEMENT", Start: 31, End: 35, Kind: fixedwidth.KindString, Required: true},
	{Name: "FIRSTYEAR", Start: 36, End: 40, Kind: fixedwidth.KindInt},
	{Name: "LASTYEAR", Start: 41, End: 45, Kind: fixedwidth.KindInt},
}

// metadataLayout is the published column layout of the GHCN station metadata feed
var metadataLayout = fixedwidth.Layout{
	{Name: "ID", Start: 0, End: 11, Kind: fixedwidth.KindString, Required: true},
	{Name: "LATITUDE", Start: 12, End: 20, Kind: fixedwidth.KindFloat},
	{Name: "LONGITUDE", Start: 21, End: 30, Kind: fixedwidth.KindFloat},
	{Name: "ELEVATION", Start: 31, End: 37, Kind: fixedwidth.KindString},
	{Name: "STATE", Start: 38, End: 40, Kind: fixedwidth.KindString},
	{Name: "NAME", Start: 41, End: 71, Kind: fixedwidth.KindString},
}
