package geo

import "math"

// EarthRadiusKm is the mean earth radius used for great-circle calculations
const EarthRadiusKm = 6371.0

// Haversine computes the great-circle distance in kilometers between two points
// given as latitude/longitude pairs in degrees
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180

	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
