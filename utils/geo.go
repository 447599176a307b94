package utils

import (
	"math"
	"time"
)

const earthRadiusKm = 6371

// CalculateDistance returns the great-circle (haversine) distance in
// kilometers between two latitude/longitude points.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// CalculateAgeAt returns the calendar age at the reference date.
func CalculateAgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}

// CalculateAge returns the calendar age today for a YYYY-MM-DD birthdate.
// The boolean is false when the birthdate is missing or malformed.
func CalculateAge(birthdate string) (int, bool) {
	if birthdate == "" {
		return 0, false
	}
	birth, err := time.Parse("2006-01-02", birthdate)
	if err != nil {
		return 0, false
	}
	return CalculateAgeAt(birth, time.Now()), true
}
