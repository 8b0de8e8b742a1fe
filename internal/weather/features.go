package weather

import "strings"

// Observation is one station reading sampled near a race. Measurement
// fields keep the site's raw formatting; Features parses them on demand.
type Observation struct {
	Marathon   string
	Year       int
	Date       string
	City       string
	Hour       float64
	Clock      string
	Temp       string
	DewPoint   string
	Humidity   string
	Pressure   string
	Visibility string
	WindDir    string
	WindSpeed  string
	GustSpeed  string
	Precip     string
	Events     string
	Conditions string
}

// FeatureSet aggregates one race's observations into the weather columns
// the combined datasets carry.
type FeatureSet struct {
	AvgTemp      float64
	AvgHumidity  float64
	AvgWind      float64
	AvgWindEast  float64
	AvgWindNorth float64
	Gusty        bool
	RainHours    float64
}

// Features reduces a race's observations to averages across stations and
// sample hours. Malformed cells read as zero, a gust report in more than
// half the rows marks the race gusty, and RainHours is the fraction of
// rows whose events mention rain. No observations yields the zero set.
func Features(rows []Observation) FeatureSet {
	n := len(rows)
	if n == 0 {
		return FeatureSet{}
	}
	var fs FeatureSet
	speeds := make([]string, n)
	directions := make([]string, n)
	gusts, rain := 0, 0
	for i, row := range rows {
		temp, _ := Measure(row.Temp, "F")
		humid, _ := Measure(row.Humidity, "%")
		wind, _ := Measure(row.WindSpeed, "mph")
		fs.AvgTemp += temp
		fs.AvgHumidity += humid
		fs.AvgWind += wind
		speeds[i] = row.WindSpeed
		directions[i] = row.WindDir
		if row.GustSpeed != "-" && row.GustSpeed != "" {
			gusts++
		}
		if strings.Contains(row.Events, "Rain") {
			rain++
		}
	}
	fs.AvgTemp /= float64(n)
	fs.AvgHumidity /= float64(n)
	fs.AvgWind /= float64(n)
	fs.AvgWindEast, fs.AvgWindNorth = WindVector(speeds, directions)
	fs.Gusty = gusts > n/2
	fs.RainHours = float64(rain) / float64(n)
	return fs
}
