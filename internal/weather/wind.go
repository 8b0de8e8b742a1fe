package weather

import "math"

// compass maps the site's 16-point wind directions to fractions of a half
// turn. Multiplying by pi gives the bearing in radians, so the easterly
// component is sin and the northerly component is cos.
var compass = map[string]float64{
	"North": 0, "NNE": 0.125, "NE": 0.25, "ENE": 0.375,
	"East": 0.5, "ESE": 0.625, "SE": 0.75, "SSE": 0.875,
	"South": 1, "SSW": 1.125, "SW": 1.25, "WSW": 1.375,
	"West": 1.5, "WNW": 1.625, "NW": 1.75, "NNW": 1.875,
}

// WindVector averages wind observations into easterly and northerly
// components, negative for westerly and southerly winds. Speeds pair with
// directions by index; "Variable", "Calm", and unrecognized directions
// contribute zero but still count toward the average.
func WindVector(speeds, directions []string) (east, north float64) {
	n := len(speeds)
	if len(directions) < n {
		n = len(directions)
	}
	if n == 0 {
		return 0, 0
	}
	var sumEast, sumNorth float64
	for i := 0; i < n; i++ {
		c, ok := compass[directions[i]]
		if !ok {
			continue
		}
		speed, err := Measure(speeds[i], "mph")
		if err != nil {
			continue
		}
		sumEast += math.Sin(c*math.Pi) * speed
		sumNorth += math.Cos(c*math.Pi) * speed
	}
	return sumEast / float64(n), sumNorth / float64(n)
}
