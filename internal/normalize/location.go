package normalize

import "strings"

// CityStateCountry splits a "City, State, Country" hometown value. The
// trailing field is the country, US entries carry a state, and
// international entries usually publish only "City, Country".
//
//	CityStateCountry("Miami, FL, USA")  = ("Miami", "FL", "USA")
//	CityStateCountry("Dublin, Ireland") = ("Dublin", "", "Ireland")
func CityStateCountry(s string) (city, state, country string) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		country = strings.TrimSpace(parts[0])
	case 2:
		city = strings.TrimSpace(parts[0])
		country = strings.TrimSpace(parts[1])
	default:
		city = strings.TrimSpace(parts[0])
		state = strings.TrimSpace(parts[len(parts)-2])
		country = strings.TrimSpace(parts[len(parts)-1])
	}
	return city, state, country
}

// StateCountry splits a "State, Country" hometown value. A single field
// names only the country; anything past two fields is unusable and both
// come back empty.
//
//	StateCountry("TX, USA") = ("TX", "USA")
//	StateCountry("Mexico")  = ("", "Mexico")
func StateCountry(s string) (state, country string) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		country = strings.TrimSpace(parts[0])
	case 2:
		state = strings.TrimSpace(parts[0])
		country = strings.TrimSpace(parts[1])
	}
	return state, country
}
