package model

// CountryName is fixed: lookups are restricted to a single country.
const CountryName = "Brasil"

// Address represents the structured address of a geocoding result.
// Every field is optional; providers omit whatever does not apply.
type Address struct {
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Village      string `json:"village,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
}

// CityName returns the best available city-like name, trying
// city, town, village and municipality in that order.
func (a Address) CityName() string {
	for _, name := range []string{a.City, a.Town, a.Village, a.Municipality} {
		if name != "" {
			return name
		}
	}
	return ""
}

// Suggestion represents one forward-geocoding candidate
type Suggestion struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

// Location returns the canonical location string for the suggestion,
// or "" when neither city/town nor state is resolvable.
func (s Suggestion) Location() string {
	city := s.Address.City
	if city == "" {
		city = s.Address.Town
	}
	return FormatLocation(city, s.Address.State)
}

// FormatLocation builds the canonical "City, State, Country" string.
// It returns "" unless both city and state are non-empty.
func FormatLocation(city, state string) string {
	if city == "" || state == "" {
		return ""
	}
	return city + ", " + state + ", " + CountryName
}

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
