package model

// SuggestResponse represents the response for location suggestions
type SuggestResponse struct {
	Results []Suggestion `json:"results"`
}

// LocateResponse represents a resolved coordinate lookup
type LocateResponse struct {
	Location     string     `json:"location"`
	Address      Address    `json:"address"`
	Weather      *Snapshot  `json:"weather,omitempty"`
	WeatherError string     `json:"weather_error,omitempty"`
	Request      Coordinate `json:"request_coordinates"`
}

// LookupRecord is one entry of the session lookup history
type LookupRecord struct {
	ID          int    `json:"id" db:"id"`
	Location    string `json:"location" db:"location"`
	Source      string `json:"source" db:"source"`
	Temperature int    `json:"temperature" db:"temperature"`
	Condition   string `json:"condition" db:"condition"`
	LookedUpAt  string `json:"looked_up_at" db:"looked_up_at"`
}
